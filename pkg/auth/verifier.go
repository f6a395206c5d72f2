package auth

import (
	"context"
	"fmt"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/config"
)

// VerifyFunc resolves a raw bearer token into the calling identity.
type VerifyFunc func(ctx context.Context, token string) (*Identity, error)

// NewVerifier returns a VerifyFunc backed by the HS256 configuration.
func NewVerifier(cfg config.JWTConfig) VerifyFunc {
	return func(_ context.Context, token string) (*Identity, error) {
		claims, err := ParseAccessToken(cfg, token)
		if err != nil {
			return nil, err
		}
		userID, err := claims.UserID()
		if err != nil {
			return nil, fmt.Errorf("token subject: %w", err)
		}
		return &Identity{
			UserID:  userID,
			Email:   claims.Email,
			TokenID: claims.ID,
		}, nil
	}
}
