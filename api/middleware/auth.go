package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/SalangsangJohnPatrick/inventory-management/api/responses"
	"github.com/SalangsangJohnPatrick/inventory-management/api/validators"
	pkgAuth "github.com/SalangsangJohnPatrick/inventory-management/pkg/auth"
	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/logger"
)

// Auth validates a bearer token with verify and seeds the request context
// with the caller identity.
func Auth(verify pkgAuth.VerifyFunc, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token, err := validators.BearerToken(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "missing credentials"))
				return
			}

			if verify == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "token verifier not configured"))
				return
			}
			identity, err := verify(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, identity.UserID)
			ctx = context.WithValue(ctx, ctxTokenID, identity.TokenID)

			if logg != nil {
				ctx = logg.WithUserID(ctx, strconv.FormatUint(uint64(identity.UserID), 10))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
