package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnprocessable, status: http.StatusUnprocessableEntity, publicMsg: "the given data was invalid", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeUnprocessable, "missing brand_name")
	if base.Code() != CodeUnprocessable {
		t.Fatalf("expected unprocessable code, got %s", base.Code())
	}
	if base.Message() != "missing brand_name" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]string{"brand_name": "brand_name is required"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeInternal, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeInternal {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("lookup: %w", New(CodeNotFound, "Product not found"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if !Is(err, CodeNotFound) {
		t.Fatalf("Is should match wrapped code")
	}
	if Is(err, CodeInternal) {
		t.Fatalf("Is should not match a different code")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpCapturesPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key", TableName: "users", Message: "duplicate key"}
	err := Wrap(CodeInternal, pgErr, "insert user")

	d := Dump(err)
	if d.Code != CodeInternal {
		t.Fatalf("expected internal code, got %s", d.Code)
	}
	if d.DB == nil || d.DB.Engine != "postgres" {
		t.Fatalf("expected postgres diagnostics, got %+v", d.DB)
	}
	if d.DB.Code != "23505" || d.DB.Constraint != "users_email_key" || d.DB.Table != "users" {
		t.Fatalf("unexpected pg diagnostics %+v", d.DB)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %v", d.Chain)
	}

	fields := d.LogFields()
	if fields["db_code"] != "23505" || fields["db_table"] != "users" {
		t.Fatalf("unexpected log fields %v", fields)
	}
	if _, ok := fields["db_column"]; ok {
		t.Fatalf("empty column should be omitted: %v", fields)
	}
}

func TestDumpCapturesSQLiteDiagnostics(t *testing.T) {
	liteErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	err := Wrap(CodeInternal, fmt.Errorf("insert item: %w", liteErr), "store item")

	d := Dump(err)
	if d.DB == nil || d.DB.Engine != "sqlite" {
		t.Fatalf("expected sqlite diagnostics, got %+v", d.DB)
	}
	if d.DB.Code != "2067" {
		t.Fatalf("expected extended constraint code, got %q", d.DB.Code)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected three chain entries, got %v", d.Chain)
	}
}

func TestDumpWithoutDriverError(t *testing.T) {
	d := Dump(stdErrors.New("plain"))
	if d.DB != nil {
		t.Fatalf("expected no db diagnostics, got %+v", d.DB)
	}
	if _, ok := d.LogFields()["db_engine"]; ok {
		t.Fatalf("db fields should be absent")
	}
	if Dump(nil).TopMessage != "" {
		t.Fatalf("nil error should dump empty")
	}
}

func TestPublicMarksMessage(t *testing.T) {
	err := Wrap(CodeInternal, stdErrors.New("disk"), "Unable to import inventory.")
	if err.IsPublic() {
		t.Fatalf("errors should not be public by default")
	}
	if !err.Public().IsPublic() {
		t.Fatalf("expected Public to mark the message")
	}
	var nilErr *Error
	if nilErr.IsPublic() {
		t.Fatalf("nil error should not be public")
	}
}
