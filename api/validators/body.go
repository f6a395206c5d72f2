package validators

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/validation"
)

const invalidDataMessage = "The given data was invalid."

// DecodeJSONBody decodes the request body into dest. Unknown fields are
// ignored and an empty body leaves dest untouched; field rules are checked
// by the services. Broken JSON is a 400, a value of the wrong type is a 422
// naming the field.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]any{"error": err.Error()})
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, invalidDataMessage).
			WithDetails(validation.FieldErrors{typeErr.Field: typeMessage(typeErr.Field, typeErr.Type)})
	}
	return pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, invalidDataMessage).
		WithDetails(validation.FieldErrors{"_": err.Error()})
}

func typeMessage(field string, target reflect.Type) string {
	for target != nil && target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if target == nil {
		return validation.Message(field, "invalid", "", reflect.Invalid)
	}
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return validation.Message(field, "integer", "", target.Kind())
	case reflect.Float32, reflect.Float64:
		return validation.Message(field, "numeric", "", target.Kind())
	case reflect.String:
		return validation.Message(field, "string", "", target.Kind())
	}
	return validation.Message(field, "invalid", "", target.Kind())
}
