package validators

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseBracketMap collects key[name]=value pairs into a map. When key itself
// is present it must hold a JSON object, which is merged first so explicit
// bracket pairs win.
func ParseBracketMap(r *http.Request, key string) (map[string]string, error) {
	out := map[string]string{}
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get(key)); raw != "" {
		decoded := map[string]any{}
		decoder := json.NewDecoder(strings.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&decoded); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("%s must be a JSON object", key))
		}
		for name, value := range decoded {
			switch v := value.(type) {
			case nil:
			case string:
				out[name] = v
			case json.Number:
				out[name] = v.String()
			case bool:
				out[name] = strconv.FormatBool(v)
			default:
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s values must be scalars", key)).
					WithDetails(map[string]any{"field": name})
			}
		}
	}

	prefix := key + "["
	names := make([]string, 0)
	for param := range query {
		if strings.HasPrefix(param, prefix) && strings.HasSuffix(param, "]") {
			names = append(names, param)
		}
	}
	sort.Strings(names)
	for _, param := range names {
		name := strings.TrimSuffix(strings.TrimPrefix(param, prefix), "]")
		if name == "" {
			continue
		}
		out[name] = query.Get(param)
	}
	return out, nil
}
