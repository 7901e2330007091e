package httpclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Params are query parameters. Nil values, including typed nil pointers,
// are omitted; scalars are stringified.
type Params map[string]any

// Encode builds the query string without the leading "?". Keys are sorted.
func (p Params) Encode() (string, error) {
	if len(p) == 0 {
		return "", nil
	}
	values := url.Values{}
	for key, raw := range p {
		s, ok, err := scalar(raw)
		if err != nil {
			return "", fmt.Errorf("param %q: %w", key, err)
		}
		if ok {
			values.Set(key, s)
		}
	}
	return values.Encode(), nil
}

// scalar stringifies v. ok is false when v is nil and must be omitted.
func scalar(v any) (s string, ok bool, err error) {
	if v == nil {
		return "", false, nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true, nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true, nil
	default:
		return "", false, fmt.Errorf("%w: %s", ErrUnsupportedParam, rv.Kind())
	}
}
