package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"quiz_room_hub/internal/model"
	"reflect"
	"sort"

	"github.com/gin-gonic/gin"
)

const InvalidFieldsKey = "invalid_fields"

// MaxJSONBodyBytes caps the request bodies BindJSON reads.
const MaxJSONBodyBytes = 1 << 20

var dateType = reflect.TypeOf(model.Date{})

// BindJSON decodes the request body into dst, a pointer to a struct. Every
// field is decoded on its own so all type errors are reported together.
// Keys that dst does not declare are rejected under invalid_fields. The
// validate tags run last.
func BindJSON(c *gin.Context, dst interface{}) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxJSONBodyBytes)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrRequestTooLarge
		}
		return err
	}
	return DecodeStrict(body, dst)
}

func DecodeStrict(body []byte, dst interface{}) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errors.New("bind target must be a pointer to a struct")
	}
	sv := rv.Elem()

	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return NewNonFieldError("JSON parse error - expected an object.")
		}
	}

	fields := jsonFields(sv.Type())

	var unknown []string
	for key := range raw {
		if _, ok := fields[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		verr := NewValidationError()
		verr.Fields[InvalidFieldsKey] = unknown
		return verr
	}

	verr := NewValidationError()
	for name, idx := range fields {
		msg, ok := raw[name]
		if !ok {
			continue
		}
		field := sv.FieldByIndex(idx)
		if err := json.Unmarshal(msg, field.Addr().Interface()); err != nil {
			verr.Add(name, typeMessage(field.Type()))
		}
	}
	if verr.HasErrors() {
		return verr
	}

	return ValidateStruct(dst)
}

// jsonFields maps JSON names to struct field indexes, following embedded
// structs the same way encoding/json does.
func jsonFields(t reflect.Type) map[string][]int {
	out := make(map[string][]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("json") == "" {
			for name, idx := range jsonFields(f.Type) {
				out[name] = append([]int{i}, idx...)
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		name := jsonFieldName(f)
		if name == "" {
			if f.Tag.Get("json") == "-" {
				continue
			}
			name = f.Name
		}
		out[name] = []int{i}
	}
	return out
}

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == dateType {
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	}
	switch t.Kind() {
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Not a valid boolean."
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "A valid integer is required."
	case reflect.Float32, reflect.Float64:
		return "A valid number is required."
	case reflect.Slice, reflect.Array:
		return "Expected a list of items."
	default:
		return "Invalid value."
	}
}

// ReadOnly marks a response field that clients may echo back in a request.
// Its value is accepted and ignored.
type ReadOnly struct{}

func (*ReadOnly) UnmarshalJSON([]byte) error {
	return nil
}
