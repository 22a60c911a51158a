package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// KeySeparator defines the delimiter used between query key segments.
const KeySeparator = "::"

// defaultKeySerializer builds keys for (resource, ordered params) tuples.
// The filter params this client passes around are strings, nullable strings
// and id slices; anything richer falls back to JSON so the key stays
// deterministic across runs.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey builds a query key from the resource name and its ordered
// params. A resource without params serializes to the bare resource name.
func (s *defaultKeySerializer) SerializeKey(resource string, params ...any) string {
	if len(params) == 0 {
		return resource
	}

	parts := make([]string, 0, len(params)+1)
	parts = append(parts, resource)

	for _, param := range params {
		parts = append(parts, s.serializeValue(param))
	}

	return strings.Join(parts, KeySeparator)
}

// serializeValue handles individual param serialization based on type.
// Nil pointers and nil interfaces both collapse to "nil" so an unset filter
// addresses the same entry regardless of how the caller spelled it.
func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return "slice:nil"
		}
		return s.serializeSlice(rv)
	}

	if isBasicKind(rv.Kind()) {
		return fmt.Sprintf("%v", v)
	}

	return s.jsonFallback(v)
}

// serializeSlice handles slice params recursively.
func (s *defaultKeySerializer) serializeSlice(rv reflect.Value) string {
	length := rv.Len()
	parts := make([]string, length)

	for i := 0; i < length; i++ {
		parts[i] = s.serializeValue(rv.Index(i).Interface())
	}

	return fmt.Sprintf("slice[%d]:{%s}", length, strings.Join(parts, ","))
}

// isBasicKind checks if a kind represents a basic Go type.
func isBasicKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

// jsonFallback provides JSON serialization for structured params.
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Keys must never panic; degrade to the type name.
		return fmt.Sprintf("fallback:%s", reflect.TypeOf(v).String())
	}
	return fmt.Sprintf("json:%s", string(data))
}
