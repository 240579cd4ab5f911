package toml

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// ErrMissingKey is wrapped by Decode when a field tagged `required` has no key
var ErrMissingKey = errors.New("missing required key")

// Unmarshal parses TOML data and stores the result in the value pointed to by v.
// Fields absent from the document keep their current value, so decoding over a
// pre-filled struct yields per-field defaults.
func Unmarshal(data []byte, v any) error {
	p := NewParser(data)
	parsedMap, err := p.Parse()
	if err != nil {
		return err
	}
	return Decode(parsedMap, v)
}

// Decode maps a generic map[string]any onto a struct using reflection.
// Keys come from `toml` tags, falling back to field names. A tag option
// `required` (e.g. `toml:"time,required"`) rejects documents lacking the key.
func Decode(data any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer")
	}

	return decodeValue(data, val.Elem())
}

func decodeValue(data any, val reflect.Value) error {
	if data == nil {
		return nil
	}

	switch val.Kind() {
	case reflect.Ptr:
		elem := reflect.New(val.Type().Elem())
		if !val.IsNil() {
			elem.Elem().Set(val.Elem())
		}
		if err := decodeValue(data, elem.Elem()); err != nil {
			return err
		}
		val.Set(elem)

	case reflect.Struct:
		dataMap, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected table, got %T", data)
		}
		return decodeStruct(dataMap, val)

	case reflect.Slice:
		dataSlice, ok := data.([]any)
		if !ok {
			return fmt.Errorf("expected array, got %T", data)
		}
		newSlice := reflect.MakeSlice(val.Type(), len(dataSlice), len(dataSlice))
		for i := range dataSlice {
			if err := decodeValue(dataSlice[i], newSlice.Index(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		val.Set(newSlice)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("only map[string]T is supported")
		}
		dataMap, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected table, got %T", data)
		}
		newMap := reflect.MakeMap(val.Type())
		for k, vData := range dataMap {
			newVal := reflect.New(val.Type().Elem()).Elem()
			if err := decodeValue(vData, newVal); err != nil {
				return fmt.Errorf("map key %s: %w", k, err)
			}
			newMap.SetMapIndex(reflect.ValueOf(k), newVal)
		}
		val.Set(newMap)

	case reflect.Interface:
		val.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := toInt(data)
		if !ok {
			return fmt.Errorf("cannot convert %T(%v) to integer", data, data)
		}
		if val.OverflowInt(i) {
			return fmt.Errorf("integer %d overflows %s", i, val.Type())
		}
		val.SetInt(i)

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(data)
		if !ok {
			return fmt.Errorf("cannot convert %T to float", data)
		}
		val.SetFloat(f)

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return fmt.Errorf("cannot convert %T to string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return fmt.Errorf("cannot convert %T to bool", data)
		}
		val.SetBool(b)

	default:
		return fmt.Errorf("unsupported kind %s", val.Kind())
	}

	return nil
}

func decodeStruct(data map[string]any, val reflect.Value) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		key, required, skip := parseTag(fieldType)
		if skip {
			continue
		}

		// Keys are case sensitive
		vData, ok := data[key]
		if !ok {
			if required {
				return fmt.Errorf("%s: %w %q", typ.Name(), ErrMissingKey, key)
			}
			continue
		}
		if err := decodeValue(vData, field); err != nil {
			return fmt.Errorf("%s.%s: %w", typ.Name(), fieldType.Name, err)
		}
	}
	return nil
}

// parseTag returns the document key for a field and its options
func parseTag(f reflect.StructField) (key string, required, skip bool) {
	key = f.Name
	tag := f.Tag.Get("toml")
	if tag == "" {
		return key, false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] == "-" {
		return "", false, true
	}
	if parts[0] != "" {
		key = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "required" {
			required = true
		}
	}
	return key, required, false
}

// toInt accepts integers and integral floats only
func toInt(v any) (int64, bool) {
	switch i := v.(type) {
	case int:
		return int64(i), true
	case int64:
		return i, true
	case float64:
		// int64 holds [-2^63, 2^63); conversion outside it is undefined
		const two63 = 1 << 63
		if i != math.Trunc(i) || i < -two63 || i >= two63 {
			return 0, false
		}
		return int64(i), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch i := v.(type) {
	case int:
		return float64(i), true
	case int64:
		return float64(i), true
	case float64:
		return i, true
	}
	return 0, false
}
