package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldMapCache caches JSON tag -> struct field index mappings per type.
var fieldMapCache sync.Map // reflect.Type -> map[string]int

func fieldMapFor(t reflect.Type) map[string]int {
	if cached, ok := fieldMapCache.Load(t); ok {
		return cached.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		m[name] = i
	}
	fieldMapCache.Store(t, m)
	return m
}

// FlexUnmarshal decodes JSON into a struct pointer, tolerating values that
// upstream writers serialized as quoted strings ("0.65" for 0.65, "true"
// for true). The DNA profile JSON comes from several generations of
// ingestion scripts and mixes both encodings freely.
func FlexUnmarshal(data []byte, v any) error {
	// Fast path: everything natively typed.
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("flex unmarshal: target must be a struct pointer")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	elem := rv.Elem()
	fieldMap := fieldMapFor(elem.Type())

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}
		fv := elem.Field(idx)
		if !fv.CanSet() {
			continue
		}

		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Coercion path: the value arrived as a quoted string.
		var s string
		if err := json.Unmarshal(rawVal, &s); err != nil {
			continue
		}
		if err := coerceString(s, fv); err != nil {
			return fmt.Errorf("flex unmarshal field %q: %w", key, err)
		}
	}
	return nil
}

func coerceString(s string, fv reflect.Value) error {
	switch fv.Kind() {
	case reflect.Float64, reflect.Float32:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.String:
		fv.SetString(s)
	default:
		return fmt.Errorf("cannot coerce string into %s", fv.Kind())
	}
	return nil
}
