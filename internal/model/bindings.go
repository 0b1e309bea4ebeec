package model

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Flatten writes the exported fields of v into out as "<prefix>.<field>".
// Field names come from the `binding` struct tag, or the lowerCamel field
// name when the tag is absent; `binding:"-"` skips a field. Nested structs
// extend the prefix, fmt.Stringer values use String and string slices are
// joined with ", ".
func Flatten(prefix string, v any, out map[string]string) {
	flattenValue(prefix, reflect.ValueOf(v), out)
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

func flattenValue(prefix string, v reflect.Value, out map[string]string) {
	if !v.IsValid() {
		return
	}
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		if v.Type().Implements(stringerType) {
			out[prefix] = v.Interface().(fmt.Stringer).String()
			return
		}
		flattenValue(prefix, v.Elem(), out)
		return
	}
	if v.Type().Implements(stringerType) {
		out[prefix] = v.Interface().(fmt.Stringer).String()
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Tag.Get("binding")
			if name == "-" {
				continue
			}
			if name == "" {
				name = lowerFirst(f.Name)
			}
			flattenValue(prefix+"."+name, v.Field(i), out)
		}
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts = append(parts, fmt.Sprint(v.Index(i).Interface()))
		}
		out[prefix] = strings.Join(parts, ", ")
	case reflect.Map:
		// Maps have no stable field names; callers should not bind them.
	default:
		out[prefix] = fmt.Sprint(v.Interface())
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
