package utils

import (
	"reflect"
	"strconv"
	"strings"
)

// NormalizeDTO trims string fields on a pointer-to-struct DTO. Pointer string
// fields are trimmed too and set to nil when blank, so optional fields are
// stored as absent instead of "".
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		switch {
		case f.Kind() == reflect.String && f.CanSet():
			f.SetString(strings.TrimSpace(f.String()))
		case f.Kind() == reflect.Ptr && !f.IsNil() && f.Elem().Kind() == reflect.String:
			trimmed := strings.TrimSpace(f.Elem().String())
			if trimmed == "" {
				f.Set(reflect.Zero(f.Type()))
			} else {
				f.Elem().SetString(trimmed)
			}
		}
	}
}

func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
