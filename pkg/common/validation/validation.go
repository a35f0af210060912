package validation

import (
	"reflect"

	lferrors "github.com/vnykmshr/lazyflow/pkg/common/errors"
)

func invalid(module, field string, value any, reason, hint string) error {
	return lferrors.NewValidationError(module, field, value, reason).WithHint(hint)
}

// ValidatePositive rejects value <= 0. seq.Chunk checks its block size with it
// when a traversal starts.
func ValidatePositive(module, field string, value int) error {
	if value > 0 {
		return nil
	}
	return invalid(module, field, value, "must be positive", "value must be greater than 0")
}

// ValidateNonNegative rejects value < 0. Zero is left for the caller to
// interpret, typically as "use the default".
func ValidateNonNegative(module, field string, value int) error {
	if value >= 0 {
		return nil
	}
	return invalid(module, field, value, "cannot be negative", "use 0 for the default or a positive value")
}

// ValidateNotNil rejects nil, including a nil pointer, map, slice, channel or
// func stored in an interface, such as a nil *redis.Client passed as a
// redislist client.
func ValidateNotNil(module, field string, value any) error {
	if !isNil(value) {
		return nil
	}
	return invalid(module, field, nil, "cannot be nil", "provide a valid "+field)
}

// ValidateNotEmpty rejects the empty string.
func ValidateNotEmpty(module, field string, value string) error {
	if value != "" {
		return nil
	}
	return invalid(module, field, value, "cannot be empty", "provide a non-empty "+field)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
