package goidl

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Field holds an optional value together with its set state. The zero Field
// is unset.
type Field[T any] struct {
	v   T
	set bool
}

// Some returns a set Field holding v.
func Some[T any](v T) Field[T] { return Field[T]{v: v, set: true} }

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) { return f.v, f.set }

// Value returns the value, or the zero value when unset.
func (f Field[T]) Value() T { return f.v }

// IsSet reports whether the field holds a value.
func (f Field[T]) IsSet() bool { return f.set }

// Set stores v.
func (f *Field[T]) Set(v T) {
	f.v = v
	f.set = true
}

// Clear resets the field to unset.
func (f *Field[T]) Clear() {
	var zero T
	f.v = zero
	f.set = false
}

// CheckString validates a dynamic value for a string field. present is false
// when an optional field received nil.
func CheckString(field string, v any, optional bool) (s string, present bool, err error) {
	if isNil(v) {
		if optional {
			return "", false, nil
		}
		return "", false, missing(field)
	}
	s, ok := v.(string)
	if !ok {
		return "", false, mismatch(field, KindString, v)
	}
	return s, true, nil
}

type numberLike interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// CheckInteger validates a dynamic value for an integer field. Integral
// floats such as 3.0 are accepted and converted; fractional values, NaN and
// infinities fail with a not_integer issue.
func CheckInteger(field string, v any, optional bool) (n int64, present bool, err error) {
	if isNil(v) {
		if optional {
			return 0, false, nil
		}
		return 0, false, missing(field)
	}
	switch t := v.(type) {
	case int:
		return int64(t), true, nil
	case int8:
		return int64(t), true, nil
	case int16:
		return int64(t), true, nil
	case int32:
		return int64(t), true, nil
	case int64:
		return t, true, nil
	case uint:
		return fromUint(field, uint64(t))
	case uint8:
		return int64(t), true, nil
	case uint16:
		return int64(t), true, nil
	case uint32:
		return int64(t), true, nil
	case uint64:
		return fromUint(field, t)
	case float32:
		return fromFloat(field, float64(t), v)
	case float64:
		return fromFloat(field, t, v)
	case numberLike:
		if i, err := t.Int64(); err == nil {
			return i, true, nil
		}
		f, err := t.Float64()
		if errors.Is(err, strconv.ErrRange) {
			return 0, false, Issues{NewIssue(FieldPath(field), CodeOverflow, map[string]string{"field": field, "got": render(v)})}
		}
		if err != nil {
			return 0, false, mismatch(field, KindInteger, v)
		}
		return fromFloat(field, f, v)
	}
	return 0, false, mismatch(field, KindInteger, v)
}

func fromUint(field string, u uint64) (int64, bool, error) {
	if u > math.MaxInt64 {
		return 0, false, Issues{NewIssue(FieldPath(field), CodeOverflow, map[string]string{"field": field, "got": fmt.Sprint(u)})}
	}
	return int64(u), true, nil
}

func fromFloat(field string, f float64, orig any) (int64, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false, Issues{NewIssue(FieldPath(field), CodeNotInteger, map[string]string{"field": field, "got": render(orig)})}
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false, Issues{NewIssue(FieldPath(field), CodeOverflow, map[string]string{"field": field, "got": render(orig)})}
	}
	return int64(f), true, nil
}

// CheckField validates v against fd.
func CheckField(fd FieldDesc, v any) (any, bool, error) {
	switch fd.Kind {
	case KindString:
		return CheckString(fd.Name, v, fd.Optional)
	case KindInteger:
		return CheckInteger(fd.Name, v, fd.Optional)
	}
	return nil, false, fmt.Errorf("goidl: field %s has unsupported kind %d", fd.Name, fd.Kind)
}

// UnsetIssue reports a required field that was never assigned.
func UnsetIssue(field string) Issue {
	return NewIssue(FieldPath(field), CodeUnset, map[string]string{"field": field})
}

// UnknownFieldIssue reports a Set/Get on a name the type does not declare.
func UnknownFieldIssue(field, fullClassName string) Issue {
	return NewIssue(FieldPath(field), CodeUnknownField, map[string]string{"field": field, "type": fullClassName})
}

func missing(field string) Issues {
	return Issues{NewIssue(FieldPath(field), CodeRequired, map[string]string{"field": field})}
}

func mismatch(field string, want Kind, got any) Issues {
	return Issues{NewIssue(FieldPath(field), CodeInvalidType, map[string]string{"field": field, "type": want.String(), "got": render(got)})}
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	}
	return fmt.Sprint(v)
}

// isNil treats untyped nil and nil pointers, maps, slices and interfaces as
// absent values.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
