// Package patch models partial updates. A Field is either absent from the
// request body, explicitly null, or carries a value; the UPDATE builder only
// touches columns whose field was present.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is an optional, nullable JSON field.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a Field carrying v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// HasValue reports whether the field was provided with a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Ptr returns nil for null, a pointer to the value otherwise.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// RequiredError is returned when null is sent for a column that cannot be NULL.
type RequiredError struct {
	Field string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("%s cannot be null", e.Field)
}

// NotNull fails when f was explicitly set to null.
func NotNull[T any](name string, f Field[T]) error {
	if f.Set && f.Null {
		return &RequiredError{Field: name}
	}
	return nil
}

// Update accumulates "col = ?" assignments for a single-row UPDATE.
type Update struct {
	cols []string
	args []any
}

// Set adds an unconditional assignment.
func (u *Update) Set(col string, v any) {
	u.cols = append(u.cols, col+" = ?")
	u.args = append(u.args, v)
}

// Apply adds col when f was provided; null becomes SQL NULL.
func Apply[T any](u *Update, col string, f Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		u.Set(col, nil)
		return
	}
	u.Set(col, f.Value)
}

// Len is the number of assignments collected.
func (u *Update) Len() int {
	return len(u.cols)
}

// Columns lists the assigned column names in order.
func (u *Update) Columns() []string {
	out := make([]string, len(u.cols))
	for i, c := range u.cols {
		out[i] = strings.TrimSuffix(c, " = ?")
	}
	return out
}

// SQL renders "UPDATE table SET ... WHERE id = ?" with id appended to the args.
func (u *Update) SQL(table string, id int64) (string, []any) {
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(u.cols, ", "))
	args := append(append([]any{}, u.args...), id)
	return query, args
}
