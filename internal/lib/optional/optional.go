// Package optional содержит тип поля с тремя состояниями для JSON-запросов:
// ключ отсутствует, ключ передан со значением null, ключ передан со значением.
//
// Отсутствие ключа и null нельзя различить через обычный указатель,
// поэтому состояние хранится явно.
package optional

import (
	"bytes"
	"encoding/json"
)

// State описывает, в каком виде поле пришло в запросе.
type State uint8

const (
	// Absent: ключа нет в объекте.
	Absent State = iota
	// Null: ключ есть, значение null.
	Null
	// Present: ключ есть, значение задано.
	Present
)

// Field хранит значение поля и его состояние.
type Field[T any] struct {
	state State
	value T
}

// Of возвращает поле со значением.
func Of[T any](v T) Field[T] {
	return Field[T]{state: Present, value: v}
}

// NullOf возвращает поле, явно переданное как null.
func NullOf[T any]() Field[T] {
	return Field[T]{state: Null}
}

// State возвращает состояние поля.
func (f Field[T]) State() State { return f.state }

// IsSet сообщает, был ли ключ в запросе (со значением или null).
func (f Field[T]) IsSet() bool { return f.state != Absent }

// IsNull сообщает, что ключ передан со значением null.
func (f Field[T]) IsNull() bool { return f.state == Null }

// Get возвращает значение и признак его наличия.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == Present
}

// UnmarshalJSON вызывается только когда ключ присутствует в объекте,
// поэтому отсутствие ключа оставляет поле в состоянии Absent.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.state = Null
		f.value = zero
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.state = Present
	f.value = v
	return nil
}

// MarshalJSON пишет null для Absent и Null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
