package response

import "encoding/json"

// rawJSON встраивает уже сериализованный JSON в ответ без повторного кодирования.
// Некорректный JSON выводится строкой.
type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) {
	if json.Valid([]byte(r)) {
		return []byte(r), nil
	}
	return json.Marshal(string(r))
}
