package optional_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profile-functions/internal/lib/optional"
)

type payload struct {
	Phone optional.Field[string] `json:"phone"`
}

func TestField_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantState optional.State
		wantValue string
		wantErr   bool
	}{
		{name: "ключ отсутствует", body: `{}`, wantState: optional.Absent},
		{name: "явный null", body: `{"phone": null}`, wantState: optional.Null},
		{name: "пустая строка", body: `{"phone": ""}`, wantState: optional.Present, wantValue: ""},
		{name: "значение", body: `{"phone": "+7 900"}`, wantState: optional.Present, wantValue: "+7 900"},
		{name: "неверный тип", body: `{"phone": 42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := json.Unmarshal([]byte(tt.body), &p)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, p.Phone.State())
			v, _ := p.Phone.Get()
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestField_Constructors(t *testing.T) {
	v, ok := optional.Of("basic").Get()
	assert.True(t, ok)
	assert.Equal(t, "basic", v)

	n := optional.NullOf[string]()
	assert.True(t, n.IsSet())
	assert.True(t, n.IsNull())

	var absent optional.Field[string]
	assert.False(t, absent.IsSet())

	out, err := json.Marshal(payload{Phone: n})
	require.NoError(t, err)
	assert.JSONEq(t, `{"phone": null}`, string(out))
}
