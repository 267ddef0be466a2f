package domain

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	type holder struct {
		Birth Date `json:"birth"`
	}
	tests := []struct {
		name  string
		input string
		set   bool
		want  string
	}{
		{"iso date", `{"birth":"1990-05-12"}`, true, "1990-05-12"},
		{"iso datetime", `{"birth":"1990-05-12T08:30:00Z"}`, true, "1990-05-12"},
		{"day first", `{"birth":"12/05/1990"}`, true, "1990-05-12"},
		{"null", `{"birth":null}`, false, ""},
		{"malformed", `{"birth":"not a date"}`, false, ""},
		{"number", `{"birth":19900512}`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h holder
			require.NoError(t, json.Unmarshal([]byte(tt.input), &h))
			assert.Equal(t, tt.set, h.Birth.IsSet())
			if tt.set {
				assert.Equal(t, tt.want, h.Birth.String())
			}
		})
	}
}

func TestDateJSON_Marshal(t *testing.T) {
	out, err := json.Marshal(struct {
		Set   Date `json:"set"`
		Unset Date `json:"unset"`
	}{Set: DateOf(time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"set":"2025-06-15","unset":null}`, string(out))
}
