package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "separators", raw: `{"x":1,"y":[1,2]}`, want: `{"x": 1, "y": [1, 2]}`},
		{name: "key order kept", raw: `{"z": 1, "a": 2, "m": 3}`, want: `{"z": 1, "a": 2, "m": 3}`},
		{name: "empty containers", raw: `{"o": {}, "a": []}`, want: `{"o": {}, "a": []}`},
		{name: "literals", raw: `[true, false, null]`, want: `[true, false, null]`},
		{name: "surrounding whitespace", raw: "  \n[1]\t", want: `[1]`},
		{name: "latin", raw: `"é"`, want: `"\u00e9"`},
		{name: "astral plane", raw: `"😀"`, want: `"\ud83d\ude00"`},
		{name: "escaped unicode input", raw: `"\u00E9"`, want: `"\u00e9"`},
		{name: "control characters", raw: `"tab\there\n\"q\" \\ \u0001 \u007f"`, want: `"tab\there\n\"q\" \\ \u0001 \u007f"`},
		{name: "slash not escaped", raw: `"a\/b"`, want: `"a/b"`},
		{name: "integers kept", raw: `[0, -3, 123456789012345678901234567890]`, want: `[0, -3, 123456789012345678901234567890]`},
		{name: "negative zero integer", raw: `-0`, want: `0`},
		{name: "floats", raw: `[1.50, 1.0, 2.5e0, -0.0]`, want: `[1.5, 1.0, 2.5, -0.0]`},
		{name: "float exponents", raw: `[1e5, 1e16, 1e15, 0.0001, 0.00001, 1.5E-7]`, want: `[100000.0, 1e+16, 1000000000000000.0, 0.0001, 1e-05, 1.5e-07]`},
		{name: "float overflow", raw: `[1e400, -1e400]`, want: `[Infinity, -Infinity]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizePayload(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePayloadRejectsInvalidJSON(t *testing.T) {
	for _, raw := range []string{
		`{"x":`,
		`{"x": 1`,
		`[1,]`,
		`{1: 2}`,
		`{"x": 1} {"y": 2}`,
		`{"x": 1}]`,
		`undefined`,
		`   `,
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := normalizePayload(raw)
			assert.Error(t, err)
		})
	}
}
