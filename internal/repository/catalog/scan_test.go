package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
	}{
		{"time", want.In(time.FixedZone("ICT", 7*3600))},
		{"fixed text", "2024-03-01T12:30:00.000000000Z"},
		{"rfc3339", "2024-03-01T19:30:00+07:00"},
		{"space offset", "2024-03-01 12:30:00+00:00"},
		{"bytes", []byte("2024-03-01 12:30:00")},
		{"unix", want.Unix()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTime(tt.in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTime_Rejects(t *testing.T) {
	for _, in := range []any{nil, "yesterday", 3.5} {
		_, err := parseTime(in)
		assert.Error(t, err, "%v", in)
	}
}
