package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		sigla  string
		number int
		want   string
	}{
		{"INF", 1, "INF-001"},
		{"INF", 5, "INF-005"},
		{"INF", 42, "INF-042"},
		{"INF", 999, "INF-999"},
		{"INF", 1000, "INF-1000"},
		{"INF", 12345, "INF-12345"},
		{"ALL", 7, "ALL-007"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.sigla, tc.number))
	}
}

func TestFormatWidth(t *testing.T) {
	assert.Equal(t, "VIG-00009", FormatWidth("VIG", 9, 5))
	assert.Equal(t, "VIG-123456", FormatWidth("VIG", 123456, 5))
}

func TestFormatPanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { Format("INF", 0) })
	assert.Panics(t, func() { Format("INF", -1) })
}

func TestFormatIsDeterministic(t *testing.T) {
	assert.Equal(t, Format("INF", 3), Format("INF", 3))
}
