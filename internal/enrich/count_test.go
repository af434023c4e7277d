package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmployeeRange(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"1001-5000", 3000, true},
		{"51-200", 125, true},
		{"1-10", 5, true},
		{"10001+", 15001, true},
		{"5000+", 7500, true},
		{"3200", 3200, true},
		{"3,200", 3200, true},
		{"1,001-5,000", 3000, true},
		{" 51 - 200 ", 125, true},
		{"", 0, false},
		{"Unknown", 0, false},
		{"a-b", 0, false},
		{"10-20-30", 0, false},
		{"+", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseEmployeeRange(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
