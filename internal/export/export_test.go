package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"De Gouden Lepel", "De Gouden Lepel"},
		{"", "client"},
		{"   ", "client"},
		{"a/b\\c", "a-b-c"},
		{"Bar: \"Noord\"?", "Bar- -Noord-"},
		{"..", "client"},
		{"Café Ça Va", "Café Ça Va"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeName(tt.in, FallbackFileName), "in=%q", tt.in)
	}
}
