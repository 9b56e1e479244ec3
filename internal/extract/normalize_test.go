package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain", "Acme Co", "Acme Co"},
		{"collapse whitespace", "  Acme \t Co \n", "Acme Co"},
		{"non-breaking space", "Acme Co", "Acme Co"},
		{"narrow no-break space", "Acme Co", "Acme Co"},
		{"figure space", "Acme Co", "Acme Co"},
		{"zero-width space", "Acme\u200BCo", "AcmeCo"},
		{"byte order mark", "Acme\uFEFFCo", "AcmeCo"},
		{"hyphenation join", "broad- band service", "broadband service"},
		{"hyphenation join across newline", "broad-\nband", "broadband"},
		{"consecutive hyphenation joins", "re- e- valuation", "reevaluation"},
		{"real hyphen kept", "co-op", "co-op"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestJoinHeader(t *testing.T) {
	header := []string{"Partner  Name", "", "Description of Services"}
	assert.Equal(t, "partner name description of services", joinHeader(header))
}

func TestJoinHeaderEmpty(t *testing.T) {
	assert.Equal(t, "", joinHeader(nil))
	assert.Equal(t, "", joinHeader([]string{"", "  "}))
}
