package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguagePrefixRoundTrip(t *testing.T) {
	t.Parallel()

	name := BuildPrefixedName("units.loc", "fr")
	assert.Equal(t, "!!!!!!!!!!_FR_units.loc", name)

	code, ok := ExtractLanguageCode(name)
	require.True(t, ok)
	assert.Equal(t, "fr", code)
}

func TestExtractLanguageCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
		wantOK   bool
	}{
		{"ten bangs", "!!!!!!!!!!_DE_text.loc", "de", true},
		{"single bang", "!_ES_data.tsv", "es", true},
		{"no prefix", "units.loc", "", false},
		{"lowercase code rejected", "!!_fr_units.loc", "", false},
		{"three letters rejected", "!!_FRA_units.loc", "", false},
		{"missing trailing underscore", "!!_FRunits.loc", "", false},
		{"prefix not at start", "x!!_FR_units.loc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := ExtractLanguageCode(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestStripLanguagePrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "units.loc", StripLanguagePrefix("!!!!!!!!!!_FR_units.loc"))
	assert.Equal(t, "units.loc", StripLanguagePrefix("units.loc"))
}
