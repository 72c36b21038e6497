package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, ExactMatch("Invoice", "invoice", false))
	assert.Equal(t, 0.0, ExactMatch("Invoice", "invoice", true))
	assert.Equal(t, 1.0, ExactMatch("Invoice", "Invoice", true))
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevenshteinDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestLevenshtein_Similarity(t *testing.T) {
	assert.Equal(t, 1.0, Levenshtein("", ""))
	assert.Equal(t, 1.0, Levenshtein("same", "same"))
	assert.Equal(t, 0.0, Levenshtein("", "abcd"))
	assert.InDelta(t, 1.0-3.0/7.0, Levenshtein("kitten", "sitting"), 1e-9)
}

func TestJaro(t *testing.T) {
	assert.Equal(t, 1.0, Jaro("same", "same"))
	assert.Equal(t, 0.0, Jaro("", "abc"))
	assert.Equal(t, 0.0, Jaro("abc", "xyz"))
	assert.InDelta(t, 0.944, Jaro("MARTHA", "MARHTA"), 0.001)
}

func TestJaroWinkler(t *testing.T) {
	assert.Equal(t, 1.0, JaroWinkler("same", "same"))
	assert.InDelta(t, 0.961, JaroWinkler("MARTHA", "MARHTA"), 0.001)

	// The shared prefix boosts the score above plain Jaro.
	assert.Greater(t, JaroWinkler("prefixed", "prefixes"), Jaro("prefixed", "prefixes"))
}
