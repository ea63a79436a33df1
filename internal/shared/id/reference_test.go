package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReference_Format(t *testing.T) {
	ref, err := NewReference()
	require.NoError(t, err)

	assert.Len(t, ref, len(ReferencePrefix)+1+ReferenceLength)
	assert.True(t, ValidReference(ref), "reference %q should match ATT-[A-Z0-9]{16}", ref)
}

func TestNewReference_NoObviousCollisions(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref, err := NewReference()
		require.NoError(t, err)
		assert.False(t, seen[ref], "duplicate reference generated: %s", ref)
		seen[ref] = true
	}
}

func TestGenerate_Length(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"explicit length", 8, 8},
		{"zero falls back to default", 0, ReferenceLength},
		{"negative falls back to default", -3, ReferenceLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Generate(tt.length)
			require.NoError(t, err)
			assert.Len(t, s, tt.want)
		})
	}
}

func TestValidReference(t *testing.T) {
	tests := []struct {
		ref   string
		valid bool
	}{
		{"ATT-ABCDEFGH12345678", true},
		{"ATT-abcdefgh12345678", false},
		{"ATT-ABCDEFGH1234567", false},
		{"REF-ABCDEFGH12345678", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidReference(tt.ref), "ref=%q", tt.ref)
	}
}

func TestNormalizeReference(t *testing.T) {
	assert.Equal(t, "ATT-ABC", NormalizeReference("  att-abc "))
}
