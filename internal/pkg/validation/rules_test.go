package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZonalIDPattern(t *testing.T) {
	tests := []struct {
		zonalID string
		valid   bool
	}{
		{"ZN-1042", true},
		{"AB-1", true},
		{"ABCD-12345678", true},
		{"A-1", false},          // prefix too short
		{"ABCDE-1", false},      // prefix too long
		{"zn-1042", false},      // lowercase prefix
		{"ZN-123456789", false}, // suffix too long
		{"ZN1042", false},       // missing separator
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.zonalID, func(t *testing.T) {
			assert.Equal(t, tt.valid, CompiledPatterns.ZonalID.MatchString(tt.zonalID))
		})
	}
}

func TestContactPatterns(t *testing.T) {
	assert.True(t, CompiledPatterns.Mobile.MatchString("9876543210"))
	assert.False(t, CompiledPatterns.Mobile.MatchString("98765"))
	assert.False(t, CompiledPatterns.Mobile.MatchString("98765432100"))

	assert.True(t, CompiledPatterns.Aadhar.MatchString("123456789012"))
	assert.False(t, CompiledPatterns.Aadhar.MatchString("12345678901"))
}

func TestStringValidation(t *testing.T) {
	t.Run("required empty fails", func(t *testing.T) {
		assert.False(t, NewStringValidation("").Validate())
	})

	t.Run("optional empty passes", func(t *testing.T) {
		assert.True(t, NewStringValidation("").WithRequired(false).Validate())
	})

	t.Run("length bounds", func(t *testing.T) {
		v := NewStringValidation("ab").WithMinLength(NameMinLength).WithMaxLength(NameMaxLength)
		assert.True(t, v.Validate())
		assert.False(t, NewStringValidation("a").WithMinLength(NameMinLength).Validate())
	})

	t.Run("pattern mismatch fails", func(t *testing.T) {
		v := NewStringValidation("not-a-mobile").WithPattern(CompiledPatterns.Mobile)
		assert.False(t, v.Validate())
	})
}
