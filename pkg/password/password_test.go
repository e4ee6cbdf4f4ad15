package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid password", `Correct.Horse7Battery`, nil},
		{"exactly twelve chars", `Abcdefghi1!x`, nil},
		{"too short", `Ab1!short`, ErrTooShort},
		{"missing uppercase", `abcdefghij1!`, ErrNoUpper},
		{"missing lowercase", `ABCDEFGHIJ1!`, ErrNoLower},
		{"missing digit", `Abcdefghijk!`, ErrNoDigit},
		{"missing special", `Abcdefghijk1`, ErrNoSpecial},
		{"empty", "", ErrTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// Rules are checked in order: a password failing several rules reports the
// first one.
func TestValidateReportsFirstFailure(t *testing.T) {
	assert.ErrorIs(t, Validate("abc"), ErrTooShort)
	assert.ErrorIs(t, Validate("abcdefghijkl"), ErrNoUpper)
}

func TestIsPolicyViolation(t *testing.T) {
	for _, err := range []error{ErrTooShort, ErrNoUpper, ErrNoLower, ErrNoDigit, ErrNoSpecial} {
		assert.True(t, IsPolicyViolation(err))
	}
	assert.False(t, IsPolicyViolation(nil))
	assert.False(t, IsPolicyViolation(assert.AnError))
}

func TestGenerateSatisfiesPolicy(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := Generate()
		require.NoError(t, err)
		assert.Len(t, pw, 16)
		assert.NoError(t, Validate(pw))
	}
}

func TestGenerateIsNotConstant(t *testing.T) {
	first, err := Generate()
	require.NoError(t, err)
	second, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
