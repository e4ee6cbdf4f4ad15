package password

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"unicode"
)

// SpecialChars is the accepted special-character set for the strength policy.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

const minLength = 12

var (
	ErrTooShort  = errors.New("le mot de passe doit contenir au moins 12 caracteres")
	ErrNoUpper   = errors.New("le mot de passe doit contenir au moins une majuscule")
	ErrNoLower   = errors.New("le mot de passe doit contenir au moins une minuscule")
	ErrNoDigit   = errors.New("le mot de passe doit contenir au moins un chiffre")
	ErrNoSpecial = errors.New(`le mot de passe doit contenir au moins un caractere special (!@#$%^&*(),.?":{}|<>)`)
)

// IsPolicyViolation reports whether err is one of the strength-policy
// errors, so callers can tell a weak password from an internal failure.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrTooShort) ||
		errors.Is(err, ErrNoUpper) ||
		errors.Is(err, ErrNoLower) ||
		errors.Is(err, ErrNoDigit) ||
		errors.Is(err, ErrNoSpecial)
}

// Validate checks the password against the strength policy. Rules are
// evaluated in order and the first failing rule's error is returned.
func Validate(pw string) error {
	if len(pw) < minLength {
		return ErrTooShort
	}
	if !strings.ContainsFunc(pw, unicode.IsUpper) {
		return ErrNoUpper
	}
	if !strings.ContainsFunc(pw, unicode.IsLower) {
		return ErrNoLower
	}
	if !strings.ContainsFunc(pw, unicode.IsDigit) {
		return ErrNoDigit
	}
	if !strings.ContainsAny(pw, SpecialChars) {
		return ErrNoSpecial
	}
	return nil
}

const (
	upperChars = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerChars = "abcdefghijkmnpqrstuvwxyz"
	digitChars = "23456789"
)

// Generate returns a random 16-character temporary password that satisfies
// Validate. Used for admin resets and freshly created accounts.
func Generate() (string, error) {
	// One guaranteed character per class, the rest drawn from the union.
	all := upperChars + lowerChars + digitChars + SpecialChars
	chars := make([]byte, 0, 16)

	for _, set := range []string{upperChars, lowerChars, digitChars, SpecialChars} {
		ch, err := randomFrom(set)
		if err != nil {
			return "", err
		}
		chars = append(chars, ch)
	}
	for len(chars) < 16 {
		ch, err := randomFrom(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, ch)
	}

	// Shuffle so the guaranteed classes are not always in front.
	for i := len(chars) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := n.Int64()
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomFrom(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
