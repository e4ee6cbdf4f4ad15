package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer issues and verifies the signed session artifact. The token is
// MAC-protected (HS256) so the embedded role claim cannot be forged; the jti
// is additionally registered server-side so logout revokes immediately.
type Signer struct {
	secretKey []byte
	ttl       time.Duration
}

type SessionClaims struct {
	EmployeeID uint   `json:"id_employe"`
	LastName   string `json:"nom"`
	FirstName  string `json:"prenom"`
	Role       string `json:"role"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if secret == "" {
		secret = "default-secret-key-change-this-in-production"
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Signer{
		secretKey: []byte(secret),
		ttl:       ttl,
	}
}

// TTL returns the session lifetime, also used as the cookie max-age and the
// registry TTL.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session token for the employee and returns it with its jti.
func (s *Signer) Issue(employeeID uint, lastName, firstName, role, email string) (string, string, error) {
	jti := uuid.NewString()
	claims := &SessionClaims{
		EmployeeID: employeeID,
		LastName:   lastName,
		FirstName:  firstName,
		Role:       role,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "office-backend",
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// Verify parses and validates a session token.
func (s *Signer) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
