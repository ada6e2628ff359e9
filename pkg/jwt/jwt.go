package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la sesión del panel: empresa, rol
// y unidad de negocio activa. Así los middlewares deciden sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"user_id"`
	CompanyID      string `json:"company_id"`
	Role           string `json:"role"` // super_admin | admin | manager | cashier | viewer
	BusinessUnitID string `json:"business_unit_id,omitempty"`
}

// Session son los datos de sesión que viajan en el token.
type Session struct {
	UserID         string
	CompanyID      string
	Role           string
	BusinessUnitID string
}

// Generate genera un token JWT firmado con los datos de la sesión.
func Generate(secret string, s Session, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:         s.UserID,
		CompanyID:      s.CompanyID,
		Role:           s.Role,
		BusinessUnitID: s.BusinessUnitID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Session, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.UserID == "" || claims.CompanyID == "" {
		return nil, fmt.Errorf("claims incompletos")
	}
	return &Session{
		UserID:         claims.UserID,
		CompanyID:      claims.CompanyID,
		Role:           claims.Role,
		BusinessUnitID: claims.BusinessUnitID,
	}, nil
}
