package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/inventario-rapido/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// parseToken valida el token como lo hace la API de inventario: HS256 con el secreto compartido.
func parseToken(secret, tok string) (*pkgjwt.Claims, error) {
	claims := &pkgjwt.Claims{}
	_, err := gojwt.ParseWithClaims(tok, claims, func(*gojwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}))
	return claims, err
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "inventory-view", "inventario-rapido", pkgjwt.ScopeInventory, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := parseToken(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "inventory-view", claims.Subject)
	assert.Equal(t, "inventario-rapido", claims.Issuer)
	assert.Equal(t, pkgjwt.ScopeInventory, claims.Scope)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "inventory-view", "test", pkgjwt.ScopeInventory, -time.Minute)
	require.NoError(t, err)

	_, err = parseToken(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "inventory-view", "test", pkgjwt.ScopeInventory, time.Minute)
	require.NoError(t, err)

	_, err = parseToken("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "s", "i", "", time.Minute)
	assert.Error(t, err)
}
