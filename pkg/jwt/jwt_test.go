package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/pkg/jwt"
)

const (
	testSecret = "unit-test-secret"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "contable-api-test"
)

func TestGenerateYParse_Roundtrip(t *testing.T) {
	tok, err := jwt.Generate(testSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := jwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID, "el UserID debe sobrevivir el roundtrip")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := jwt.Generate(testSecret, testUserID, testIssuer, 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", tok)
	assert.Error(t, err, "la firma con otro secret debe rechazarse")
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(testSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", testUserID, testIssuer, 60)
	assert.Error(t, err)

	_, err = jwt.Parse("", "cualquier-cosa")
	assert.Error(t, err)
}
