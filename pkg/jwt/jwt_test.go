package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lm-inventario/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	id := jwt.Identity{UserID: "u-1", Name: "Ana", Email: "ana@lm.co", Role: "operador"}
	token, err := jwt.Generate("secreto", id, "lm-inventario", 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", jwt.Identity{UserID: "u-1", Role: "admin"}, "lm", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate("secreto", jwt.Identity{UserID: "u-1", Role: "admin"}, "lm", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{UserID: "u-1"}, "lm", 5)
	assert.Error(t, err)
}
