package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invorya-access-api/pkg/jwt"
)

func TestGenerateParse_SesionCompleta(t *testing.T) {
	in := jwt.Session{UserID: "u-1", CompanyID: "c-1", Role: "manager", BusinessUnitID: "bu-9"}

	token, err := jwt.Generate("secreto", in, "invorya", 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, in, *got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", jwt.Session{UserID: "u", CompanyID: "c"}, "invorya", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", jwt.Session{UserID: "u", CompanyID: "c"}, "invorya", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := jwt.Generate("", jwt.Session{UserID: "u"}, "invorya", 5)
	assert.Error(t, err)
}
