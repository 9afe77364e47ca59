package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate("secreto", "user-1", "bodeguero1", "stock-ledger", 60)
	require.NoError(t, err)

	userID, username, err := jwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "bodeguero1", username)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "bodeguero1", "stock-ledger", 60)
	assert.Error(t, err)
}

func TestParse_SecretDistinto(t *testing.T) {
	tok, err := jwt.Generate("secreto", "user-1", "bodeguero1", "stock-ledger", 60)
	require.NoError(t, err)
	_, _, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}
