package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()
	privileges := []string{"inventory:view", "inventory:adjust"}

	token, err := GenerateToken(userID, "user@example.com", "Test User", "EMPLOYEE", privileges, "v1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.Name)
	assert.Equal(t, "EMPLOYEE", claims.RoleCode)
	assert.Equal(t, privileges, claims.Privileges)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestValidateMalformedToken(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTamperedToken(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "a@b.c", "A", "USER", nil, "v1")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
