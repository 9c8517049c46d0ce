package dto

import (
	"testing"

	"casitas/infras/jwt"
	"casitas/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	university := "BUAP"
	req := RegisterRequest{
		Email:      "maria@example.com",
		Password:   "plaintext",
		FullName:   "Maria Lopez",
		Phone:      "+52 222 123 4567",
		Role:       constant.RoleStudent,
		University: &university,
	}

	user := req.ToUserModel(req.Email, "$2a$10$hashed")

	require.NotEmpty(t, user.ID)
	assert.Equal(t, req.Email, user.Email)
	assert.Equal(t, "$2a$10$hashed", user.Password, "the model must carry the hash, never the plaintext")
	assert.Equal(t, req.FullName, user.FullName)
	assert.Equal(t, constant.RoleStudent, user.Role)
	assert.Equal(t, &university, user.University)
	assert.True(t, user.Active)
	assert.Equal(t, req.Email, user.CreatedBy)
	assert.Equal(t, req.Email, user.ModifiedBy)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	pair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var res LoginResponse
	res.FromTokenPair(pair, constant.RoleOwner)

	assert.Equal(t, "access-token", res.AccessToken)
	assert.Equal(t, "refresh-token", res.RefreshToken)
	assert.Equal(t, int64(900), res.ExpiresIn)
	assert.Equal(t, constant.RoleOwner, res.Role)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	pair := &jwt.TokenPair{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
		ExpiresIn:    900,
	}

	var res RefreshTokenResponse
	res.FromTokenPair(pair)

	assert.Equal(t, "new-access", res.AccessToken)
	assert.Equal(t, "new-refresh", res.RefreshToken)
	assert.Equal(t, int64(900), res.ExpiresIn)
}
