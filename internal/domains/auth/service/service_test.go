package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"casitas/config"
	"casitas/infras/jwt"
	jwtMocks "casitas/infras/jwt/mocks"
	"casitas/infras/otel/mocks"
	"casitas/internal/domains/auth/model/dto"
	"casitas/internal/domains/auth/service"
	userMocks "casitas/internal/domains/user/mocks"
	userModel "casitas/internal/domains/user/model"
	"casitas/shared/constant"
	gDto "casitas/shared/dto"
	"casitas/shared/failure"
	"casitas/shared/password"
)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	return service.New(mockRepo, mockJWT, cfg, mockOtel), mockRepo, mockJWT
}

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}
}

func activeUser(t *testing.T, plaintext string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plaintext)
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		Email:    "maria@example.com",
		Password: hashed,
		FullName: "Maria Lopez",
		Role:     constant.RoleStudent,
		Active:   true,
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "maria@example.com",
		Password: "s3cret-pass",
		FullName: "Maria Lopez",
		Role:     constant.RoleStudent,
	}

	t.Run("successful registration returns tokens", func(t *testing.T) {
		svc, mockRepo, mockJWT := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, user userModel.User) error {
				assert.NotEqual(t, req.Password, user.Password, "password must be hashed before storage")
				assert.True(t, user.Active)
				return nil
			})
		mockJWT.EXPECT().GenerateTokenPair(gomock.Any(), req.Email, constant.RoleStudent).Return(tokenPair(), nil)

		res, err := svc.Register(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Equal(t, constant.RoleStudent, res.Role)
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		_, err := svc.Register(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	req := dto.LoginRequest{Email: "maria@example.com", Password: "s3cret-pass"}

	t.Run("valid credentials return tokens", func(t *testing.T) {
		svc, mockRepo, mockJWT := newService(t)
		user := activeUser(t, req.Password)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		mockJWT.EXPECT().GenerateTokenPair(user.ID, user.Email, user.Role).Return(tokenPair(), nil)

		res, err := svc.Login(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Equal(t, "refresh-token", res.RefreshToken)
	})

	t.Run("unknown email returns unauthorized", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := svc.Login(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("wrong password returns unauthorized", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)
		user := activeUser(t, "a-different-password")

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := svc.Login(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("deactivated account returns forbidden", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)
		user := activeUser(t, req.Password)
		user.Active = false

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		_, err := svc.Login(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		svc, _, mockJWT := newService(t)

		mockJWT.EXPECT().RefreshTokens("refresh-token").Return(tokenPair(), nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
	})

	t.Run("invalid refresh token returns unauthorized", func(t *testing.T) {
		svc, _, mockJWT := newService(t)

		mockJWT.EXPECT().RefreshTokens("expired").Return(nil, errors.New("token is expired"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	req := dto.ChangePasswordRequest{CurrentPassword: "s3cret-pass", NewPassword: "br4nd-new-pass"}
	authedCtx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	t.Run("correct current password updates the hash", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)
		user := activeUser(t, req.CurrentPassword)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hashed, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify(req.NewPassword, hashed))
				return nil
			})

		err := svc.ChangePassword(authedCtx, req)

		assert.NoError(t, err)
	})

	t.Run("wrong current password returns unauthorized", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)
		user := activeUser(t, "something-else")

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := svc.ChangePassword(authedCtx, req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("anonymous caller returns unauthorized", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.ChangePassword(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
