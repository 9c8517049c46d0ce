package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"casitas/config"
	"casitas/infras/otel/mocks"
	userMocks "casitas/internal/domains/user/mocks"
	"casitas/internal/domains/user/model"
	"casitas/internal/domains/user/model/dto"
	"casitas/internal/domains/user/service"
	"casitas/shared/constant"
	gDto "casitas/shared/dto"
	"casitas/shared/failure"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := userMocks.NewMockUser(ctrl)
	mockOtel := mocks.NewOtel()

	return service.New(mockRepo, &config.Config{}, mockOtel), mockRepo
}

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func TestUserService_GetMe(t *testing.T) {
	t.Run("returns the caller's profile", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{
			ID:       "user-1",
			Email:    "maria@example.com",
			FullName: "Maria Lopez",
			Role:     constant.RoleStudent,
			Active:   true,
		}, nil)

		res, err := svc.GetMe(authedCtx("user-1"))

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
		assert.Equal(t, "maria@example.com", res.Email)
	})

	t.Run("anonymous caller returns unauthorized", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.GetMe(context.Background())

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("missing profile returns not found", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.GetMe(authedCtx("ghost"))

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_UpdateMe(t *testing.T) {
	req := dto.UpdateProfileRequest{FullName: "Maria L. Hernandez", Phone: "+52 222 765 4321"}

	t.Run("updates mutable fields only", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, req.FullName, fields[model.FieldFullName])
				assert.NotContains(t, fields, model.FieldEmail)
				assert.NotContains(t, fields, model.FieldRole)
				assert.NotContains(t, fields, model.FieldActive)
				return nil
			})

		err := svc.UpdateMe(authedCtx("user-1"), req)

		assert.NoError(t, err)
	})

	t.Run("missing profile returns not found", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.UpdateMe(authedCtx("ghost"), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		err := svc.UpdateMe(authedCtx("user-1"), req)

		assert.Error(t, err)
	})
}
