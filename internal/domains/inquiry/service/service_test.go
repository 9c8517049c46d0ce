package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"casitas/config"
	kafkaMocks "casitas/infras/kafka/mocks"
	"casitas/infras/otel/mocks"
	inquiryMocks "casitas/internal/domains/inquiry/mocks"
	"casitas/internal/domains/inquiry/model"
	"casitas/internal/domains/inquiry/model/dto"
	"casitas/internal/domains/inquiry/service"
	cacheMocks "casitas/shared/cache/mocks"
	"casitas/shared/constant"
	"casitas/shared/failure"
	"casitas/shared/timezone"
)

func newService(t *testing.T) (service.Inquiry, *inquiryMocks.MockInquiry, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := inquiryMocks.NewMockInquiry(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mockOtel, mockKafka), mockRepo, mockCache
}

func TestInquiryService_Create(t *testing.T) {
	tests := []struct {
		name      string
		caller    string
		setupMock func(repo *inquiryMocks.MockInquiry)
		wantErr   bool
	}{
		{
			name:   "anonymous inquiry starts in the inbox",
			caller: "",
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inquiry model.Inquiry) error {
						assert.Equal(t, constant.InquiryStatusNew, inquiry.Status)
						assert.Nil(t, inquiry.StudentID)
						assert.Equal(t, constant.ContextGuest, inquiry.CreatedBy)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:   "student inquiry keeps the caller",
			caller: "student-1",
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inquiry model.Inquiry) error {
						if assert.NotNil(t, inquiry.StudentID) {
							assert.Equal(t, "student-1", *inquiry.StudentID)
						}

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:   "repository error",
			caller: "",
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)
			tt.setupMock(mockRepo)

			ctx := context.Background()
			if tt.caller != "" {
				ctx = context.WithValue(ctx, constant.ContextKeyUserID, tt.caller)
			}

			err := svc.Create(ctx, dto.CreateInquiryRequest{
				Name:    "Diego Ramos",
				Email:   "diego@example.com",
				Message: "Busco cuarto cerca de la UDLAP",
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInquiryService_UpdateStatus(t *testing.T) {
	respondedAt := timezone.Now()

	tests := []struct {
		name      string
		newStatus string
		current   model.Inquiry
		wantStamp bool
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "first response stamps responded_at",
			newStatus: constant.InquiryStatusContacted,
			current:   model.Inquiry{ID: "inq-1", Status: constant.InquiryStatusNew},
			wantStamp: true,
		},
		{
			name:      "later transitions keep the original stamp",
			newStatus: constant.InquiryStatusReviewing,
			current:   model.Inquiry{ID: "inq-1", Status: constant.InquiryStatusContacted, RespondedAt: &respondedAt},
			wantStamp: false,
		},
		{
			name:      "moving back to new does not stamp",
			newStatus: constant.InquiryStatusNew,
			current:   model.Inquiry{ID: "inq-1", Status: constant.InquiryStatusNew},
			wantStamp: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)

			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.current, nil)

			mockRepo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					assert.Equal(t, tt.newStatus, fields[model.FieldStatus])

					_, stamped := fields[model.FieldRespondedAt]
					assert.Equal(t, tt.wantStamp, stamped)

					return nil
				})

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
			err := svc.UpdateStatus(ctx, dto.UpdateInquiryStatusRequest{Status: tt.newStatus}, "inq-1")

			assert.NoError(t, err)
		})
	}

	t.Run("inquiry not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Inquiry{}, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
		err := svc.UpdateStatus(ctx, dto.UpdateInquiryStatusRequest{Status: constant.InquiryStatusContacted}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestInquiryService_Get(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Inquiry{ID: "inq-1", Status: constant.InquiryStatusNew}, nil)

	res, err := svc.Get(context.Background(), "inq-1")

	assert.NoError(t, err)
	assert.Equal(t, "inq-1", res.ID)
	assert.Empty(t, res.RespondedAt)
}

func TestInquiryService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *inquiryMocks.MockInquiry)
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "inquiry not found",
			setupMock: func(repo *inquiryMocks.MockInquiry) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newService(t)
			tt.setupMock(mockRepo)

			err := svc.Delete(context.Background(), "inq-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
