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
	propertyMocks "casitas/internal/domains/property/mocks"
	propertyModel "casitas/internal/domains/property/model"
	roomMocks "casitas/internal/domains/room/mocks"
	"casitas/internal/domains/room/model"
	"casitas/internal/domains/room/model/dto"
	"casitas/internal/domains/room/service"
	cacheMocks "casitas/shared/cache/mocks"
	"casitas/shared/constant"
	"casitas/shared/failure"
)

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *propertyMocks.MockProperty, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockPropertyRepo := propertyMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, mockPropertyRepo, cfg, mockCache, mockOtel), mockRepo, mockPropertyRepo, mockCache
}

func propertyOwnedBy(owner string) propertyModel.Property {
	property := propertyModel.Property{ID: "prop-1", Slug: "casa-centro", Zone: constant.ZoneCentro}
	if owner != "" {
		property.OwnerID = &owner
	}

	return property
}

func TestRoomService_Create(t *testing.T) {
	validReq := dto.CreateRoomRequest{
		PropertyID:   "prop-1",
		RoomNumber:   "A-101",
		RoomType:     constant.RoomTypePrivate,
		BathroomType: constant.RoomTypeShared,
	}

	tests := []struct {
		name      string
		caller    string
		req       dto.CreateRoomRequest
		setupMock func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "successful creation",
			caller: "owner-1",
			req:    validReq,
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy("owner-1"), nil)

				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "property not found",
			caller: "owner-1",
			req:    validReq,
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyModel.Property{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "foreign property is forbidden",
			caller: "owner-2",
			req:    validReq,
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy("owner-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "unclaimed property accepts any owner",
			caller: "owner-2",
			req:    validReq,
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy(""), nil)

				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "duplicate room number",
			caller: "owner-1",
			req:    validReq,
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy("owner-1"), nil)

				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "bad available_from date",
			caller: "owner-1",
			req: dto.CreateRoomRequest{
				PropertyID:    "prop-1",
				RoomNumber:    "A-102",
				RoomType:      constant.RoomTypePrivate,
				BathroomType:  constant.RoomTypePrivate,
				AvailableFrom: "01/08/2025",
			},
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy("owner-1"), nil)

				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockPropertyRepo, _ := newService(t)
			tt.setupMock(mockRepo, mockPropertyRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.caller)
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	svc, mockRepo, _, mockCache := newService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Room{ID: "room-1", PropertyID: "prop-1", Available: true}, nil)

	res, err := svc.Get(context.Background(), "room-1")

	assert.NoError(t, err)
	assert.Equal(t, "room-1", res.ID)
	assert.True(t, res.Available)
}

func TestRoomService_Update(t *testing.T) {
	tests := []struct {
		name      string
		caller    string
		req       dto.UpdateRoomRequest
		setupMock func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "owner updates room",
			caller: "owner-1",
			req:    dto.UpdateRoomRequest{Semester: "otono-2026"},
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy("owner-1"), nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						// the derived flag must never travel through updates
						_, present := fields[model.FieldAvailable]
						assert.False(t, present)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:   "foreign room is forbidden",
			caller: "owner-2",
			req:    dto.UpdateRoomRequest{Semester: "otono-2026"},
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy("owner-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "room not found",
			caller: "owner-1",
			req:    dto.UpdateRoomRequest{Semester: "otono-2026"},
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockPropertyRepo, _ := newService(t)
			tt.setupMock(mockRepo, mockPropertyRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.caller)
			err := svc.Update(ctx, tt.req, "room-1")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		caller    string
		setupMock func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "owner deletes room",
			caller: "owner-1",
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy("owner-1"), nil)

				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "foreign room is forbidden",
			caller: "owner-2",
			setupMock: func(repo *roomMocks.MockRoom, properties *propertyMocks.MockProperty) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyOwnedBy("owner-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockPropertyRepo, _ := newService(t)
			tt.setupMock(mockRepo, mockPropertyRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.caller)
			err := svc.Delete(ctx, "room-1")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
