package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"casitas/config"
	kafkaMocks "casitas/infras/kafka/mocks"
	"casitas/infras/otel/mocks"
	bookingMocks "casitas/internal/domains/booking/mocks"
	"casitas/internal/domains/booking/model"
	"casitas/internal/domains/booking/model/dto"
	"casitas/internal/domains/booking/service"
	propertyMocks "casitas/internal/domains/property/mocks"
	propertyModel "casitas/internal/domains/property/model"
	roomMocks "casitas/internal/domains/room/mocks"
	roomModel "casitas/internal/domains/room/model"
	cacheMocks "casitas/shared/cache/mocks"
	"casitas/shared/constant"
	"casitas/shared/failure"
)

type fixtures struct {
	svc        service.Booking
	repo       *bookingMocks.MockBooking
	rooms      *roomMocks.MockRoom
	properties *propertyMocks.MockProperty
	cache      *cacheMocks.MockRedisCache
	kafka      *kafkaMocks.MockClient
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRooms := roomMocks.NewMockRoom(ctrl)
	mockProperties := propertyMocks.NewMockProperty(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// cache writes, invalidation and event publishing run on detached goroutines
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockRooms, mockProperties, cfg, mockCache, mockOtel, mockKafka)

	return fixtures{
		svc:        svc,
		repo:       mockRepo,
		rooms:      mockRooms,
		properties: mockProperties,
		cache:      mockCache,
		kafka:      mockKafka,
	}
}

func day(value string) time.Time {
	t, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		panic(err)
	}

	return t
}

func ownedProperty(owner string) propertyModel.Property {
	property := propertyModel.Property{ID: "prop-1", Zone: constant.ZoneCentro}
	if owner != "" {
		property.OwnerID = &owner
	}

	return property
}

func existingBooking(checkIn, checkOut, status string) model.Booking {
	return model.Booking{
		ID:       "booking-existing",
		RoomID:   "room-1",
		CheckIn:  day(checkIn),
		CheckOut: day(checkOut),
		Status:   status,
	}
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		RoomID:    "room-1",
		GuestName: "Mariana Soto",
		CheckIn:   "2025-01-11",
		CheckOut:  "2025-01-15",
	}

	tests := []struct {
		name      string
		caller    string
		req       dto.CreateBookingRequest
		setupMock func(f fixtures)
		wantErr   bool
		wantCode  int
	}{
		{
			name:   "successful creation in a free window",
			caller: "owner-1",
			req:    validReq,
			setupMock: func(f fixtures) {
				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{existingBooking("2025-01-01", "2025-01-10", constant.BookingStatusUpcoming)}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				// recompute after insert
				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				f.rooms.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, false, fields[roomModel.FieldAvailable])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:   "boundary day conflicts",
			caller: "owner-1",
			req: dto.CreateBookingRequest{
				RoomID:    "room-1",
				GuestName: "Mariana Soto",
				CheckIn:   "2025-01-10",
				CheckOut:  "2025-01-15",
			},
			setupMock: func(f fixtures) {
				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{existingBooking("2025-01-01", "2025-01-10", constant.BookingStatusUpcoming)}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name:   "cancelled bookings never block",
			caller: "owner-1",
			req: dto.CreateBookingRequest{
				RoomID:    "room-1",
				GuestName: "Mariana Soto",
				CheckIn:   "2025-01-05",
				CheckOut:  "2025-01-08",
			},
			setupMock: func(f fixtures) {
				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)

				// terminal bookings are excluded by the scan filter
				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				f.rooms.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "room not found",
			caller: "owner-1",
			req:    validReq,
			setupMock: func(f fixtures) {
				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:   "foreign property is forbidden",
			caller: "owner-2",
			req:    validReq,
			setupMock: func(f fixtures) {
				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name:   "check_out before check_in",
			caller: "owner-1",
			req: dto.CreateBookingRequest{
				RoomID:    "room-1",
				GuestName: "Mariana Soto",
				CheckIn:   "2025-01-15",
				CheckOut:  "2025-01-11",
			},
			setupMock: func(f fixtures) {
				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "insert error",
			caller: "owner-1",
			req:    validReq,
			setupMock: func(f fixtures) {
				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)

				f.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixtures(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.caller)
			err := f.svc.Create(ctx, tt.req)

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

func TestBookingService_Update(t *testing.T) {
	current := existingBooking("2025-01-01", "2025-01-10", constant.BookingStatusUpcoming)

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func(f fixtures)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "valid transition to active",
			req:  dto.UpdateBookingRequest{Status: constant.BookingStatusActive},
			setupMock: func(f fixtures) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				// recompute after the status change
				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				f.rooms.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "upcoming cannot jump to completed",
			req:  dto.UpdateBookingRequest{Status: constant.BookingStatusCompleted},
			setupMock: func(f fixtures) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "guest-only update skips recompute",
			req:  dto.UpdateBookingRequest{GuestPhone: "+52 222 123 4567"},
			setupMock: func(f fixtures) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			req:       dto.UpdateBookingRequest{},
			setupMock: func(f fixtures) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingRequest{Status: constant.BookingStatusActive},
			setupMock: func(f fixtures) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixtures(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
			err := f.svc.Update(ctx, tt.req, "booking-existing")

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

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		setupMock func(f fixtures, current model.Booking)
		wantErr   bool
	}{
		{
			name:   "deleting an upcoming booking frees the room",
			status: constant.BookingStatusUpcoming,
			setupMock: func(f fixtures, current model.Booking) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, nil)

				f.rooms.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, true, fields[roomModel.FieldAvailable])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:   "deleting a cancelled booking skips recompute",
			status: constant.BookingStatusCancelled,
			setupMock: func(f fixtures, current model.Booking) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				f.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{ID: "room-1", PropertyID: "prop-1"}, nil)

				f.properties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedProperty("owner-1"), nil)

				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixtures(t)
			tt.setupMock(f, existingBooking("2025-01-01", "2025-01-10", tt.status))

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")
			err := f.svc.Delete(ctx, "booking-existing")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// The create -> conflict -> delete -> create-again walk from the booking
// lifecycle: a second stay on the same dates is rejected until the first
// booking is removed.
func TestBookingService_Lifecycle(t *testing.T) {
	f := newFixtures(t)
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")

	req := dto.CreateBookingRequest{
		RoomID:    "room-1",
		GuestName: "Mariana Soto",
		CheckIn:   "2025-02-01",
		CheckOut:  "2025-02-28",
	}

	room := roomModel.Room{ID: "room-1", PropertyID: "prop-1"}
	first := existingBooking("2025-02-01", "2025-02-28", constant.BookingStatusUpcoming)

	// 1. first booking lands
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
	f.properties.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty("owner-1"), nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, f.svc.Create(ctx, req))

	// 2. identical dates are rejected while the first booking is active
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
	f.properties.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty("owner-1"), nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{first}, nil)

	err := f.svc.Create(ctx, req)
	assert.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	// 3. deleting the first booking frees the room
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(first, nil)
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
	f.properties.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty("owner-1"), nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, f.svc.Delete(ctx, first.ID))

	// 4. the same dates are accepted again
	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
	f.properties.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedProperty("owner-1"), nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, f.svc.Create(ctx, req))
}

func TestBookingService_Get(t *testing.T) {
	f := newFixtures(t)

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(existingBooking("2025-01-01", "2025-01-10", constant.BookingStatusUpcoming), nil)

	res, err := f.svc.Get(context.Background(), "booking-existing")

	assert.NoError(t, err)
	assert.Equal(t, "booking-existing", res.ID)
	assert.Equal(t, "2025-01-01", res.CheckIn)
	assert.Equal(t, "2025-01-10", res.CheckOut)
}
