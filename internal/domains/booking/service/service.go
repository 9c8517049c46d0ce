package service

import (
	"context"
	"fmt"

	"casitas/config"
	"casitas/infras/kafka"
	"casitas/infras/otel"
	"casitas/internal/domains/booking/availability"
	"casitas/internal/domains/booking/model"
	"casitas/internal/domains/booking/model/dto"
	"casitas/internal/domains/booking/repository"
	propertyModel "casitas/internal/domains/property/model"
	propertyRepo "casitas/internal/domains/property/repository"
	roomModel "casitas/internal/domains/room/model"
	roomRepo "casitas/internal/domains/room/repository"
	"casitas/internal/policy"
	"casitas/shared"
	"casitas/shared/cache"
	"casitas/shared/constant"
	gDto "casitas/shared/dto"
	"casitas/shared/failure"
	"casitas/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	// room caches go stale when the derived flag flips; keep in sync
	// with the room service prefixes.
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	propertyRepo propertyRepo.Property
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	kafka        kafka.Client
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	propertyRepo propertyRepo.Property,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		propertyRepo: propertyRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		kafka:        kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for booking")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.authorize(ctx, room.PropertyID, user); err != nil {
		return err
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	candidate := availability.DateRange{CheckIn: booking.CheckIn, CheckOut: booking.CheckOut}
	if !candidate.IsValid() {
		return failure.BadRequestFromString("check_out must not be before check_in") // nolint:wrapcheck
	}

	// Conflict scan over the room's non-terminal bookings. Read-then-write,
	// not serialized; two simultaneous creates can both pass the scan.
	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, activeBookingsFilter(req.RoomID))
	if err != nil {
		log.Error().Err(err).Msg("failed to scan bookings for conflicts")

		return fmt.Errorf("failed to scan bookings for conflicts: %w", err)
	}

	if availability.HasConflict(dateRanges(existing), candidate) {
		return failure.Conflict("dates conflict with an existing booking") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	// Best effort from here on: the booking is committed.
	if err := s.recomputeRoomAvailability(ctx, booking.RoomID, user); err != nil {
		log.Error().Err(err).Str("roomID", booking.RoomID).Msg("failed to recompute room availability")
	}

	s.publishEvent(ctx, dto.NewBookingEvent(dto.EventBookingCreated, booking))
	s.invalidate(ctx, booking.ID, booking.RoomID)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return fmt.Errorf("failed to check booking existence: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(current.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for booking update")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if err = s.authorize(ctx, room.PropertyID, user); err != nil {
		return err
	}

	statusChanged := req.Status != "" && req.Status != current.Status
	if statusChanged && !availability.CanTransition(current.Status, req.Status) {
		return failure.BadRequestFromString(
			fmt.Sprintf("cannot transition booking from %s to %s", current.Status, req.Status)) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if statusChanged {
		if err := s.recomputeRoomAvailability(ctx, current.RoomID, user); err != nil {
			log.Error().Err(err).Str("roomID", current.RoomID).Msg("failed to recompute room availability")
		}

		current.Status = req.Status
		s.publishEvent(ctx, dto.NewBookingEvent(dto.EventBookingStatusChanged, current))
	}

	s.invalidate(ctx, id, current.RoomID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for deletion")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(current.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for booking deletion")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if err = s.authorize(ctx, room.PropertyID, user); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	// Terminal bookings never held the room, nothing to recompute.
	if availability.IsActiveStatus(current.Status) {
		if err := s.recomputeRoomAvailability(ctx, current.RoomID, user); err != nil {
			log.Error().Err(err).Str("roomID", current.RoomID).Msg("failed to recompute room availability")
		}
	}

	s.publishEvent(ctx, dto.NewBookingEvent(dto.EventBookingDeleted, current))
	s.invalidate(ctx, id, current.RoomID)

	return nil
}

// recomputeRoomAvailability rewrites the room's derived flag from the count
// of non-terminal bookings. Safe to call any number of times.
func (s *serviceImpl) recomputeRoomAvailability(ctx context.Context, roomID, user string) error {
	count, err := s.repo.Count(ctx, activeBookingsFilter(roomID))
	if err != nil {
		return fmt.Errorf("failed to count active bookings: %w", err)
	}

	updatedFields := map[string]any{
		roomModel.FieldAvailable: availability.RoomAvailable(count),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.roomRepo.Update(ctx, updatedFields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		return fmt.Errorf("failed to update room availability: %w", err)
	}

	return nil
}

func (s *serviceImpl) authorize(ctx context.Context, propertyID, user string) error {
	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get owning property")

		return fmt.Errorf("failed to get owning property: %w", err)
	}

	if !policy.CanMutateBooking(property.OwnerID, user) {
		return failure.Forbidden("caller does not own this property") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event dto.BookingEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: event.BookingID, Value: event}
		if err := s.kafka.SendMessages(c, constant.KafkaTopicBookings, message); err != nil {
			log.Error().Err(err).Str("type", event.Type).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, bookingID, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
	}()
}

func activeBookingsFilter(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    availability.ActiveStatuses(),
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}
}

func dateRanges(bookings []model.Booking) []availability.DateRange {
	ranges := make([]availability.DateRange, len(bookings))
	for i, b := range bookings {
		ranges[i] = availability.DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
	}

	return ranges
}
