package service

import (
	"context"
	"fmt"

	"casitas/config"
	"casitas/infras/otel"
	"casitas/internal/domains/user/model"
	"casitas/internal/domains/user/model/dto"
	"casitas/internal/domains/user/repository"
	"casitas/shared"
	"casitas/shared/constant"
	"casitas/shared/failure"

	"github.com/rs/zerolog/log"
)

type User interface {
	GetMe(ctx context.Context) (dto.UserResponse, error)
	UpdateMe(ctx context.Context, req dto.UpdateProfileRequest) error
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) GetMe(ctx context.Context) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMe")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("missing authenticated user") // nolint:wrapcheck
	}

	profile, err := s.repo.Get(ctx, shared.FilterByID(user, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound("profile not found") // nolint:wrapcheck
	}

	res.FromModel(profile)

	return res, nil
}

func (s *serviceImpl) UpdateMe(ctx context.Context, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateMe")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return failure.Unauthorized("missing authenticated user") // nolint:wrapcheck
	}

	filter := shared.FilterByID(user, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check profile existence")

		return fmt.Errorf("failed to check profile existence: %w", err)
	}

	if !exist {
		return failure.NotFound("profile not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}
