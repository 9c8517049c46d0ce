package service

import (
	"context"

	"casitas/config"
	"casitas/infras/jwt"
	"casitas/infras/otel"
	"casitas/internal/domains/auth/model/dto"
	userModel "casitas/internal/domains/user/model"
	userRepository "casitas/internal/domains/user/repository"
	"casitas/shared"
	"casitas/shared/constant"
	"casitas/shared/failure"
	"casitas/shared/password"
	"casitas/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo userRepository.User
	jwt      jwt.JWT
	cfg      *config.Config
	otel     otel.Otel
}

func New(userRepo userRepository.User, jwtService jwt.JWT, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		userRepo: userRepo,
		jwt:      jwtService,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.userRepo.Exist(ctx, shared.FilterByID(req.Email, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing email")
		return res, err
	}

	if exist {
		return res, failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return res, err
	}

	user := req.ToUserModel(req.Email, hashed)

	err = s.userRepo.Insert(ctx, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to insert user")
		return res, err
	}

	tokenPair, err := s.jwt.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")
		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair, user.Role)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, shared.FilterByID(req.Email, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")
		return res, err
	}

	// The same message for an unknown email and a wrong password.
	if user.ID == constant.Empty {
		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.Forbidden("account is deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwt.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")
		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair, user.Role)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwt.RefreshTokens(req.RefreshToken)
	if err != nil {
		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if caller == constant.Empty {
		return failure.Unauthorized("missing authenticated user") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(caller, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")
		return err
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.Unauthorized("current password is incorrect") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return err
	}

	updatedFields := map[string]any{
		userModel.FieldPassword:  hashed,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: caller,
	}

	err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(caller, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update password")
		return err
	}

	return nil
}
