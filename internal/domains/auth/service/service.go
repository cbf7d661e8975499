package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cheapticket/config"
	"cheapticket/infras/jwt"
	"cheapticket/infras/mail"
	"cheapticket/infras/metrics"
	"cheapticket/infras/otel"
	"cheapticket/infras/postgres"
	"cheapticket/internal/domains/auth/model/dto"
	otpLogModel "cheapticket/internal/domains/otplog/model"
	otpLogRepo "cheapticket/internal/domains/otplog/repository"
	userModel "cheapticket/internal/domains/user/model"
	userRepo "cheapticket/internal/domains/user/repository"
	userService "cheapticket/internal/domains/user/service"
	"cheapticket/shared"
	"cheapticket/shared/cache"
	"cheapticket/shared/constant"
	"cheapticket/shared/failure"
	"cheapticket/shared/otp"
	"cheapticket/shared/password"
	"cheapticket/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	verificationSuccess = "success"
	verificationInvalid = "invalid"
	verificationExpired = "expired"
)

type Auth interface {
	SendOTP(ctx context.Context, req dto.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (dto.VerifyOTPResponse, error)
	SignInOTP(ctx context.Context, req dto.SignInOTPRequest) (dto.VerifyOTPResponse, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (dto.SignInResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	CompleteOnboarding(ctx context.Context, req dto.OnboardingRequest, userID string) (dto.OnboardingResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	otpLogRepo otpLogRepo.OTPLog
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
	mailer     mail.Mailer
	metrics    *metrics.Metrics
	now        func() time.Time
}

func New(
	userRepo userRepo.User,
	otpLogRepo otpLogRepo.OTPLog,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	jwt jwt.JWT,
	mailer mail.Mailer,
	metrics *metrics.Metrics,
) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		otpLogRepo: otpLogRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
		mailer:     mailer,
		metrics:    metrics,
		now:        timezone.Now,
	}
}

func (s *serviceImpl) otpTTL() time.Duration {
	return time.Duration(s.cfg.OTP.ExpirySeconds) * time.Second
}

func (s *serviceImpl) SendOTP(ctx context.Context, req dto.SendOTPRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.SendOTP")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")

		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.ID == "" {
		user = req.NewUser(password.Unusable())

		if user, err = s.createOnFirstRequest(ctx, user); err != nil {
			return err
		}
	}

	code, err := otp.Generate()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate otp")

		return err
	}

	now := s.now()
	updatedFields := map[string]any{
		userModel.FieldOTP:          code,
		userModel.FieldOTPCreatedAt: now,
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    constant.ContextGuest,
	}

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to store otp")

		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err = s.mailer.Send(ctx, []string{user.Email}, dto.OTPMailSubject, dto.OTPMailBody(code)); err != nil {
		s.metrics.IncMailFailure("otp")
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to send otp mail")

		return fmt.Errorf("failed to send otp mail: %w", err)
	}

	entry := otpLogModel.OTPLog{
		ID:         uuid.NewString(),
		UserID:     &user.ID,
		Identifier: user.Email,
		OTPCode:    code,
		CreatedAt:  now,
	}

	if err = s.otpLogRepo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to log otp")

		return fmt.Errorf("failed to log otp: %w", err)
	}

	s.metrics.IncOTPSent()

	go s.invalidate(context.WithoutCancel(ctx), user.ID)

	return nil
}

// createOnFirstRequest inserts the account. A concurrent request may win the
// unique email index, in which case that row is used instead.
func (s *serviceImpl) createOnFirstRequest(ctx context.Context, user userModel.User) (userModel.User, error) {
	err := s.userRepo.Insert(ctx, user)
	if err == nil {
		log.Info().Str("user_id", user.ID).Msg("created account on first code request")

		return user, nil
	}

	if !postgres.IsUniqueViolation(err) {
		log.Error().Err(err).Msg("failed to create user")

		return user, fmt.Errorf("failed to create user: %w", err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("failed to reload user after duplicate insert")

		return user, fmt.Errorf("failed to reload user: %w", err)
	}

	if existing.ID == "" {
		return user, errors.New("user missing after duplicate insert")
	}

	return existing, nil
}

func (s *serviceImpl) VerifyOTP(ctx context.Context, req dto.VerifyOTPRequest) (res dto.VerifyOTPResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.VerifyOTP")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.GetByEmailAndOTP(ctx, req.Email, req.OTP)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email and otp")

		return res, fmt.Errorf("failed to get user by email and otp: %w", err)
	}

	if user.ID == "" {
		s.metrics.IncOTPVerification(verificationInvalid)

		return res, failure.BadRequestFromString(dto.MessageInvalidOTPOrEmail)
	}

	return s.completeLogin(ctx, user, req.OTP)
}

func (s *serviceImpl) SignInOTP(ctx context.Context, req dto.SignInOTPRequest) (res dto.VerifyOTPResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.SignInOTP")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	users, err := s.userRepo.FindByOTP(ctx, req.OTP)
	if err != nil {
		log.Error().Err(err).Msg("failed to find users by otp")

		return res, fmt.Errorf("failed to find users by otp: %w", err)
	}

	switch len(users) {
	case 0:
		s.metrics.IncOTPVerification(verificationInvalid)

		return res, failure.BadRequestFromString(dto.MessageInvalidOTP)
	case 1:
		return s.completeLogin(ctx, users[0], req.OTP)
	default:
		log.Error().Int("matches", len(users)).Msg("otp matched more than one account")

		return res, failure.InternalError(errors.New(dto.MessageDuplicateOTP))
	}
}

// completeLogin consumes a matched code and issues the token pair.
func (s *serviceImpl) completeLogin(ctx context.Context, user userModel.User, code string) (res dto.VerifyOTPResponse, err error) {
	now := s.now()

	if otp.Expired(user.OTPCreatedAt, now, s.otpTTL()) {
		s.metrics.IncOTPVerification(verificationExpired)

		return res, failure.BadRequestFromString(dto.MessageOTPExpired)
	}

	updatedFields := map[string]any{
		userModel.FieldIsEmailVerified: true,
		userModel.FieldOTP:             nil,
		userModel.FieldOTPCreatedAt:    nil,
		userModel.FieldIsActive:        true,
		userModel.FieldLastLogin:       now,
		constant.FieldModifiedAt:       now,
		constant.FieldModifiedBy:       user.Email,
	}

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to consume otp")

		return res, fmt.Errorf("failed to consume otp: %w", err)
	}

	if err = s.otpLogRepo.MarkSuccessful(ctx, user.ID, code); err != nil {
		log.Error().Err(err).Msg("failed to mark otp log successful")

		return res, fmt.Errorf("failed to mark otp log successful: %w", err)
	}

	user.IsEmailVerified = true
	user.IsActive = true
	user.OTP = nil
	user.OTPCreatedAt = nil

	tokens, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role())
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.metrics.IncOTPVerification(verificationSuccess)

	go s.invalidate(context.WithoutCancel(ctx), user.ID)

	res.FromModel(user, tokens)

	return res, nil
}

func (s *serviceImpl) SignIn(ctx context.Context, req dto.SignInRequest) (res dto.SignInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.SignIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")

		return res, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.ID == "" || !user.IsActive {
		log.Warn().Str("email", req.Email).Msg("sign in attempt for unknown or inactive account")

		return res, failure.BadRequestFromString(dto.MessageInvalidCredentials)
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("user_id", user.ID).Msg("sign in attempt with wrong password")

		return res, failure.BadRequestFromString(dto.MessageInvalidCredentials)
	}

	tokens, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role())
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := s.now()
	updatedFields := map[string]any{
		userModel.FieldLastLogin: now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user.Email,
	}

	if err := s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.Message = dto.MessageSignedIn
	res.Tokens = *tokens

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.Refresh, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized(dto.MessageInvalidRefreshToken)
	}

	// The pair is minted from the stored account so role changes,
	// deactivation and deletion take effect on the next refresh.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" || !user.IsActive {
		log.Warn().Str("user_id", claims.UserID).Msg("refresh attempt for unknown or inactive account")

		return res, failure.Unauthorized(dto.MessageInvalidRefreshToken)
	}

	tokens, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role())
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.Tokens = *tokens

	return res, nil
}

func (s *serviceImpl) CompleteOnboarding(ctx context.Context, req dto.OnboardingRequest, userID string) (res dto.OnboardingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.CompleteOnboarding")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return res, failure.NotFound("user not found")
	}

	if user.IsOnboardingCompleted {
		return res, failure.BadRequestFromString(dto.MessageOnboardingDone)
	}

	filter := shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)
	if err = s.userRepo.Update(ctx, req.ToUpdate(user.Email), filter); err != nil {
		log.Error().Err(err).Msg("failed to complete onboarding")

		return res, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	req.Apply(&user)

	go s.invalidate(context.WithoutCancel(ctx), user.ID)

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Auth.ForgotPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.GetByEmailAndOTP(ctx, req.Email, req.OTP)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email and otp")

		return fmt.Errorf("failed to get user by email and otp: %w", err)
	}

	if user.ID == "" {
		return failure.BadRequestFromString(dto.MessageInvalidOTPOrEmail)
	}

	now := s.now()
	if otp.Expired(user.OTPCreatedAt, now, s.otpTTL()) {
		return failure.BadRequestFromString(dto.MessageOTPExpired)
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := map[string]any{
		userModel.FieldPassword:     hashed,
		userModel.FieldOTP:          nil,
		userModel.FieldOTPCreatedAt: nil,
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    user.Email,
	}

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to reset password")

		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, userID string) {
	userService.Invalidate(ctx, s.cache, userID)
}
