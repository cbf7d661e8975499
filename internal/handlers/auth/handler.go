package auth

import (
	"net/http"

	"cheapticket/infras/otel"
	"cheapticket/internal/domains/auth/model/dto"
	"cheapticket/internal/domains/auth/service"
	"cheapticket/shared/constant"
	"cheapticket/shared/validator"
	"cheapticket/transport/http/middleware"
	"cheapticket/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	auth    middleware.AuthRole
	otel    otel.Otel
}

func New(service service.Auth, auth middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/send-otp", handler.SendOTP)
	r.Post("/send-otp-forgotpassword", handler.SendOTP)
	r.Post("/verify-otp", handler.VerifyOTP)
	r.Post("/signin-otp", handler.SignInOTP)
	r.Post("/signin", handler.SignIn)
	r.Post("/refresh-token", handler.RefreshToken)
	r.Post("/forgot-password", handler.ForgotPassword)
	r.With(handler.auth.Auth).Post("/onboarding", handler.Onboarding)
}

// SendOTP issues a one-time code
// @Summary Send an OTP
// @Description Creates the account on first use and mails a fresh 6-digit code.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SendOTPRequest true "Send OTP Request"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/send-otp [post]
func (handler *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendOTP")
	defer scope.End()

	req := dto.SendOTPRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SendOTP(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send otp")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("OTP sent")

	response.WithBody(w, http.StatusOK, dto.MessageResponse{Message: dto.MessageOTPSent})
}

// VerifyOTP exchanges an email and code for a token pair
// @Summary Verify an OTP
// @Description Verifies the code and returns tokens. user_details is present only after onboarding.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Verify OTP Request"
// @Success 200 {object} dto.VerifyOTPResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/verify-otp [post]
func (handler *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyOTP")
	defer scope.End()

	req := dto.VerifyOTPRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.VerifyOTP(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify otp")

		response.WithError(w, err)

		return
	}

	response.WithBody(w, http.StatusOK, res)
}

// SignInOTP signs in with the code alone
// @Summary Sign in with an OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignInOTPRequest true "Sign In OTP Request"
// @Success 200 {object} dto.VerifyOTPResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/signin-otp [post]
func (handler *Handler) SignInOTP(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignInOTP")
	defer scope.End()

	req := dto.SignInOTPRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SignInOTP(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign in with otp")

		response.WithError(w, err)

		return
	}

	response.WithBody(w, http.StatusOK, res)
}

// SignIn handles password sign in
// @Summary Sign in with a password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Sign In Request"
// @Success 200 {object} dto.SignInResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/signin [post]
func (handler *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignIn")
	defer scope.End()

	req := dto.SignInRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SignIn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign in")

		response.WithError(w, err)

		return
	}

	response.WithBody(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh user token
// @Description Refresh user token using the provided refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} dto.RefreshTokenResponse "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Token refreshed successfully")

	response.WithBody(w, http.StatusOK, res)
}

// ForgotPassword sets a new password after an OTP check
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/forgot-password [post]
func (handler *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ForgotPassword")
	defer scope.End()

	req := dto.ForgotPasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ForgotPassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reset password")

		response.WithError(w, err)

		return
	}

	response.WithBody(w, http.StatusOK, dto.MessageResponse{Message: dto.MessagePasswordReset})
}

// Onboarding completes the caller's profile
// @Summary Complete onboarding
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.OnboardingRequest true "Onboarding Request"
// @Success 200 {object} dto.OnboardingResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/onboarding [post]
// @Security BearerAuth
func (handler *Handler) Onboarding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Onboarding")
	defer scope.End()

	req := dto.OnboardingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.CompleteOnboarding(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete onboarding")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Onboarding completed by user " + userID)

	response.WithBody(w, http.StatusOK, res)
}
