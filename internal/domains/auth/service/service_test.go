package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"cheapticket/config"
	"cheapticket/infras/jwt"
	jwtMocks "cheapticket/infras/jwt/mocks"
	mailMocks "cheapticket/infras/mail/mocks"
	"cheapticket/infras/otel/mocks"
	"cheapticket/internal/domains/auth/model/dto"
	"cheapticket/internal/domains/auth/service"
	otpLogMocks "cheapticket/internal/domains/otplog/mocks"
	otpLogModel "cheapticket/internal/domains/otplog/model"
	userMocks "cheapticket/internal/domains/user/mocks"
	userModel "cheapticket/internal/domains/user/model"
	cacheMocks "cheapticket/shared/cache/mocks"
	"cheapticket/shared/constant"
	"cheapticket/shared/failure"
	"cheapticket/shared/password"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	users   *userMocks.MockUser
	otpLogs *otpLogMocks.MockOTPLog
	jwt     *jwtMocks.MockJWT
	mailer  *mailMocks.MockMailer
	svc     service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.OTP.ExpirySeconds = 120

	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := fixture{
		users:   userMocks.NewMockUser(ctrl),
		otpLogs: otpLogMocks.NewMockOTPLog(ctrl),
		jwt:     jwtMocks.NewMockJWT(ctrl),
		mailer:  mailMocks.NewMockMailer(ctrl),
	}
	f.svc = service.New(f.users, f.otpLogs, cfg, redisCache, mocks.NewOtel(), f.jwt, f.mailer, nil)

	return f
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func stringPtr(s string) *string {
	return &s
}

var tokens = &jwt.TokenPair{Access: "access-token", Refresh: "refresh-token"}

func TestAuthService_SendOTP(t *testing.T) {
	existing := userModel.User{ID: "user-1", Email: "jane@example.com", IsActive: true}

	tests := []struct {
		name      string
		req       dto.SendOTPRequest
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "existing user receives a code",
			req:  dto.SendOTPRequest{Email: "jane@example.com"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(existing, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						code, ok := fields[userModel.FieldOTP].(string)
						assert.True(t, ok)
						assert.Len(t, code, 6)
						assert.Contains(t, fields, userModel.FieldOTPCreatedAt)

						return nil
					})
				f.mailer.EXPECT().Send(gomock.Any(), []string{"jane@example.com"}, dto.OTPMailSubject, gomock.Any()).Return(nil)
				f.otpLogs.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry otpLogModel.OTPLog) error {
						assert.Equal(t, "user-1", *entry.UserID)
						assert.Equal(t, "jane@example.com", entry.Identifier)
						assert.False(t, entry.IsSuccessful)

						return nil
					})
			},
		},
		{
			name: "unknown email creates an account",
			req:  dto.SendOTPRequest{Email: "New@Example.com"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "New@Example.com").Return(userModel.User{}, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "new@example.com", user.Email)
						assert.True(t, password.IsUnusable(user.Password))
						assert.True(t, user.IsActive)
						assert.True(t, user.IsAuthRequired)
						assert.False(t, user.IsOnboardingCompleted)

						return nil
					})
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().Send(gomock.Any(), []string{"new@example.com"}, dto.OTPMailSubject, gomock.Any()).Return(nil)
				f.otpLogs.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "concurrent signup reuses the winning row",
			req:  dto.SendOTPRequest{Email: "jane@example.com"},
			setupMock: func(f fixture) {
				gomock.InOrder(
					f.users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(userModel.User{}, nil),
					f.users.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").Return(existing, nil),
				)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (user): %w", &pq.Error{Code: "23505"}))
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().Send(gomock.Any(), []string{"jane@example.com"}, dto.OTPMailSubject, gomock.Any()).Return(nil)
				f.otpLogs.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry otpLogModel.OTPLog) error {
						assert.Equal(t, "user-1", *entry.UserID)

						return nil
					})
			},
		},
		{
			name: "insert error other than duplicate",
			req:  dto.SendOTPRequest{Email: "jane@example.com"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
		{
			name: "mail failure is returned",
			req:  dto.SendOTPRequest{Email: "jane@example.com"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(existing, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
			},
			wantErr: true,
		},
		{
			name: "lookup error",
			req:  dto.SendOTPRequest{Email: "jane@example.com"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.SendOTP(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_VerifyOTP(t *testing.T) {
	pending := userModel.User{
		ID:           "user-1",
		Email:        "jane@example.com",
		OTP:          stringPtr("123456"),
		OTPCreatedAt: timePtr(time.Now()),
	}

	onboarded := pending
	onboarded.IsOnboardingCompleted = true
	onboarded.FirstName = "Jane"
	onboarded.LastName = "Doe"
	onboarded.PhoneNumber = stringPtr("08123456789")
	onboarded.Address = stringPtr("1 Main St")

	expired := pending
	expired.OTPCreatedAt = timePtr(time.Now().Add(-3 * time.Minute))

	req := dto.VerifyOTPRequest{Email: "jane@example.com", OTP: "123456"}

	tests := []struct {
		name        string
		setupMock   func(f fixture)
		wantCode    int
		wantMessage string
		wantDetails bool
	}{
		{
			name: "pending onboarding",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmailAndOTP(gomock.Any(), req.Email, req.OTP).Return(pending, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, true, fields[userModel.FieldIsEmailVerified])
						assert.Equal(t, true, fields[userModel.FieldIsActive])
						assert.Nil(t, fields[userModel.FieldOTP])
						assert.Nil(t, fields[userModel.FieldOTPCreatedAt])

						return nil
					})
				f.otpLogs.EXPECT().MarkSuccessful(gomock.Any(), "user-1", "123456").Return(nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "jane@example.com", "customer").Return(tokens, nil)
			},
			wantMessage: dto.MessageOnboardingPending,
		},
		{
			name: "onboarded user gets details",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmailAndOTP(gomock.Any(), req.Email, req.OTP).Return(onboarded, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.otpLogs.EXPECT().MarkSuccessful(gomock.Any(), "user-1", "123456").Return(nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokens, nil)
			},
			wantMessage: dto.MessageOTPVerified,
			wantDetails: true,
		},
		{
			name: "no match",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmailAndOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: dto.MessageInvalidOTPOrEmail,
		},
		{
			name: "expired code is left intact",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmailAndOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return(expired, nil)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: dto.MessageOTPExpired,
		},
		{
			name: "token error",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmailAndOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.otpLogs.EXPECT().MarkSuccessful(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("no secret"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.VerifyOTP(context.Background(), req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMessage != "" {
					assert.EqualError(t, err, tt.wantMessage)
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantMessage, res.Message)
			assert.Equal(t, "access-token", res.Tokens.Access)
			assert.Equal(t, "refresh-token", res.Tokens.Refresh)

			if tt.wantDetails {
				assert.True(t, res.IsOnboardingCompleted)
				assert.Equal(t, "Jane", res.UserDetails.FirstName)
				assert.Equal(t, "jane@example.com", res.UserDetails.Email)
			} else {
				assert.False(t, res.IsOnboardingCompleted)
				assert.Nil(t, res.UserDetails)
			}
		})
	}
}

func TestAuthService_SignInOTP(t *testing.T) {
	user := userModel.User{ID: "user-1", Email: "jane@example.com", OTPCreatedAt: timePtr(time.Now())}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "single match signs in",
			setupMock: func(f fixture) {
				f.users.EXPECT().FindByOTP(gomock.Any(), "123456").Return([]userModel.User{user}, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.otpLogs.EXPECT().MarkSuccessful(gomock.Any(), "user-1", "123456").Return(nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokens, nil)
			},
		},
		{
			name: "no match",
			setupMock: func(f fixture) {
				f.users.EXPECT().FindByOTP(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  dto.MessageInvalidOTP,
		},
		{
			name: "collision",
			setupMock: func(f fixture) {
				f.users.EXPECT().FindByOTP(gomock.Any(), gomock.Any()).Return([]userModel.User{user, {ID: "user-2"}}, nil)
			},
			wantCode: http.StatusInternalServerError,
			wantMsg:  dto.MessageDuplicateOTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.SignInOTP(context.Background(), dto.SignInOTPRequest{OTP: "123456"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.EqualError(t, err, tt.wantMsg)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.Tokens.Access)
		})
	}
}

func TestAuthService_SignIn(t *testing.T) {
	hashed, err := password.Hash("secret-pass")
	assert.NoError(t, err)

	user := userModel.User{ID: "user-1", Email: "jane@example.com", Password: hashed, IsActive: true}

	inactive := user
	inactive.IsActive = false

	tests := []struct {
		name      string
		req       dto.SignInRequest
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "success",
			req:  dto.SignInRequest{Email: "jane@example.com", Password: "secret-pass"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "jane@example.com", "customer").Return(tokens, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "wrong password",
			req:  dto.SignInRequest{Email: "jane@example.com", Password: "nope"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown email",
			req:  dto.SignInRequest{Email: "ghost@example.com", Password: "secret-pass"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive account",
			req:  dto.SignInRequest{Email: "jane@example.com", Password: "secret-pass"},
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.SignIn(context.Background(), tt.req)

			if tt.wantErr {
				assert.EqualError(t, err, dto.MessageInvalidCredentials)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "refresh-token", res.Tokens.Refresh)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	claims := &jwt.Claims{UserID: "user-1", Email: "jane@example.com", Role: constant.RoleStaff, Type: jwt.RefreshToken}
	staff := userModel.User{ID: "user-1", Email: "jane@example.com", IsActive: true, IsStaff: true}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(staff, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "jane@example.com", constant.RoleStaff).Return(tokens, nil)
			},
		},
		{
			name: "demoted account gets its current role",
			setupMock: func(f fixture) {
				demoted := staff
				demoted.IsStaff = false

				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(demoted, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "jane@example.com", constant.RoleCustomer).Return(tokens, nil)
			},
		},
		{
			name: "invalid token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deleted account",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive account",
			setupMock: func(f fixture) {
				inactive := staff
				inactive.IsActive = false

				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(inactive, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "lookup error",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{Refresh: "refresh-token"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.Tokens.Access)
		})
	}
}

func TestAuthService_CompleteOnboarding(t *testing.T) {
	req := dto.OnboardingRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		PhoneNumber: "08123456789",
		Address:     "1 Main St",
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(userModel.User{ID: "user-1", Email: "jane@example.com"}, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, true, fields[userModel.FieldIsOnboardingCompleted])
						assert.Equal(t, "08123456789", fields[userModel.FieldPhoneNumber])

						return nil
					})
			},
		},
		{
			name: "already complete",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(userModel.User{ID: "user-1", IsOnboardingCompleted: true}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "missing user",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.CompleteOnboarding(context.Background(), req, "user-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, dto.MessageOnboardingComplete, res.Message)
			assert.Equal(t, "Jane", res.UserDetails.FirstName)
			assert.Equal(t, "1 Main St", *res.UserDetails.Address)
			assert.Equal(t, "jane@example.com", res.UserDetails.Email)
		})
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	user := userModel.User{ID: "user-1", Email: "jane@example.com", OTPCreatedAt: timePtr(time.Now())}

	expired := user
	expired.OTPCreatedAt = timePtr(time.Now().Add(-time.Hour))

	req := dto.ForgotPasswordRequest{Email: "jane@example.com", OTP: "123456", NewPassword: "brand-new"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantMsg   string
	}{
		{
			name: "success",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmailAndOTP(gomock.Any(), req.Email, req.OTP).Return(user, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						hashed, ok := fields[userModel.FieldPassword].(string)
						assert.True(t, ok)
						assert.NoError(t, password.Verify("brand-new", hashed))
						assert.Nil(t, fields[userModel.FieldOTP])

						return nil
					})
			},
		},
		{
			name: "invalid code",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmailAndOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantMsg: dto.MessageInvalidOTPOrEmail,
		},
		{
			name: "expired code",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByEmailAndOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return(expired, nil)
			},
			wantMsg: dto.MessageOTPExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ForgotPassword(context.Background(), req)

			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
