package dto

import (
	"cheapticket/infras/jwt"
	userModel "cheapticket/internal/domains/user/model"
	userDto "cheapticket/internal/domains/user/model/dto"
	"cheapticket/shared/constant"
	gModel "cheapticket/shared/model"
	"cheapticket/shared/timezone"

	"github.com/google/uuid"
)

const (
	MessageOTPSent             = "OTP sent successfully"
	MessageOTPVerified         = "OTP verified successfully."
	MessageOnboardingPending   = "OTP verified. Please complete onboarding to gain full access."
	MessageOnboardingComplete  = "Onboarding complete. You now have full access."
	MessagePasswordReset       = "Password reset successful"
	MessageSignedIn            = "Signed in successfully."
	MessageInvalidOTPOrEmail   = "Invalid OTP or Email"
	MessageInvalidOTP          = "Invalid OTP"
	MessageOTPExpired          = "OTP has expired"
	MessageDuplicateOTP        = "Multiple users found with this OTP. Please request a new OTP."
	MessageOnboardingDone      = "Onboarding already complete"
	MessageInvalidCredentials  = "Invalid email or password"
	MessageInvalidRefreshToken = "Invalid or expired refresh token"
)

const (
	OTPMailSubject = "Your OTP Code"
	otpMailBody    = "Your OTP code is "
)

// OTPMailBody renders the plaintext code mail.
func OTPMailBody(code string) string {
	return otpMailBody + code
}

var emailMessages = map[string]string{
	"email.required": "Email address is required.",
	"email.email":    "Enter a valid email address.",
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (SendOTPRequest) Messages() map[string]string {
	return emailMessages
}

// NewUser is the account created on the first code request for an address.
// The password is an unusable marker until one is set through a reset.
func (r SendOTPRequest) NewUser(unusablePassword string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:             uuid.NewString(),
		Email:          userModel.NormalizeEmail(r.Email),
		Password:       unusablePassword,
		IsAuthRequired: true,
		IsActive:       true,
		DateJoined:     now,
		Metadata:       gModel.NewMetadata(now, constant.ContextGuest),
	}
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required,max=6"`
}

func (VerifyOTPRequest) Messages() map[string]string {
	return emailMessages
}

type SignInOTPRequest struct {
	OTP string `json:"otp" validate:"required,max=6"`
}

type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (SignInRequest) Messages() map[string]string {
	return emailMessages
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	OTP         string `json:"otp"          validate:"required,max=6"`
	NewPassword string `json:"new_password" validate:"required,max=72"`
}

func (ForgotPasswordRequest) Messages() map[string]string {
	return emailMessages
}

// OnboardingRequest is the profile a customer fills in once.
type OnboardingRequest struct {
	FirstName   string `json:"first_name"   validate:"required,notblank,max=50"`
	LastName    string `json:"last_name"    validate:"required,notblank,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,digits,min=10,max=15"`
	Address     string `json:"address"      validate:"required,notblank"`
}

func (OnboardingRequest) Messages() map[string]string {
	return map[string]string{
		"phone_number.digits": "Phone number must contain only digits.",
		"phone_number.min":    "Phone number must be between 10 and 15 digits.",
		"phone_number.max":    "Phone number must be between 10 and 15 digits.",
	}
}

// ToUpdate overwrites the profile and flips the onboarding flag.
func (r OnboardingRequest) ToUpdate(by string) map[string]any {
	return map[string]any{
		userModel.FieldFirstName:             r.FirstName,
		userModel.FieldLastName:              r.LastName,
		userModel.FieldPhoneNumber:           r.PhoneNumber,
		userModel.FieldAddress:               r.Address,
		userModel.FieldIsOnboardingCompleted: true,
		constant.FieldModifiedAt:             timezone.Now(),
		constant.FieldModifiedBy:             by,
	}
}

// Apply mirrors ToUpdate on an in-memory user.
func (r OnboardingRequest) Apply(user *userModel.User) {
	user.FirstName = r.FirstName
	user.LastName = r.LastName
	user.PhoneNumber = &r.PhoneNumber
	user.Address = &r.Address
	user.IsOnboardingCompleted = true
}

type MessageResponse struct {
	Message string `json:"message"`
}

// VerifyOTPResponse carries the profile only once onboarding is done.
type VerifyOTPResponse struct {
	Message               string               `json:"message"`
	Tokens                jwt.TokenPair        `json:"tokens"`
	IsOnboardingCompleted bool                 `json:"is_onboarding_completed"`
	UserDetails           *userDto.UserDetails `json:"user_details,omitempty"`
}

func (r *VerifyOTPResponse) FromModel(user userModel.User, tokens *jwt.TokenPair) {
	r.Tokens = *tokens
	r.IsOnboardingCompleted = user.IsOnboardingCompleted

	if !user.IsOnboardingCompleted {
		r.Message = MessageOnboardingPending

		return
	}

	r.Message = MessageOTPVerified
	r.UserDetails = &userDto.UserDetails{}
	r.UserDetails.FromModel(user)
}

type OnboardingResponse struct {
	Message     string              `json:"message"`
	UserDetails userDto.UserDetails `json:"user_details"`
}

func (r *OnboardingResponse) FromModel(user userModel.User) {
	r.Message = MessageOnboardingComplete
	r.UserDetails.FromModel(user)
}

type SignInResponse struct {
	Message string        `json:"message"`
	Tokens  jwt.TokenPair `json:"tokens"`
}

type RefreshTokenResponse struct {
	Tokens jwt.TokenPair `json:"tokens"`
}
