package model

import "time"

const (
	TableName  = "otp_logs"
	EntityName = "otp_log"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldIdentifier   = "identifier"
	FieldOTPCode      = "otp_code"
	FieldIsSuccessful = "is_successful"
	FieldCreatedAt    = "created_at"
)

// OTPLog is the append-only trail of issued codes. UserID is nil for
// attempts that never resolved to an account.
type OTPLog struct {
	ID           string    `db:"id"`
	UserID       *string   `db:"user_id"`
	Identifier   string    `db:"identifier"`
	OTPCode      string    `db:"otp_code"`
	IsSuccessful bool      `db:"is_successful"`
	CreatedAt    time.Time `db:"created_at"`
	UserEmail    *string   `db:"user_email" table:"users" column:"email"`
}

func (OTPLog) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = otp_logs.user_id"
}
