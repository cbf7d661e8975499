package dto

import (
	"net/http"

	"cheapticket/internal/domains/otplog/model"
	"cheapticket/shared"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"
	"cheapticket/shared/timezone"
)

type OTPLogResponse struct {
	ID           string  `json:"id"`
	UserID       *string `json:"user_id"`
	UserEmail    *string `json:"user_email"`
	Identifier   string  `json:"identifier"`
	OTPCode      string  `json:"otp_code"`
	IsSuccessful bool    `json:"is_successful"`
	Timestamp    string  `json:"timestamp"`
}

func (r *OTPLogResponse) FromModel(log model.OTPLog) {
	r.ID = log.ID
	r.UserID = log.UserID
	r.UserEmail = log.UserEmail
	r.Identifier = log.Identifier
	r.OTPCode = log.OTPCode
	r.IsSuccessful = log.IsSuccessful
	r.Timestamp = timezone.Format(log.CreatedAt, constant.DateFormat)
}

type GetOTPLogsResponse struct {
	Logs      []OTPLogResponse `json:"logs"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetOTPLogsResponse) FromModels(models []model.OTPLog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]OTPLogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}

// ListFilter narrows the audit trail listing.
type ListFilter struct {
	IsSuccessful *bool
	Search       string
}

func (f *ListFilter) FromRequest(r *http.Request, search string) {
	f.IsSuccessful = shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsSuccessful))
	f.Search = search
}

func (f ListFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.IsSuccessful != nil {
		group.Add(gDto.Filter{
			Field:    model.FieldIsSuccessful,
			Value:    *f.IsSuccessful,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	group.Add(gDto.SearchFilter(f.Search,
		model.TableName+"."+model.FieldIdentifier,
		model.TableName+"."+model.FieldOTPCode,
		"users.email",
	))

	return group
}

var SortableFields = []string{model.FieldCreatedAt, model.FieldIdentifier, model.FieldIsSuccessful}
