package dto

import (
	"cheapticket/shared/constant"
	"cheapticket/shared/model"
	"cheapticket/shared/timezone"
)

// Metadata is the audit block of admin views. Timestamps are rendered in the
// application zone; the actor columns hold an email or "guest".
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func NewMetadata(audit model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  timezone.Format(audit.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(audit.ModifiedAt, constant.DateFormat),
		CreatedBy:  audit.CreatedBy,
		ModifiedBy: audit.ModifiedBy,
	}
}

func (m *Metadata) FromModel(audit model.Metadata) {
	*m = NewMetadata(audit)
}
