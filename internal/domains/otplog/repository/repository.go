package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"cheapticket/infras/otel"
	"cheapticket/infras/postgres"
	"cheapticket/internal/domains/otplog/model"
	gDto "cheapticket/shared/dto"
	gRepo "cheapticket/shared/repository"
)

type OTPLog interface {
	Insert(ctx context.Context, model model.OTPLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.OTPLog, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	MarkSuccessful(ctx context.Context, userID, code string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.OTPLog]
}

func New(db *postgres.Connection, otel otel.Otel) OTPLog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.OTPLog](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// MarkSuccessful flips every row carrying this user's code.
func (r *repositoryImpl) MarkSuccessful(ctx context.Context, userID, code string) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldOTPCode, Value: code, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return r.Update(ctx, map[string]any{model.FieldIsSuccessful: true}, filter)
}
