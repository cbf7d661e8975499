package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"cheapticket/infras/otel"
	"cheapticket/infras/postgres"
	"cheapticket/internal/domains/user/model"
	"cheapticket/shared"
	gDto "cheapticket/shared/dto"
	gRepo "cheapticket/shared/repository"
)

// otpMatchLimit caps the code-only lookup; two rows are enough to detect a collision.
const otpMatchLimit = 2

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByEmailAndOTP(ctx context.Context, email, otp string) (model.User, error)
	FindByOTP(ctx context.Context, otp string) ([]model.User, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

// GetByEmail returns a zero User when no account has the address.
func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.Get(ctx, EmailFilter(email))
}

// GetByEmailAndOTP matches the stored code exactly.
func (r *repositoryImpl) GetByEmailAndOTP(ctx context.Context, email, otp string) (model.User, error) {
	filter := EmailFilter(email)
	filter.Add(gDto.Filter{
		Field:    model.FieldOTP,
		Value:    otp,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return r.Get(ctx, filter)
}

func (r *repositoryImpl) FindByOTP(ctx context.Context, otp string) ([]model.User, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOTP,
				Value:    otp,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return r.GetAll(ctx, gDto.QueryParams{Limit: otpMatchLimit}, filter)
}

// EmailFilter matches the normalized address.
func EmailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Value:    model.NormalizeEmail(email),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
