package service

import (
	"context"
	"fmt"

	"cheapticket/infras/otel"
	"cheapticket/internal/domains/otplog/model/dto"
	"cheapticket/internal/domains/otplog/repository"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"

	"github.com/rs/zerolog/log"
)

type OTPLog interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOTPLogsResponse, error)
}

type serviceImpl struct {
	repo repository.OTPLog
	otel otel.Otel
}

func New(repo repository.OTPLog, otel otel.Otel) OTPLog {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// GetAll reads straight from the table; the audit trail is never cached.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOTPLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".OTPLog.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count otp logs")

		return res, fmt.Errorf("failed to count otp logs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get otp logs")

		return res, fmt.Errorf("failed to get otp logs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}
