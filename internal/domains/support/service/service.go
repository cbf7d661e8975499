package service

import (
	"context"
	"net/http"

	"cheapticket/config"
	"cheapticket/infras/mail"
	"cheapticket/infras/metrics"
	"cheapticket/infras/otel"
	"cheapticket/internal/domains/support/model/dto"
	"cheapticket/shared/constant"
	"cheapticket/shared/failure"

	"github.com/rs/zerolog/log"
)

type Support interface {
	ContactSupport(ctx context.Context, req dto.ContactSupportRequest) (dto.ContactSupportResponse, error)
}

type serviceImpl struct {
	cfg     *config.Config
	mailer  mail.Mailer
	otel    otel.Otel
	metrics *metrics.Metrics
}

func New(cfg *config.Config, mailer mail.Mailer, otel otel.Otel, metrics *metrics.Metrics) Support {
	return &serviceImpl{
		cfg:     cfg,
		mailer:  mailer,
		otel:    otel,
		metrics: metrics,
	}
}

// ContactSupport forwards the message to the support inbox. Delivery must succeed.
func (s *serviceImpl) ContactSupport(ctx context.Context, req dto.ContactSupportRequest) (res dto.ContactSupportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Support.ContactSupport")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err := s.mailer.Send(ctx, []string{s.cfg.Mail.SupportAddress}, req.Subject, req.Body()); err != nil {
		s.metrics.IncMailFailure("support")
		log.Error().Err(err).Str("from", req.Email).Msg("failed to forward support message")

		return res, &failure.Failure{Code: http.StatusInternalServerError, Message: dto.MessageSendFailed}
	}

	res.Message = dto.MessageSent

	return res, nil
}
