package support

import (
	"net/http"

	"cheapticket/infras/otel"
	"cheapticket/internal/domains/support/model/dto"
	"cheapticket/internal/domains/support/service"
	"cheapticket/shared/constant"
	"cheapticket/shared/validator"
	"cheapticket/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Support
	otel    otel.Otel
}

func New(service service.Support, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/contact-support", handler.ContactSupport)
}

// ContactSupport forwards a message to the support inbox
// @Summary Contact support
// @Tags Support
// @Accept json
// @Produce json
// @Param request body dto.ContactSupportRequest true "Contact Support Request"
// @Success 200 {object} dto.ContactSupportResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact-support [post]
func (handler *Handler) ContactSupport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ContactSupport")
	defer scope.End()

	req := dto.ContactSupportRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ContactSupport(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to contact support")

		response.WithError(w, err)

		return
	}

	response.WithBody(w, http.StatusOK, res)
}
