package otplog

import (
	"net/http"

	"cheapticket/infras/otel"
	"cheapticket/internal/domains/otplog/model"
	"cheapticket/internal/domains/otplog/model/dto"
	"cheapticket/internal/domains/otplog/service"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"
	"cheapticket/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.OTPLog
	otel    otel.Otel
}

func New(service service.OTPLog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/otp-logs", handler.GetOTPLogs)
}

// GetOTPLogs lists the OTP audit trail
// @Summary List OTP logs
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param is_successful query bool false "Filter by outcome"
// @Success 200 {object} response.Data[dto.GetOTPLogsResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/admin/otp-logs [get]
// @Security BearerAuth
func (handler *Handler) GetOTPLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOTPLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SortColumn(model.TableName, dto.SortableFields, model.FieldCreatedAt)

	filter := dto.ListFilter{}
	filter.FromRequest(r, queryParams.Search)

	res, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get otp logs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
