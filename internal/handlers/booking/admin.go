package booking

import (
	"net/http"

	"cheapticket/internal/domains/booking/model"
	"cheapticket/internal/domains/booking/model/dto"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"
	"cheapticket/shared/validator"
	"cheapticket/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// AdminRouter mounts the staff booking views. The caller applies auth and RBAC.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Get("/bookings/{kind}", handler.GetBookings)
	router.Post("/bookings/{kind}/export", handler.ExportBookings)
	router.Get("/bookings/{kind}/{id}", handler.GetBookingByID)
	router.Delete("/bookings/{kind}/{id}", handler.DeleteBooking)
}

func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, constant.RequestParamID)

	return id, validator.ValidateVar(constant.RequestParamID, id, "required,uuid")
}

func kindParam(r *http.Request) model.Kind {
	return model.Kind(chi.URLParam(r, constant.RequestParamKind))
}

// GetBookings lists saved searches of one kind
// @Summary List bookings
// @Description kind is one of hotel, flight, rentalcar, holidaypackage, cruise, multicityflight.
// @Tags Admin
// @Produce json
// @Param kind path string true "Booking kind"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param user_id query string false "Filter by owner, guest for anonymous bookings"
// @Param created_from query string false "Created on or after (YYYY-MM-DD)"
// @Param created_to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admin/bookings/{kind} [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.ListFilter{}
	filter.FromRequest(r, queryParams.Search)

	res, err := handler.service.GetAll(ctx, kindParam(r), queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID returns one saved search
// @Summary Get booking
// @Tags Admin
// @Produce json
// @Param kind path string true "Booking kind"
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.HotelResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admin/bookings/{kind}/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, kindParam(r), id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteBooking removes a saved search
// @Summary Delete booking
// @Tags Admin
// @Produce json
// @Param kind path string true "Booking kind"
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/admin/bookings/{kind}/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, kindParam(r), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// ExportBookings uploads a CSV of one kind to object storage
// @Summary Export bookings
// @Tags Admin
// @Produce json
// @Param kind path string true "Booking kind"
// @Param search query string false "Search term"
// @Param user_id query string false "Filter by owner, guest for anonymous bookings"
// @Param created_from query string false "Created on or after (YYYY-MM-DD)"
// @Param created_to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.ExportResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{kind}/export [post]
// @Security BearerAuth
func (handler *Handler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	filter := dto.ListFilter{}
	filter.FromRequest(r, queryParams.Search)

	res, err := handler.service.Export(ctx, kindParam(r), filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings exported to " + res.URL)

	response.WithJSON(w, http.StatusOK, res)
}
