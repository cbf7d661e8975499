package booking

import (
	"context"
	"net/http"

	"cheapticket/infras/otel"
	"cheapticket/internal/domains/booking/model/dto"
	"cheapticket/internal/domains/booking/service"
	"cheapticket/shared/constant"
	"cheapticket/shared/validator"
	"cheapticket/transport/http/middleware"
	"cheapticket/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	auth    middleware.AuthRole
	otel    otel.Otel
}

func New(service service.Booking, auth middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Booking)

		routerGroup.Post("/hotel", handler.CreateHotel)
		routerGroup.Post("/flight", handler.CreateFlight)
		routerGroup.Post("/rentalcar", handler.CreateRentalCar)
		routerGroup.Post("/holidaypackage", handler.CreateHolidayPackage)
		routerGroup.Post("/cruise", handler.CreateCruise)
		routerGroup.Post("/multicityflight", handler.CreateMultiCityFlight)
	})
}

// save decodes and validates T, then hands it to create.
func save[T any](handler *Handler, name string, create func(ctx context.Context, req T) (dto.CreateResponse, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
		defer scope.End()

		var req T

		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}

		res, err := create(ctx, req)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("handler", name).Msg("failed to save booking")

			response.WithError(writer, err)

			return
		}

		user, _ := ctx.Value(constant.ContextKeyUserID).(string)
		scope.AddEvent(res.Message + " by user " + user)

		response.WithBody(writer, http.StatusCreated, res)
	}
}

// CreateHotel saves a hotel search
// @Summary Save a hotel search
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.HotelRequest true "Hotel Request"
// @Success 201 {object} dto.CreateResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/hotel [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(writer http.ResponseWriter, request *http.Request) {
	save(handler, "CreateHotel", handler.service.CreateHotel)(writer, request)
}

// CreateFlight saves a flight search
// @Summary Save a flight search
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.FlightRequest true "Flight Request"
// @Success 201 {object} dto.CreateResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/flight [post]
// @Security BearerAuth
func (handler *Handler) CreateFlight(writer http.ResponseWriter, request *http.Request) {
	save(handler, "CreateFlight", handler.service.CreateFlight)(writer, request)
}

// CreateRentalCar saves a rental car search
// @Summary Save a rental car search
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.RentalCarRequest true "Rental Car Request"
// @Success 201 {object} dto.CreateResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/rentalcar [post]
// @Security BearerAuth
func (handler *Handler) CreateRentalCar(writer http.ResponseWriter, request *http.Request) {
	save(handler, "CreateRentalCar", handler.service.CreateRentalCar)(writer, request)
}

// CreateHolidayPackage saves a holiday package search
// @Summary Save a holiday package search
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.HolidayPackageRequest true "Holiday Package Request"
// @Success 201 {object} dto.CreateResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/holidaypackage [post]
// @Security BearerAuth
func (handler *Handler) CreateHolidayPackage(writer http.ResponseWriter, request *http.Request) {
	save(handler, "CreateHolidayPackage", handler.service.CreateHolidayPackage)(writer, request)
}

// CreateCruise saves a cruise search
// @Summary Save a cruise search
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CruiseRequest true "Cruise Request"
// @Success 201 {object} dto.CreateResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/cruise [post]
// @Security BearerAuth
func (handler *Handler) CreateCruise(writer http.ResponseWriter, request *http.Request) {
	save(handler, "CreateCruise", handler.service.CreateCruise)(writer, request)
}

// CreateMultiCityFlight saves a multi-city flight search with its legs
// @Summary Save a multi-city flight search
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.MultiCityFlightRequest true "Multi-City Flight Request"
// @Success 201 {object} dto.CreateResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/multicityflight [post]
// @Security BearerAuth
func (handler *Handler) CreateMultiCityFlight(writer http.ResponseWriter, request *http.Request) {
	save(handler, "CreateMultiCityFlight", handler.service.CreateMultiCityFlight)(writer, request)
}
