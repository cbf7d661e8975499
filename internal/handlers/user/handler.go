package user

import (
	"net/http"

	"cheapticket/infras/otel"
	"cheapticket/internal/domains/user/model"
	"cheapticket/internal/domains/user/model/dto"
	"cheapticket/internal/domains/user/service"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"
	"cheapticket/shared/validator"
	"cheapticket/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the staff account views. The caller applies auth and RBAC.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/users", handler.GetUsers)
	router.Get("/users/{id}", handler.GetUserByID)
	router.Patch("/users/{id}", handler.UpdateUser)
	router.Delete("/users/{id}", handler.DeleteUser)
	router.Get("/customers", handler.GetCustomers)
}

func listParams(r *http.Request) (gDto.QueryParams, gDto.FilterGroup) {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SortColumn(model.TableName, dto.SortableFields, constant.FieldCreatedAt)

	filter := dto.ListFilter{}
	filter.FromRequest(r, queryParams.Search)

	return queryParams, filter.ToFilterGroup()
}

// GetUsers lists every account
// @Summary List accounts
// @Description Lists all accounts with their derived role. Filters: is_staff, is_active, search.
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param is_staff query bool false "Filter by staff flag"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/admin/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams, filter := listParams(r)

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCustomers lists non-staff accounts
// @Summary List customers
// @Description Filters: is_onboarding_completed, is_auth_required, search.
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param is_onboarding_completed query bool false "Filter by onboarding"
// @Param is_auth_required query bool false "Filter by auth requirement"
// @Success 200 {object} response.Data[dto.GetCustomersResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/admin/customers [get]
// @Security BearerAuth
func (handler *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomers")
	defer scope.End()

	queryParams, filter := listParams(r)

	res, err := handler.service.GetCustomers(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUserByID returns one account
// @Summary Get account
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Router /v1/admin/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateUser edits an account
// @Summary Update account
// @Description Only a superuser may change is_staff.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}
	req := dto.UpdateUserRequest{}

	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update user")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated successfully")
}

// DeleteUser removes an account
// @Summary Delete account
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/admin/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}

func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, constant.RequestParamID)

	return id, validator.ValidateVar(constant.RequestParamID, id, "required,uuid")
}
