package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"cheapticket/config"
	"cheapticket/infras/kafka"
	"cheapticket/infras/mail"
	"cheapticket/infras/metrics"
	"cheapticket/infras/otel"
	"cheapticket/infras/postgres"
	"cheapticket/infras/s3"
	"cheapticket/internal/domains/booking/coupon"
	"cheapticket/internal/domains/booking/model"
	"cheapticket/internal/domains/booking/model/dto"
	"cheapticket/internal/domains/booking/repository"
	userRepo "cheapticket/internal/domains/user/repository"
	"cheapticket/shared"
	"cheapticket/shared/cache"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"
	"cheapticket/shared/failure"
	"cheapticket/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"

	mailPurpose     = "booking"
	exportTimestamp = "20060102150405"
)

const (
	MessageAuthRequired       = "Authentication credentials were not provided."
	MessageOnboardingRequired = "You must complete your profile onboarding before accessing this feature."
	MessageUnknownKind        = "Unknown booking type"
)

type Booking interface {
	CreateHotel(ctx context.Context, req dto.HotelRequest) (dto.CreateResponse, error)
	CreateFlight(ctx context.Context, req dto.FlightRequest) (dto.CreateResponse, error)
	CreateRentalCar(ctx context.Context, req dto.RentalCarRequest) (dto.CreateResponse, error)
	CreateHolidayPackage(ctx context.Context, req dto.HolidayPackageRequest) (dto.CreateResponse, error)
	CreateCruise(ctx context.Context, req dto.CruiseRequest) (dto.CreateResponse, error)
	CreateMultiCityFlight(ctx context.Context, req dto.MultiCityFlightRequest) (dto.CreateResponse, error)
	GetAll(ctx context.Context, kind model.Kind, params gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, kind model.Kind, id string) (dto.View, error)
	Delete(ctx context.Context, kind model.Kind, id string) error
	Export(ctx context.Context, kind model.Kind, filter dto.ListFilter) (dto.ExportResponse, error)
}

type serviceImpl struct {
	repos    repository.Repositories
	userRepo userRepo.User
	coupons  coupon.Generator
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	mailer   mail.Mailer
	kafka    kafka.Client
	storage  s3.S3
	metrics  *metrics.Metrics
}

func New(
	repos repository.Repositories,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	mailer mail.Mailer,
	kafka kafka.Client,
	storage s3.S3,
	metrics *metrics.Metrics,
) Booking {
	return &serviceImpl{
		repos:    repos,
		userRepo: userRepo,
		coupons:  coupon.NewGenerator(cfg.Coupon.Prefix, cfg.Coupon.Base, repos),
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		mailer:   mailer,
		kafka:    kafka,
		storage:  storage,
		metrics:  metrics,
	}
}

func (s *serviceImpl) CreateHotel(ctx context.Context, req dto.HotelRequest) (dto.CreateResponse, error) {
	return create(ctx, s, model.KindHotel, req.Coupon, req.ToModel, s.repos.Hotels.Insert)
}

func (s *serviceImpl) CreateFlight(ctx context.Context, req dto.FlightRequest) (dto.CreateResponse, error) {
	return create(ctx, s, model.KindFlight, req.Coupon, req.ToModel, s.repos.Flights.Insert)
}

func (s *serviceImpl) CreateRentalCar(ctx context.Context, req dto.RentalCarRequest) (dto.CreateResponse, error) {
	return create(ctx, s, model.KindRentalCar, req.Coupon, req.ToModel, s.repos.RentalCars.Insert)
}

func (s *serviceImpl) CreateHolidayPackage(ctx context.Context, req dto.HolidayPackageRequest) (dto.CreateResponse, error) {
	return create(ctx, s, model.KindHolidayPackage, req.Coupon, req.ToModel, s.repos.HolidayPackages.Insert)
}

func (s *serviceImpl) CreateCruise(ctx context.Context, req dto.CruiseRequest) (dto.CreateResponse, error) {
	return create(ctx, s, model.KindCruise, req.Coupon, req.ToModel, s.repos.Cruises.Insert)
}

func (s *serviceImpl) CreateMultiCityFlight(ctx context.Context, req dto.MultiCityFlightRequest) (dto.CreateResponse, error) {
	return create(ctx, s, model.KindMultiCityFlight, "", req.ToModel, s.insertMultiCityFlight)
}

// insertMultiCityFlight writes the parent row and its legs in one transaction.
func (s *serviceImpl) insertMultiCityFlight(ctx context.Context, flight model.MultiCityFlight) error {
	return s.repos.Transactor.WithTx(ctx, func(tx *sqlx.Tx) error { // nolint:wrapcheck
		if err := s.repos.MultiCityFlights.InsertTx(ctx, tx, flight); err != nil {
			return fmt.Errorf("failed to insert multi-city flight: %w", err)
		}

		if err := s.repos.Legs.InsertBulkTx(ctx, tx, flight.Legs); err != nil {
			return fmt.Errorf("failed to insert multi-city flight legs: %w", err)
		}

		return nil
	})
}

func (s *serviceImpl) GetAll(ctx context.Context, kind model.Kind, params gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error) {
	switch kind {
	case model.KindHotel:
		return getAll(ctx, s, kind, s.repos.Hotels, params, filter)
	case model.KindFlight:
		return getAll(ctx, s, kind, s.repos.Flights, params, filter)
	case model.KindRentalCar:
		return getAll(ctx, s, kind, s.repos.RentalCars, params, filter)
	case model.KindHolidayPackage:
		return getAll(ctx, s, kind, s.repos.HolidayPackages, params, filter)
	case model.KindCruise:
		return getAll(ctx, s, kind, s.repos.Cruises, params, filter)
	case model.KindMultiCityFlight:
		return getAll(ctx, s, kind, s.repos.MultiCityFlights, params, filter)
	}

	return dto.GetBookingsResponse{}, failure.NotFound(MessageUnknownKind) // nolint:wrapcheck
}

func (s *serviceImpl) Get(ctx context.Context, kind model.Kind, id string) (dto.View, error) {
	switch kind {
	case model.KindHotel:
		return get(ctx, s, kind, s.repos.Hotels, id)
	case model.KindFlight:
		return get(ctx, s, kind, s.repos.Flights, id)
	case model.KindRentalCar:
		return get(ctx, s, kind, s.repos.RentalCars, id)
	case model.KindHolidayPackage:
		return get(ctx, s, kind, s.repos.HolidayPackages, id)
	case model.KindCruise:
		return get(ctx, s, kind, s.repos.Cruises, id)
	case model.KindMultiCityFlight:
		return get(ctx, s, kind, s.repos.MultiCityFlights, id)
	}

	return nil, failure.NotFound(MessageUnknownKind) // nolint:wrapcheck
}

func (s *serviceImpl) Delete(ctx context.Context, kind model.Kind, id string) error {
	switch kind {
	case model.KindHotel:
		return remove(ctx, s, kind, s.repos.Hotels, id)
	case model.KindFlight:
		return remove(ctx, s, kind, s.repos.Flights, id)
	case model.KindRentalCar:
		return remove(ctx, s, kind, s.repos.RentalCars, id)
	case model.KindHolidayPackage:
		return remove(ctx, s, kind, s.repos.HolidayPackages, id)
	case model.KindCruise:
		return remove(ctx, s, kind, s.repos.Cruises, id)
	case model.KindMultiCityFlight:
		return remove(ctx, s, kind, s.repos.MultiCityFlights, id)
	}

	return failure.NotFound(MessageUnknownKind) // nolint:wrapcheck
}

func (s *serviceImpl) Export(ctx context.Context, kind model.Kind, filter dto.ListFilter) (dto.ExportResponse, error) {
	switch kind {
	case model.KindHotel:
		return export(ctx, s, kind, s.repos.Hotels, filter)
	case model.KindFlight:
		return export(ctx, s, kind, s.repos.Flights, filter)
	case model.KindRentalCar:
		return export(ctx, s, kind, s.repos.RentalCars, filter)
	case model.KindHolidayPackage:
		return export(ctx, s, kind, s.repos.HolidayPackages, filter)
	case model.KindCruise:
		return export(ctx, s, kind, s.repos.Cruises, filter)
	case model.KindMultiCityFlight:
		return export(ctx, s, kind, s.repos.MultiCityFlights, filter)
	}

	return dto.ExportResponse{}, failure.NotFound(MessageUnknownKind) // nolint:wrapcheck
}

// owner resolves the caller a booking is saved for. Anonymous callers are
// accepted only when global auth is switched off.
func (s *serviceImpl) owner(ctx context.Context) (dto.Owner, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" || userID == constant.ContextGuest {
		if s.cfg.App.GlobalAuthRequired {
			return dto.Owner{}, failure.Unauthorized(MessageAuthRequired) // nolint:wrapcheck
		}

		return dto.Owner{}, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get booking owner")

		return dto.Owner{}, fmt.Errorf("failed to get booking owner: %w", err)
	}

	if user.ID == "" {
		return dto.Owner{}, failure.Unauthorized(MessageAuthRequired) // nolint:wrapcheck
	}

	if s.cfg.App.GlobalAuthRequired && !user.IsOnboardingCompleted {
		return dto.Owner{}, failure.Forbidden(MessageOnboardingRequired) // nolint:wrapcheck
	}

	return dto.Owner{
		UserID:       &user.ID,
		FirstName:    user.FirstName,
		CustomerName: user.FullName(),
		PhoneNumber:  user.Phone(),
		Email:        user.Email,
	}, nil
}

// notify mails the support inbox. Failures are counted and logged only.
func (s *serviceImpl) notify(ctx context.Context, kind model.Kind, view dto.View) {
	err := s.mailer.Send(ctx, []string{s.cfg.Mail.SupportAddress}, dto.MailSubject(kind), view.MailBody())
	if err != nil {
		s.metrics.IncMailFailure(mailPurpose)
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to send booking confirmation")
	}
}

// publish emits the saved event. Failures are logged only.
func (s *serviceImpl) publish(ctx context.Context, event dto.BookingEvent) {
	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic.BookingSaved, kafka.Message{Key: event.ID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("kind", event.Kind.String()).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, kind model.Kind, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetAllBooking, kind.String()))

		if id == "" {
			return
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, kind.String(), id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}
	}()
}

// attachLegs fills the legs of multi-city rows and leaves other kinds untouched.
func attachLegs[T model.Record](ctx context.Context, s *serviceImpl, rows []T) ([]T, error) {
	flights, ok := any(rows).([]model.MultiCityFlight)
	if !ok || len(flights) == 0 {
		return rows, nil
	}

	ids := make([]string, len(flights))
	for i, flight := range flights {
		ids[i] = flight.ID
	}

	legs, err := repository.LegsOf(ctx, s.repos.Legs, ids...)
	if err != nil {
		return nil, fmt.Errorf("failed to attach legs: %w", err)
	}

	for i := range flights {
		flights[i].Legs = legs[flights[i].ID]
	}

	return any(flights).([]T), nil
}

func create[T model.Record](
	ctx context.Context,
	s *serviceImpl,
	kind model.Kind,
	supplied string,
	build func(owner dto.Owner, coupon string) (T, error),
	insert func(ctx context.Context, record T) error,
) (res dto.CreateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("kind", kind.String())

	owner, err := s.owner(ctx)
	if err != nil {
		return res, err
	}

	code, err := s.coupons.Resolve(ctx, supplied)
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to resolve coupon")

		return res, fmt.Errorf("failed to resolve coupon: %w", err)
	}

	record, err := build(owner, code)
	if err != nil {
		return res, err
	}

	if err = insert(ctx, record); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			log.Warn().Err(err).Str("kind", kind.String()).Msg("booking owner removed before save")

			return res, failure.Unauthorized(MessageAuthRequired) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to save booking")

		return res, fmt.Errorf("failed to save %s booking: %w", kind, err)
	}

	view := dto.ToView(record)

	s.notify(ctx, kind, view)
	s.publish(ctx, dto.NewBookingEvent(kind, record))
	s.metrics.IncBookingSaved(kind.String())
	s.invalidate(ctx, kind, "")

	return dto.CreateResponse{Message: dto.SavedMessage(kind), Data: view}, nil
}

type page[T model.Record] struct {
	Rows  []T `json:"rows"`
	Total int `json:"total"`
}

func getAll[T model.Record](
	ctx context.Context,
	s *serviceImpl,
	kind model.Kind,
	repo repository.Booking[T],
	params gDto.QueryParams,
	filter dto.ListFilter,
) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.SortColumn(kind.Table(), dto.SortableFields, constant.FieldCreatedAt)
	group := filter.ToFilterGroup(kind)

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllBooking, kind.String()), params, group)

	var cached page[T]
	if err = s.cache.Get(ctx, cacheKey, &cached); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return dto.FromModels(kind, cached.Rows, cached.Total, params.Limit), nil
	}

	total, err := repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	rows, err := repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	rows, err = attachLegs(ctx, s, rows)
	if err != nil {
		log.Error().Err(err).Msg("failed to get multi-city legs")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, page[T]{Rows: rows, Total: total}, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return dto.FromModels(kind, rows, total, params.Limit), nil
}

func get[T model.Record](ctx context.Context, s *serviceImpl, kind model.Kind, repo repository.Booking[T], id string) (res dto.View, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, kind.String(), id)

	var record T
	if err = s.cache.Get(ctx, cacheKey, &record); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return dto.ToView(record), nil
	}

	record, err = repo.Get(ctx, shared.FilterByID(id, model.FieldID, kind.Table()))
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to get booking")

		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if model.Base(record).ID == "" {
		return nil, failure.NotFound(kind.Title() + " booking not found") // nolint:wrapcheck
	}

	rows, err := attachLegs(ctx, s, []T{record})
	if err != nil {
		log.Error().Err(err).Msg("failed to get multi-city legs")

		return nil, err
	}

	record = rows[0]

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, record, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return dto.ToView(record), nil
}

func remove[T model.Record](ctx context.Context, s *serviceImpl, kind model.Kind, repo repository.Booking[T], id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, kind.Table())

	exist, err := repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound(kind.Title() + " booking not found") // nolint:wrapcheck
	}

	if err = repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, kind, id)

	return nil
}

func export[T model.Record](
	ctx context.Context,
	s *serviceImpl,
	kind model.Kind,
	repo repository.Booking[T],
	filter dto.ListFilter,
) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{}
	params.SortColumn(kind.Table(), dto.SortableFields, constant.FieldCreatedAt)

	rows, err := repo.GetAll(ctx, params, filter.ToFilterGroup(kind))
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to get bookings for export")

		return res, fmt.Errorf("failed to get bookings for export: %w", err)
	}

	rows, err = attachLegs(ctx, s, rows)
	if err != nil {
		return res, err
	}

	data, err := encodeCSV(rows)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode bookings")

		return res, fmt.Errorf("failed to encode bookings: %w", err)
	}

	fileName := fmt.Sprintf("%s-%s.csv", kind, timezone.Now().Format(exportTimestamp))

	url, err := s.storage.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, s.cfg.External.S3.ExportDirectory, fileName, constant.ContentTypeCSV, data)
	if err != nil {
		log.Error().Err(err).Str("kind", kind.String()).Msg("failed to upload booking export")

		return res, fmt.Errorf("failed to upload booking export: %w", err)
	}

	return dto.ExportResponse{
		Kind: kind,
		URL:  url,
		Key:  s.storage.GetObjectNameFromURL(s.cfg.External.S3.BucketName, url),
		Rows: len(rows),
	}, nil
}

func encodeCSV[T model.Record](rows []T) ([]byte, error) {
	var zero T

	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	if err := writer.Write(dto.ToView(zero).CSVHeader()); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(dto.ToView(row).CSVRow()); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
