package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"cheapticket/infras/otel"
	"cheapticket/infras/postgres"
	"cheapticket/internal/domains/booking/model"
	gDto "cheapticket/shared/dto"
	gRepo "cheapticket/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Booking is the table access shared by every booking kind.
type Booking[T model.Record] interface {
	Insert(ctx context.Context, model T) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (T, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]T, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Leg interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.MultiCityFlightLeg) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.MultiCityFlightLeg, error)
}

func New[T model.Record](kind model.Kind, db *postgres.Connection, otel otel.Otel) Booking[T] {
	repo := gRepo.NewRepository[T](kind.Entity(), kind.Table(), model.FieldID, db, otel)

	return &repo
}

func NewLeg(db *postgres.Connection, otel otel.Otel) Leg {
	repo := gRepo.NewRepository[model.MultiCityFlightLeg]("multicityflight_leg", model.TableMultiCityFlightLegs, model.FieldID, db, otel)

	return &repo
}

// Repositories groups the booking tables so one service can reach all of them.
type Repositories struct {
	Hotels           Booking[model.Hotel]
	Flights          Booking[model.Flight]
	RentalCars       Booking[model.RentalCar]
	HolidayPackages  Booking[model.HolidayPackage]
	Cruises          Booking[model.Cruise]
	MultiCityFlights Booking[model.MultiCityFlight]
	Legs             Leg
	Transactor       gRepo.Transactor
}

func NewRepositories(db *postgres.Connection, otel otel.Otel) Repositories {
	return Repositories{
		Hotels:           New[model.Hotel](model.KindHotel, db, otel),
		Flights:          New[model.Flight](model.KindFlight, db, otel),
		RentalCars:       New[model.RentalCar](model.KindRentalCar, db, otel),
		HolidayPackages:  New[model.HolidayPackage](model.KindHolidayPackage, db, otel),
		Cruises:          New[model.Cruise](model.KindCruise, db, otel),
		MultiCityFlights: New[model.MultiCityFlight](model.KindMultiCityFlight, db, otel),
		Legs:             NewLeg(db, otel),
		Transactor:       gRepo.NewTransactor(db, otel),
	}
}

// CountCouponRows sums the five single-trip tables. Multi-city rows are not counted.
func (r Repositories) CountCouponRows(ctx context.Context) (int, error) {
	counters := []struct {
		kind  model.Kind
		count func(ctx context.Context, filter gDto.FilterGroup) (int, error)
	}{
		{model.KindHotel, r.Hotels.Count},
		{model.KindFlight, r.Flights.Count},
		{model.KindRentalCar, r.RentalCars.Count},
		{model.KindHolidayPackage, r.HolidayPackages.Count},
		{model.KindCruise, r.Cruises.Count},
	}

	total := 0

	for _, counter := range counters {
		count, err := counter.count(ctx, gDto.FilterGroup{})
		if err != nil {
			return 0, fmt.Errorf("failed to count %s rows: %w", counter.kind, err)
		}

		total += count
	}

	return total, nil
}

// LegsOf returns the legs of the given parents ordered by position.
func LegsOf(ctx context.Context, legs Leg, parentIDs ...string) (map[string][]model.MultiCityFlightLeg, error) {
	grouped := map[string][]model.MultiCityFlightLeg{}
	if len(parentIDs) == 0 {
		return grouped, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldMultiCityID,
				Value:    parentIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableMultiCityFlightLegs,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.TableMultiCityFlightLegs + "." + model.FieldPosition,
		SortDir: gDto.SortDirAsc,
	}

	rows, err := legs.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get multi-city legs: %w", err)
	}

	for _, row := range rows {
		grouped[row.MultiCityFlightID] = append(grouped[row.MultiCityFlightID], row)
	}

	return grouped, nil
}
