package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"cheapticket/config"
	"cheapticket/infras/kafka"
	kafkaMocks "cheapticket/infras/kafka/mocks"
	mailMocks "cheapticket/infras/mail/mocks"
	"cheapticket/infras/otel/mocks"
	s3Mocks "cheapticket/infras/s3/mocks"
	bookingMocks "cheapticket/internal/domains/booking/mocks"
	"cheapticket/internal/domains/booking/model"
	"cheapticket/internal/domains/booking/model/dto"
	"cheapticket/internal/domains/booking/repository"
	"cheapticket/internal/domains/booking/service"
	userMocks "cheapticket/internal/domains/user/mocks"
	userModel "cheapticket/internal/domains/user/model"
	cacheMocks "cheapticket/shared/cache/mocks"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"
	"cheapticket/shared/failure"
	repoMocks "cheapticket/shared/repository/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	supportAddress = "support@cheaptickethub.com"
	bookingTopic   = "booking.search_saved"
)

type fixture struct {
	hotels     *bookingMocks.MockBooking[model.Hotel]
	flights    *bookingMocks.MockBooking[model.Flight]
	cars       *bookingMocks.MockBooking[model.RentalCar]
	packages   *bookingMocks.MockBooking[model.HolidayPackage]
	cruises    *bookingMocks.MockBooking[model.Cruise]
	multiCity  *bookingMocks.MockBooking[model.MultiCityFlight]
	legs       *bookingMocks.MockLeg
	transactor *repoMocks.MockTransactor
	users      *userMocks.MockUser
	cache      *cacheMocks.MockRedisCache
	mailer     *mailMocks.MockMailer
	kafka      *kafkaMocks.MockClient
	storage    *s3Mocks.MockS3
	svc        service.Booking
}

func newFixture(t *testing.T, authRequired bool) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.GlobalAuthRequired = authRequired
	cfg.Coupon.Prefix = "CTH0026"
	cfg.Coupon.Base = 1201
	cfg.Mail.SupportAddress = supportAddress
	cfg.Kafka.Topic.BookingSaved = bookingTopic
	cfg.External.S3.BucketName = "exports-bucket"
	cfg.External.S3.ExportDirectory = "exports"

	f := fixture{
		hotels:     bookingMocks.NewMockBooking[model.Hotel](ctrl),
		flights:    bookingMocks.NewMockBooking[model.Flight](ctrl),
		cars:       bookingMocks.NewMockBooking[model.RentalCar](ctrl),
		packages:   bookingMocks.NewMockBooking[model.HolidayPackage](ctrl),
		cruises:    bookingMocks.NewMockBooking[model.Cruise](ctrl),
		multiCity:  bookingMocks.NewMockBooking[model.MultiCityFlight](ctrl),
		legs:       bookingMocks.NewMockLeg(ctrl),
		transactor: repoMocks.NewMockTransactor(ctrl),
		users:      userMocks.NewMockUser(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		mailer:     mailMocks.NewMockMailer(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
		storage:    s3Mocks.NewMockS3(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	repos := repository.Repositories{
		Hotels:           f.hotels,
		Flights:          f.flights,
		RentalCars:       f.cars,
		HolidayPackages:  f.packages,
		Cruises:          f.cruises,
		MultiCityFlights: f.multiCity,
		Legs:             f.legs,
		Transactor:       f.transactor,
	}

	f.svc = service.New(repos, f.users, cfg, f.cache, mocks.NewOtel(), f.mailer, f.kafka, f.storage, nil)

	return f
}

// expectCounts primes the five coupon tables in counting order.
func (f fixture) expectCounts(hotels, flights, cars, packages, cruises int) {
	f.hotels.EXPECT().Count(gomock.Any(), gomock.Any()).Return(hotels, nil)
	f.flights.EXPECT().Count(gomock.Any(), gomock.Any()).Return(flights, nil)
	f.cars.EXPECT().Count(gomock.Any(), gomock.Any()).Return(cars, nil)
	f.packages.EXPECT().Count(gomock.Any(), gomock.Any()).Return(packages, nil)
	f.cruises.EXPECT().Count(gomock.Any(), gomock.Any()).Return(cruises, nil)
}

func (f fixture) expectNotifications(subject string) {
	f.mailer.EXPECT().Send(gomock.Any(), []string{supportAddress}, subject, gomock.Any()).Return(nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), bookingTopic, gomock.Any()).Return(nil)
}

func userContext(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func stringPtr(s string) *string {
	return &s
}

var onboarded = userModel.User{
	ID:                    "user-1",
	Email:                 "jane@example.com",
	FirstName:             "Jane",
	LastName:              "Doe",
	PhoneNumber:           stringPtr("08123456789"),
	IsActive:              true,
	IsOnboardingCompleted: true,
}

var hotelRequest = dto.HotelRequest{
	Place:        "Bali",
	CheckinDate:  "2025-07-01",
	CheckoutDate: "2025-07-05",
	Adults:       2,
	Rooms:        1,
}

func TestBookingService_CreateHotel(t *testing.T) {
	tests := []struct {
		name         string
		ctx          context.Context
		authRequired bool
		req          dto.HotelRequest
		setupMock    func(f fixture)
		wantCoupon   string
		wantCode     int
		wantErr      bool
	}{
		{
			name:         "authenticated user gets a generated coupon",
			ctx:          userContext("user-1"),
			authRequired: true,
			req:          hotelRequest,
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.expectCounts(2, 1, 0, 0, 0)
				f.hotels.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, hotel model.Hotel) error {
						assert.Equal(t, "CTH00261204", hotel.Coupon)
						assert.Equal(t, "Jane Doe", hotel.CustomerName)
						assert.Equal(t, "08123456789", hotel.PhoneNumber)
						assert.Equal(t, "user-1", *hotel.UserID)
						assert.Equal(t, "Bali", hotel.Place)

						return nil
					})
				f.expectNotifications("Hotel Search Confirmation")
			},
			wantCoupon: "CTH00261204",
		},
		{
			name:         "placeholder coupon is replaced",
			ctx:          userContext("user-1"),
			authRequired: true,
			req: func() dto.HotelRequest {
				req := hotelRequest
				req.Coupon = "String"

				return req
			}(),
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.expectCounts(0, 0, 0, 0, 0)
				f.hotels.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.expectNotifications("Hotel Search Confirmation")
			},
			wantCoupon: "CTH00261201",
		},
		{
			name:         "supplied coupon is kept",
			ctx:          userContext("user-1"),
			authRequired: true,
			req: func() dto.HotelRequest {
				req := hotelRequest
				req.Coupon = "SUMMER25"

				return req
			}(),
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.hotels.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.expectNotifications("Hotel Search Confirmation")
			},
			wantCoupon: "SUMMER25",
		},
		{
			name:         "mail failure does not fail the save",
			ctx:          userContext("user-1"),
			authRequired: true,
			req:          hotelRequest,
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.expectCounts(0, 0, 0, 0, 0)
				f.hotels.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
				f.kafka.EXPECT().SendMessages(gomock.Any(), bookingTopic, gomock.Any()).Return(errors.New("broker down"))
			},
			wantCoupon: "CTH00261201",
		},
		{
			name:         "anonymous caller is rejected when auth is required",
			ctx:          context.Background(),
			authRequired: true,
			req:          hotelRequest,
			setupMock:    func(_ fixture) {},
			wantCode:     http.StatusUnauthorized,
			wantErr:      true,
		},
		{
			name:         "incomplete onboarding is forbidden",
			ctx:          userContext("user-1"),
			authRequired: true,
			req:          hotelRequest,
			setupMock: func(f fixture) {
				user := onboarded
				user.IsOnboardingCompleted = false
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
			},
			wantCode: http.StatusForbidden,
			wantErr:  true,
		},
		{
			name:         "anonymous caller is accepted when auth is off",
			ctx:          context.Background(),
			authRequired: false,
			req:          hotelRequest,
			setupMock: func(f fixture) {
				f.expectCounts(0, 0, 0, 0, 0)
				f.hotels.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, hotel model.Hotel) error {
						assert.Nil(t, hotel.UserID)
						assert.Equal(t, constant.ContextGuest, hotel.CreatedBy)

						return nil
					})
				f.expectNotifications("Hotel Search Confirmation")
			},
			wantCoupon: "CTH00261201",
		},
		{
			name:         "bad date is a field error",
			ctx:          userContext("user-1"),
			authRequired: true,
			req: func() dto.HotelRequest {
				req := hotelRequest
				req.CheckinDate = "01/07/2025"

				return req
			}(),
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.expectCounts(0, 0, 0, 0, 0)
			},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
		{
			name:         "insert error",
			ctx:          userContext("user-1"),
			authRequired: true,
			req:          hotelRequest,
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.expectCounts(0, 0, 0, 0, 0)
				f.hotels.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
		{
			name:         "owner deleted mid request",
			ctx:          userContext("user-1"),
			authRequired: true,
			req:          hotelRequest,
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.expectCounts(0, 0, 0, 0, 0)
				f.hotels.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (hotel): %w", &pq.Error{Code: "23503"}))
			},
			wantCode: http.StatusUnauthorized,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.authRequired)
			tt.setupMock(f)

			res, err := f.svc.CreateHotel(tt.ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Hotel search saved successfully", res.Message)

			view, ok := res.Data.(dto.HotelResponse)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCoupon, view.Coupon)
			assert.Equal(t, "2025-07-01", view.CheckinDate)
		})
	}
}

func TestBookingService_CreateFlight(t *testing.T) {
	f := newFixture(t, true)

	f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
	f.expectCounts(3, 0, 0, 0, 0)
	f.flights.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.mailer.EXPECT().Send(gomock.Any(), []string{supportAddress}, "Flight Search Confirmation", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, _, body string) error {
			assert.Contains(t, body, "CGK to DPS")
			assert.Contains(t, body, "Type: One Way")

			return nil
		})
	f.kafka.EXPECT().SendMessages(gomock.Any(), bookingTopic, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			assert.Len(t, messages, 1)

			event, ok := messages[0].Value.(dto.BookingEvent)
			assert.True(t, ok)
			assert.Equal(t, model.KindFlight, event.Kind)
			assert.Equal(t, "CTH00261204", event.Coupon)

			return nil
		})

	res, err := f.svc.CreateFlight(userContext("user-1"), dto.FlightRequest{
		FromLocation:  "CGK",
		ToLocation:    "DPS",
		OneWay:        true,
		DepartureDate: "2025-08-01",
		Adults:        1,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Flight search saved successfully", res.Message)
}

func TestBookingService_CreateOtherKinds(t *testing.T) {
	tests := []struct {
		name      string
		kind      model.Kind
		setupMock func(t *testing.T, f fixture)
		create    func(f fixture) (dto.CreateResponse, error)
	}{
		{
			name: "rental car",
			kind: model.KindRentalCar,
			setupMock: func(t *testing.T, f fixture) {
				f.cars.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, car model.RentalCar) error {
						assert.Equal(t, "CTH00261206", car.Coupon)
						assert.Equal(t, "Denpasar", car.Location)
						assert.True(t, car.PickupTime.Before(car.DropoffTime))

						return nil
					})
			},
			create: func(f fixture) (dto.CreateResponse, error) {
				return f.svc.CreateRentalCar(userContext("user-1"), dto.RentalCarRequest{
					Location:    " Denpasar ",
					PickupTime:  "2025-07-01 10:00:00",
					DropoffTime: "2025-07-03 10:00:00",
				})
			},
		},
		{
			name: "holiday package",
			kind: model.KindHolidayPackage,
			setupMock: func(t *testing.T, f fixture) {
				f.packages.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, pkg model.HolidayPackage) error {
						assert.Equal(t, "CTH00261206", pkg.Coupon)
						assert.Equal(t, "Tokyo", pkg.ToLocation)
						assert.Equal(t, 5, pkg.Duration)
						assert.Equal(t, 2, pkg.Children)

						return nil
					})
			},
			create: func(f fixture) (dto.CreateResponse, error) {
				return f.svc.CreateHolidayPackage(userContext("user-1"), dto.HolidayPackageRequest{
					ToLocation:   "Tokyo",
					FromLocation: "Jakarta",
					Duration:     5,
					Children:     2,
				})
			},
		},
		{
			name: "cruise",
			kind: model.KindCruise,
			setupMock: func(t *testing.T, f fixture) {
				f.cruises.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cruise model.Cruise) error {
						assert.Equal(t, "CTH00261206", cruise.Coupon)
						assert.Equal(t, "Balcony", cruise.Cabins)
						assert.Equal(t, 7, cruise.Duration)
						assert.Equal(t, "Jane Doe", cruise.CustomerName)

						return nil
					})
			},
			create: func(f fixture) (dto.CreateResponse, error) {
				return f.svc.CreateCruise(userContext("user-1"), dto.CruiseRequest{
					ToLocation:   "Alaska",
					FromLocation: "Seattle",
					Duration:     7,
					Cabins:       "Balcony",
					Adults:       2,
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)

			f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
			f.expectCounts(1, 1, 1, 1, 1)
			tt.setupMock(t, f)
			f.expectNotifications(dto.MailSubject(tt.kind))

			res, err := tt.create(f)

			assert.NoError(t, err)
			assert.Equal(t, dto.SavedMessage(tt.kind), res.Message)
		})
	}
}

func TestBookingService_CreateMultiCityFlight(t *testing.T) {
	req := dto.MultiCityFlightRequest{
		Adults: 1,
		Legs: []dto.MultiCityFlightLegRequest{
			{FromLocation: "CGK", ToLocation: "SIN", DepartureDate: "2025-09-01"},
			{FromLocation: "SIN", ToLocation: "NRT", DepartureDate: "2025-09-05"},
		},
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "parent and legs saved in one transaction",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.expectCounts(1, 1, 1, 1, 1)
				f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
						return fn(nil)
					})
				f.multiCity.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, flight model.MultiCityFlight) error {
						assert.Equal(t, "CTH00261206", flight.Coupon)

						return nil
					})
				f.legs.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, legs []model.MultiCityFlightLeg) error {
						assert.Len(t, legs, 2)
						assert.Equal(t, 0, legs[0].Position)
						assert.Equal(t, "NRT", legs[1].ToLocation)
						assert.Equal(t, legs[0].MultiCityFlightID, legs[1].MultiCityFlightID)

						return nil
					})
				f.mailer.EXPECT().Send(gomock.Any(), gomock.Any(), "Multi-City Flight Search Confirmation", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ []string, _, body string) error {
						assert.Contains(t, body, "- CGK to SIN on 2025-09-01")

						return nil
					})
				f.kafka.EXPECT().SendMessages(gomock.Any(), bookingTopic, gomock.Any()).Return(nil)
			},
		},
		{
			name: "leg insert error rolls back",
			setupMock: func(f fixture) {
				f.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(onboarded, nil)
				f.expectCounts(0, 0, 0, 0, 0)
				f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
						return fn(nil)
					})
				f.multiCity.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.legs.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			tt.setupMock(f)

			res, err := f.svc.CreateMultiCityFlight(userContext("user-1"), req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Multi-city flight search saved successfully", res.Message)

			view, ok := res.Data.(dto.MultiCityFlightResponse)
			assert.True(t, ok)
			assert.Len(t, view.Legs, 2)
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("lists hotels with owner columns", func(t *testing.T) {
		f := newFixture(t, true)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.hotels.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		f.hotels.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Hotel, error) {
				assert.Equal(t, "hotels.created_at", params.SortBy)

				hotel := model.Hotel{Place: "Bali"}
				hotel.ID = "hotel-1"
				hotel.OwnerEmail = stringPtr("jane@example.com")
				hotel.CreatedAt = created

				return []model.Hotel{hotel}, nil
			})

		res, err := f.svc.GetAll(context.Background(), model.KindHotel, gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{Search: "bali"})

		assert.NoError(t, err)
		assert.Equal(t, 11, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Bookings, 1)

		view, ok := res.Bookings[0].(dto.HotelResponse)
		assert.True(t, ok)
		assert.Equal(t, "jane@example.com", view.DisplayName)
	})

	t.Run("multi-city rows carry their legs", func(t *testing.T) {
		f := newFixture(t, true)

		flight := model.MultiCityFlight{Adults: 1}
		flight.ID = "mc-1"

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.multiCity.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.multiCity.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.MultiCityFlight{flight}, nil)
		f.legs.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.MultiCityFlightLeg{
			{MultiCityFlightID: "mc-1", Position: 0, FromLocation: "CGK", ToLocation: "SIN"},
			{MultiCityFlightID: "mc-1", Position: 1, FromLocation: "SIN", ToLocation: "NRT"},
		}, nil)

		res, err := f.svc.GetAll(context.Background(), model.KindMultiCityFlight, gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{})

		assert.NoError(t, err)

		view, ok := res.Bookings[0].(dto.MultiCityFlightResponse)
		assert.True(t, ok)
		assert.Len(t, view.Legs, 2)
		assert.Equal(t, "Anonymous", view.DisplayName)
	})

	t.Run("count error", func(t *testing.T) {
		f := newFixture(t, true)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.cruises.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db error"))

		_, err := f.svc.GetAll(context.Background(), model.KindCruise, gDto.QueryParams{}, dto.ListFilter{})

		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		f := newFixture(t, true)

		_, err := f.svc.GetAll(context.Background(), model.Kind("train"), gDto.QueryParams{}, dto.ListFilter{})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(f fixture) {
				car := model.RentalCar{Location: "Denpasar"}
				car.ID = "car-1"

				f.cache.EXPECT().Get(gomock.Any(), "booking:get:rentalcar:car-1", gomock.Any()).Return(errors.New("cache miss"))
				f.cars.EXPECT().Get(gomock.Any(), gomock.Any()).Return(car, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.cars.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RentalCar{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.cars.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.RentalCar{}, errors.New("db error"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), model.KindRentalCar, "car-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)

			view, ok := res.(dto.RentalCarResponse)
			assert.True(t, ok)
			assert.Equal(t, "Denpasar", view.Location)
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "deleted",
			setupMock: func(f fixture) {
				f.packages.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.packages.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "missing",
			setupMock: func(f fixture) {
				f.packages.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
		{
			name: "delete error",
			setupMock: func(f fixture) {
				f.packages.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.packages.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), model.KindHolidayPackage, "pkg-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Export(t *testing.T) {
	t.Run("uploads csv", func(t *testing.T) {
		f := newFixture(t, true)

		hotel := model.Hotel{Place: "Bali", Rooms: 1}
		hotel.ID = "hotel-1"
		hotel.Coupon = "CTH00261201"

		f.hotels.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Hotel{hotel}, nil)
		f.storage.EXPECT().UploadFileBytes(gomock.Any(), "exports-bucket", "exports", gomock.Any(), constant.ContentTypeCSV, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, fileName, _ string, data []byte) (string, error) {
				assert.True(t, strings.HasPrefix(fileName, "hotel-"))
				assert.True(t, strings.HasSuffix(fileName, ".csv"))

				lines := strings.Split(strings.TrimSpace(string(data)), "\n")
				assert.Len(t, lines, 2)
				assert.True(t, strings.HasPrefix(lines[0], "id,user,user_email"))
				assert.Contains(t, lines[1], "CTH00261201")

				return "https://cdn.example.com/exports/" + fileName, nil
			})
		f.storage.EXPECT().GetObjectNameFromURL("exports-bucket", gomock.Any()).Return("exports/hotel.csv")

		res, err := f.svc.Export(context.Background(), model.KindHotel, dto.ListFilter{})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Rows)
		assert.True(t, strings.HasPrefix(res.URL, "https://cdn.example.com/exports/hotel-"))
		assert.Equal(t, "exports/hotel.csv", res.Key)
	})

	t.Run("upload error", func(t *testing.T) {
		f := newFixture(t, true)

		f.hotels.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.storage.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("s3 down"))

		_, err := f.svc.Export(context.Background(), model.KindHotel, dto.ListFilter{})

		assert.Error(t, err)
	})
}
