package dto

import (
	"fmt"
	"strings"
	"time"

	"cheapticket/internal/domains/booking/model"
	"cheapticket/shared/constant"
	"cheapticket/shared/failure"
	gModel "cheapticket/shared/model"
	"cheapticket/shared/timezone"

	"github.com/google/uuid"
)

const (
	messageTravelers      = "Either adults or children must be at least 1."
	messageRooms          = "Please select at least 1 room."
	messageTripBoth       = "Please select either One Way or Round Trip, not both."
	messageTripNone       = "Please select either One Way or Round Trip."
	messageDepartureDate  = "Departure date is required."
	messageReturnDate     = "Return date is required for round trips."
	messageDuration       = "Duration must be at least 1 day."
	messageLegs           = "At least one flight leg is required for multi-city flights."
	messageDateFormat     = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	messageDateTimeFormat = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DD HH:MM:SS."
)

// Owner is the caller a booking is saved for. UserID is nil for anonymous
// submissions.
type Owner struct {
	UserID       *string
	FirstName    string
	CustomerName string
	PhoneNumber  string
	Email        string
}

func (o Owner) booking(coupon string) model.Booking {
	by := constant.ContextGuest
	if o.Email != "" {
		by = o.Email
	}

	booking := model.Booking{
		ID:           uuid.NewString(),
		UserID:       o.UserID,
		CustomerName: o.CustomerName,
		PhoneNumber:  o.PhoneNumber,
		Coupon:       coupon,
		Metadata:     gModel.NewMetadata(timezone.Now(), by),
	}

	if o.Email != "" {
		booking.OwnerEmail = &o.Email
	}

	if o.FirstName != "" {
		booking.OwnerFirstName = &o.FirstName
	}

	return booking
}

var dateMessages = map[string]string{
	"checkin_date.datetime":   messageDateFormat,
	"checkout_date.datetime":  messageDateFormat,
	"departure_date.datetime": messageDateFormat,
	"return_date.datetime":    messageDateFormat,
}

func checkTravelers(adults, children int) error {
	if adults == 0 && children == 0 {
		return failure.FieldError(failure.FieldNonField, messageTravelers)
	}

	return nil
}

type HotelRequest struct {
	Place        string `json:"place"         validate:"required,notblank,max=255"`
	CheckinDate  string `json:"checkin_date"  validate:"required,datetime=2006-01-02"`
	CheckoutDate string `json:"checkout_date" validate:"required,datetime=2006-01-02"`
	Adults       int    `json:"adults"        validate:"gte=0"`
	Children     int    `json:"childrens"     validate:"gte=0"`
	Rooms        int    `json:"rooms"`
	Coupon       string `json:"coupon"        validate:"max=50"`
}

func (HotelRequest) Messages() map[string]string {
	return dateMessages
}

func (r HotelRequest) Validate() error {
	if err := checkTravelers(r.Adults, r.Children); err != nil {
		return err
	}

	if r.Rooms < 1 {
		return failure.FieldError(model.FieldRooms, messageRooms)
	}

	return nil
}

func (r HotelRequest) ToModel(owner Owner, coupon string) (model.Hotel, error) {
	checkin, err := timezone.ParseDate(r.CheckinDate)
	if err != nil {
		return model.Hotel{}, failure.FieldError(model.FieldCheckinDate, messageDateFormat)
	}

	checkout, err := timezone.ParseDate(r.CheckoutDate)
	if err != nil {
		return model.Hotel{}, failure.FieldError(model.FieldCheckoutDate, messageDateFormat)
	}

	return model.Hotel{
		Booking:      owner.booking(coupon),
		Place:        strings.TrimSpace(r.Place),
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Adults:       r.Adults,
		Children:     r.Children,
		Rooms:        r.Rooms,
	}, nil
}

type FlightRequest struct {
	FromLocation  string `json:"from_location"  validate:"required,notblank,max=255"`
	ToLocation    string `json:"to_location"    validate:"required,notblank,max=255"`
	RoundTrip     bool   `json:"round_trip"`
	OneWay        bool   `json:"one_way"`
	DepartureDate string `json:"departure_date" validate:"omitempty,datetime=2006-01-02"`
	ReturnDate    string `json:"return_date"    validate:"omitempty,datetime=2006-01-02"`
	Adults        int    `json:"adults"         validate:"gte=0"`
	Children      int    `json:"childrens"      validate:"gte=0"`
	Coupon        string `json:"coupon"         validate:"max=50"`
}

func (FlightRequest) Messages() map[string]string {
	return dateMessages
}

func (r FlightRequest) Validate() error {
	if err := checkTravelers(r.Adults, r.Children); err != nil {
		return err
	}

	if r.RoundTrip && r.OneWay {
		return failure.FieldError(failure.FieldNonField, messageTripBoth)
	}

	if !r.RoundTrip && !r.OneWay {
		return failure.FieldError(failure.FieldNonField, messageTripNone)
	}

	if r.DepartureDate == "" {
		return failure.FieldError(model.FieldDepartureDate, messageDepartureDate)
	}

	if r.RoundTrip && r.ReturnDate == "" {
		return failure.FieldError(model.FieldReturnDate, messageReturnDate)
	}

	return nil
}

func (r FlightRequest) ToModel(owner Owner, coupon string) (model.Flight, error) {
	departure, err := timezone.ParseDate(r.DepartureDate)
	if err != nil {
		return model.Flight{}, failure.FieldError(model.FieldDepartureDate, messageDateFormat)
	}

	flight := model.Flight{
		Booking:       owner.booking(coupon),
		RoundTrip:     r.RoundTrip,
		OneWay:        r.OneWay,
		FromLocation:  strings.TrimSpace(r.FromLocation),
		ToLocation:    strings.TrimSpace(r.ToLocation),
		DepartureDate: departure,
		Adults:        r.Adults,
		Children:      r.Children,
	}

	if r.ReturnDate != "" {
		returnDate, err := timezone.ParseDate(r.ReturnDate)
		if err != nil {
			return model.Flight{}, failure.FieldError(model.FieldReturnDate, messageDateFormat)
		}

		flight.ReturnDate = &returnDate
	}

	return flight, nil
}

type RentalCarRequest struct {
	Location    string `json:"location"     validate:"required,notblank,max=255"`
	PickupTime  string `json:"pickup_time"  validate:"required"`
	DropoffTime string `json:"dropoff_time" validate:"required"`
	Coupon      string `json:"coupon"       validate:"max=50"`
}

func (r RentalCarRequest) Validate() error {
	if _, err := parseDateTime(r.PickupTime); err != nil {
		return failure.FieldError(model.FieldPickupTime, messageDateTimeFormat)
	}

	if _, err := parseDateTime(r.DropoffTime); err != nil {
		return failure.FieldError(model.FieldDropoffTime, messageDateTimeFormat)
	}

	return nil
}

func (r RentalCarRequest) ToModel(owner Owner, coupon string) (model.RentalCar, error) {
	pickup, err := parseDateTime(r.PickupTime)
	if err != nil {
		return model.RentalCar{}, failure.FieldError(model.FieldPickupTime, messageDateTimeFormat)
	}

	dropoff, err := parseDateTime(r.DropoffTime)
	if err != nil {
		return model.RentalCar{}, failure.FieldError(model.FieldDropoffTime, messageDateTimeFormat)
	}

	return model.RentalCar{
		Booking:     owner.booking(coupon),
		Location:    strings.TrimSpace(r.Location),
		PickupTime:  pickup,
		DropoffTime: dropoff,
	}, nil
}

type HolidayPackageRequest struct {
	ToLocation   string `json:"to_location"   validate:"required,notblank,max=255"`
	FromLocation string `json:"from_location" validate:"required,notblank,max=255"`
	Duration     int    `json:"duration"`
	Adults       int    `json:"adults"        validate:"gte=0"`
	Children     int    `json:"children"      validate:"gte=0"`
	Coupon       string `json:"coupon"        validate:"max=50"`
}

func (r HolidayPackageRequest) Validate() error {
	if err := checkTravelers(r.Adults, r.Children); err != nil {
		return err
	}

	if r.Duration < 1 {
		return failure.FieldError(model.FieldDuration, messageDuration)
	}

	return nil
}

func (r HolidayPackageRequest) ToModel(owner Owner, coupon string) (model.HolidayPackage, error) {
	return model.HolidayPackage{
		Booking:      owner.booking(coupon),
		ToLocation:   strings.TrimSpace(r.ToLocation),
		FromLocation: strings.TrimSpace(r.FromLocation),
		Duration:     r.Duration,
		Adults:       r.Adults,
		Children:     r.Children,
	}, nil
}

type CruiseRequest struct {
	ToLocation   string `json:"to_location"   validate:"required,notblank,max=255"`
	FromLocation string `json:"from_location" validate:"required,notblank,max=255"`
	Duration     int    `json:"duration"`
	Cabins       string `json:"cabins"        validate:"required,notblank,max=255"`
	Adults       int    `json:"adults"        validate:"gte=0"`
	Children     int    `json:"childrens"     validate:"gte=0"`
	Coupon       string `json:"coupon"        validate:"max=50"`
}

func (r CruiseRequest) Validate() error {
	if err := checkTravelers(r.Adults, r.Children); err != nil {
		return err
	}

	if r.Duration < 1 {
		return failure.FieldError(model.FieldDuration, messageDuration)
	}

	return nil
}

func (r CruiseRequest) ToModel(owner Owner, coupon string) (model.Cruise, error) {
	return model.Cruise{
		Booking:      owner.booking(coupon),
		ToLocation:   strings.TrimSpace(r.ToLocation),
		FromLocation: strings.TrimSpace(r.FromLocation),
		Duration:     r.Duration,
		Cabins:       strings.TrimSpace(r.Cabins),
		Adults:       r.Adults,
		Children:     r.Children,
	}, nil
}

type MultiCityFlightLegRequest struct {
	FromLocation  string `json:"from_location"  validate:"required,notblank,max=255"`
	ToLocation    string `json:"to_location"    validate:"required,notblank,max=255"`
	DepartureDate string `json:"departure_date" validate:"required,datetime=2006-01-02"`
}

// MultiCityFlightRequest has no coupon field; the code is always assigned by the server.
type MultiCityFlightRequest struct {
	Adults   int                         `json:"adults"    validate:"gte=0"`
	Children int                         `json:"childrens" validate:"gte=0"`
	Legs     []MultiCityFlightLegRequest `json:"legs"      validate:"dive"`
}

func (MultiCityFlightRequest) Messages() map[string]string {
	return dateMessages
}

func (r MultiCityFlightRequest) Validate() error {
	if err := checkTravelers(r.Adults, r.Children); err != nil {
		return err
	}

	if len(r.Legs) == 0 {
		return failure.FieldError(failure.FieldNonField, messageLegs)
	}

	return nil
}

func (r MultiCityFlightRequest) ToModel(owner Owner, coupon string) (model.MultiCityFlight, error) {
	flight := model.MultiCityFlight{
		Booking:  owner.booking(coupon),
		Adults:   r.Adults,
		Children: r.Children,
		Legs:     make([]model.MultiCityFlightLeg, len(r.Legs)),
	}

	for i, leg := range r.Legs {
		departure, err := timezone.ParseDate(leg.DepartureDate)
		if err != nil {
			return model.MultiCityFlight{}, failure.FieldError(fmt.Sprintf("legs[%d].%s", i, model.FieldDepartureDate), messageDateFormat)
		}

		flight.Legs[i] = model.MultiCityFlightLeg{
			ID:                uuid.NewString(),
			MultiCityFlightID: flight.ID,
			Position:          i,
			FromLocation:      strings.TrimSpace(leg.FromLocation),
			ToLocation:        strings.TrimSpace(leg.ToLocation),
			DepartureDate:     departure,
		}
	}

	return flight, nil
}

// parseDateTime accepts the wall-clock form and RFC 3339.
func parseDateTime(value string) (time.Time, error) {
	parsed, err := timezone.ParseDateTime(value)
	if err == nil {
		return parsed, nil
	}

	parsed, rfcErr := time.Parse(time.RFC3339, value)
	if rfcErr != nil {
		return time.Time{}, err
	}

	return parsed, nil
}
