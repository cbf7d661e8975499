package model

import (
	"time"

	userModel "cheapticket/internal/domains/user/model"
	"cheapticket/shared/model"
)

const (
	TableHotels              = "hotels"
	TableFlights             = "flights"
	TableRentalCars          = "rental_cars"
	TableHolidayPackages     = "holiday_packages"
	TableCruises             = "cruises"
	TableMultiCityFlights    = "multi_city_flights"
	TableMultiCityFlightLegs = "multi_city_flight_legs"
)

const (
	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldCustomerName  = "customer_name"
	FieldPhoneNumber   = "phone_number"
	FieldCoupon        = "coupon"
	FieldPlace         = "place"
	FieldCheckinDate   = "checkin_date"
	FieldCheckoutDate  = "checkout_date"
	FieldAdults        = "adults"
	FieldChildren      = "children"
	FieldRooms         = "rooms"
	FieldRoundTrip     = "round_trip"
	FieldOneWay        = "one_way"
	FieldFromLocation  = "from_location"
	FieldToLocation    = "to_location"
	FieldDepartureDate = "departure_date"
	FieldReturnDate    = "return_date"
	FieldLocation      = "location"
	FieldPickupTime    = "pickup_time"
	FieldDropoffTime   = "dropoff_time"
	FieldDuration      = "duration"
	FieldCabins        = "cabins"
	FieldMultiCityID   = "multi_city_flight_id"
	FieldPosition      = "position"
)

// Booking is the part every saved search shares. The owner columns come from
// the users join and stay nil for anonymous submissions.
type Booking struct {
	ID             string  `db:"id"`
	UserID         *string `db:"user_id"`
	CustomerName   string  `db:"customer_name"`
	PhoneNumber    string  `db:"phone_number"`
	Coupon         string  `db:"coupon"`
	OwnerEmail     *string `db:"user_email"      table:"users" column:"email"`
	OwnerFirstName *string `db:"user_first_name" table:"users" column:"first_name"`
	model.Metadata
}

// DisplayName prefers the owner's first name, then the owner's email.
func (b Booking) DisplayName() string {
	return userModel.DisplayName(deref(b.OwnerFirstName), deref(b.OwnerEmail))
}

func (b Booking) UserEmail() string {
	return deref(b.OwnerEmail)
}

func (b Booking) base() Booking {
	return b
}

type Hotel struct {
	Booking
	Place        string    `db:"place"`
	CheckinDate  time.Time `db:"checkin_date"`
	CheckoutDate time.Time `db:"checkout_date"`
	Adults       int       `db:"adults"`
	Children     int       `db:"children"`
	Rooms        int       `db:"rooms"`
}

func (Hotel) GetJoinQuery() string {
	return joinOwner(TableHotels)
}

type Flight struct {
	Booking
	RoundTrip     bool       `db:"round_trip"`
	OneWay        bool       `db:"one_way"`
	FromLocation  string     `db:"from_location"`
	ToLocation    string     `db:"to_location"`
	DepartureDate time.Time  `db:"departure_date"`
	ReturnDate    *time.Time `db:"return_date"`
	Adults        int        `db:"adults"`
	Children      int        `db:"children"`
}

func (Flight) GetJoinQuery() string {
	return joinOwner(TableFlights)
}

// TripType names the trip the way the confirmation mail does.
func (f Flight) TripType() string {
	if f.RoundTrip {
		return "Round Trip"
	}

	return "One Way"
}

type RentalCar struct {
	Booking
	Location    string    `db:"location"`
	PickupTime  time.Time `db:"pickup_time"`
	DropoffTime time.Time `db:"dropoff_time"`
}

func (RentalCar) GetJoinQuery() string {
	return joinOwner(TableRentalCars)
}

type HolidayPackage struct {
	Booking
	ToLocation   string `db:"to_location"`
	FromLocation string `db:"from_location"`
	Duration     int    `db:"duration"`
	Adults       int    `db:"adults"`
	Children     int    `db:"children"`
}

func (HolidayPackage) GetJoinQuery() string {
	return joinOwner(TableHolidayPackages)
}

type Cruise struct {
	Booking
	ToLocation   string `db:"to_location"`
	FromLocation string `db:"from_location"`
	Duration     int    `db:"duration"`
	Cabins       string `db:"cabins"`
	Adults       int    `db:"adults"`
	Children     int    `db:"children"`
}

func (Cruise) GetJoinQuery() string {
	return joinOwner(TableCruises)
}

// MultiCityFlight is the parent row; its legs live in their own table.
type MultiCityFlight struct {
	Booking
	Adults   int                  `db:"adults"`
	Children int                  `db:"children"`
	Legs     []MultiCityFlightLeg `db:"-"`
}

func (MultiCityFlight) GetJoinQuery() string {
	return joinOwner(TableMultiCityFlights)
}

type MultiCityFlightLeg struct {
	ID                string    `db:"id"`
	MultiCityFlightID string    `db:"multi_city_flight_id"`
	Position          int       `db:"position"`
	FromLocation      string    `db:"from_location"`
	ToLocation        string    `db:"to_location"`
	DepartureDate     time.Time `db:"departure_date"`
}

// Record is satisfied by every booking row type.
type Record interface {
	Hotel | Flight | RentalCar | HolidayPackage | Cruise | MultiCityFlight
	base() Booking
}

// Base returns the shared columns of any booking row.
func Base[T Record](record T) Booking {
	return record.base()
}

func joinOwner(table string) string {
	return "LEFT JOIN users ON users.id = " + table + "." + FieldUserID
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
