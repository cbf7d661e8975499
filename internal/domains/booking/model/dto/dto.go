package dto

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cheapticket/internal/domains/booking/model"
	userModel "cheapticket/internal/domains/user/model"
	"cheapticket/shared"
	"cheapticket/shared/constant"
	gDto "cheapticket/shared/dto"
	"cheapticket/shared/timezone"

	"github.com/google/uuid"
)

// BookingFields are the columns every booking view shares.
type BookingFields struct {
	ID           string  `json:"id"`
	User         *string `json:"user"`
	UserEmail    *string `json:"user_email"`
	DisplayName  string  `json:"display_name"`
	CustomerName string  `json:"customer_name"`
	PhoneNumber  string  `json:"phone_number"`
	Coupon       string  `json:"coupon"`
	CreatedAt    string  `json:"created_at"`
}

func (b *BookingFields) FromModel(booking model.Booking) {
	b.ID = booking.ID
	b.User = booking.UserID
	b.UserEmail = booking.OwnerEmail
	b.DisplayName = booking.DisplayName()
	b.CustomerName = booking.CustomerName
	b.PhoneNumber = booking.PhoneNumber
	b.Coupon = booking.Coupon
	b.CreatedAt = timezone.Format(booking.CreatedAt, constant.DateFormat)
}

var bookingHeader = []string{"id", "user", "user_email", "display_name", "customer_name", "phone_number", "coupon", "created_at"}

func (b BookingFields) csvRow() []string {
	return []string{b.ID, deref(b.User), deref(b.UserEmail), b.DisplayName, b.CustomerName, b.PhoneNumber, b.Coupon, b.CreatedAt}
}

type HotelResponse struct {
	BookingFields
	Place        string `json:"place"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	Adults       int    `json:"adults"`
	Children     int    `json:"childrens"`
	Rooms        int    `json:"rooms"`
}

func (r *HotelResponse) FromModel(hotel model.Hotel) {
	r.BookingFields.FromModel(hotel.Booking)
	r.Place = hotel.Place
	r.CheckinDate = formatDate(hotel.CheckinDate)
	r.CheckoutDate = formatDate(hotel.CheckoutDate)
	r.Adults = hotel.Adults
	r.Children = hotel.Children
	r.Rooms = hotel.Rooms
}

func (HotelResponse) CSVHeader() []string {
	return append(clone(bookingHeader), "place", "checkin_date", "checkout_date", "adults", "childrens", "rooms")
}

func (r HotelResponse) CSVRow() []string {
	return append(r.csvRow(), r.Place, r.CheckinDate, r.CheckoutDate, itoa(r.Adults), itoa(r.Children), itoa(r.Rooms))
}

// MailBody renders the confirmation mail for a saved hotel search.
func (r HotelResponse) MailBody() string {
	return fmt.Sprintf("Hello %s,\n\nYour hotel search at %s has been saved.\nCheck-in: %s\nCheck-out: %s\n\nCoupon Code: %s\n\nThank you for choosing CheapTicket!",
		r.CustomerName, r.Place, r.CheckinDate, r.CheckoutDate, r.Coupon)
}

type FlightResponse struct {
	BookingFields
	FromLocation  string  `json:"from_location"`
	ToLocation    string  `json:"to_location"`
	RoundTrip     bool    `json:"round_trip"`
	OneWay        bool    `json:"one_way"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date"`
	Adults        int     `json:"adults"`
	Children      int     `json:"childrens"`
	tripType      string
}

func (r *FlightResponse) FromModel(flight model.Flight) {
	r.BookingFields.FromModel(flight.Booking)
	r.FromLocation = flight.FromLocation
	r.ToLocation = flight.ToLocation
	r.RoundTrip = flight.RoundTrip
	r.OneWay = flight.OneWay
	r.DepartureDate = formatDate(flight.DepartureDate)
	r.Adults = flight.Adults
	r.Children = flight.Children
	r.tripType = flight.TripType()

	if flight.ReturnDate != nil {
		returnDate := formatDate(*flight.ReturnDate)
		r.ReturnDate = &returnDate
	}
}

func (FlightResponse) CSVHeader() []string {
	return append(clone(bookingHeader), "from_location", "to_location", "round_trip", "one_way", "departure_date", "return_date", "adults", "childrens")
}

func (r FlightResponse) CSVRow() []string {
	return append(r.csvRow(), r.FromLocation, r.ToLocation, strconv.FormatBool(r.RoundTrip), strconv.FormatBool(r.OneWay),
		r.DepartureDate, deref(r.ReturnDate), itoa(r.Adults), itoa(r.Children))
}

func (r FlightResponse) MailBody() string {
	return fmt.Sprintf("Hello %s,\n\nYour flight search has been saved.\n\nFlight Details:\n%s to %s\nDeparture: %s\nType: %s\n\nCoupon Code: %s\n\nThank you for choosing CheapTicket!",
		r.CustomerName, r.FromLocation, r.ToLocation, r.DepartureDate, r.tripType, r.Coupon)
}

type RentalCarResponse struct {
	BookingFields
	Location    string `json:"location"`
	PickupTime  string `json:"pickup_time"`
	DropoffTime string `json:"dropoff_time"`
}

func (r *RentalCarResponse) FromModel(car model.RentalCar) {
	r.BookingFields.FromModel(car.Booking)
	r.Location = car.Location
	r.PickupTime = timezone.Format(car.PickupTime, constant.DateFormat)
	r.DropoffTime = timezone.Format(car.DropoffTime, constant.DateFormat)
}

func (RentalCarResponse) CSVHeader() []string {
	return append(clone(bookingHeader), "location", "pickup_time", "dropoff_time")
}

func (r RentalCarResponse) CSVRow() []string {
	return append(r.csvRow(), r.Location, r.PickupTime, r.DropoffTime)
}

func (r RentalCarResponse) MailBody() string {
	return fmt.Sprintf("Hello %s,\n\nYour rental car search at %s has been saved.\nPickup: %s\nDrop-off: %s\n\nCoupon Code: %s\n\nThank you for choosing CheapTicket!",
		r.CustomerName, r.Location, r.PickupTime, r.DropoffTime, r.Coupon)
}

type HolidayPackageResponse struct {
	BookingFields
	ToLocation   string `json:"to_location"`
	FromLocation string `json:"from_location"`
	Duration     int    `json:"duration"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
}

func (r *HolidayPackageResponse) FromModel(pkg model.HolidayPackage) {
	r.BookingFields.FromModel(pkg.Booking)
	r.ToLocation = pkg.ToLocation
	r.FromLocation = pkg.FromLocation
	r.Duration = pkg.Duration
	r.Adults = pkg.Adults
	r.Children = pkg.Children
}

func (HolidayPackageResponse) CSVHeader() []string {
	return append(clone(bookingHeader), "to_location", "from_location", "duration", "adults", "children")
}

func (r HolidayPackageResponse) CSVRow() []string {
	return append(r.csvRow(), r.ToLocation, r.FromLocation, itoa(r.Duration), itoa(r.Adults), itoa(r.Children))
}

func (r HolidayPackageResponse) MailBody() string {
	return fmt.Sprintf("Hello %s,\n\nYour holiday package search for %s has been saved.\nDuration: %d days\n\nCoupon Code: %s\n\nThank you for choosing CheapTicket!",
		r.CustomerName, r.ToLocation, r.Duration, r.Coupon)
}

type CruiseResponse struct {
	BookingFields
	ToLocation   string `json:"to_location"`
	FromLocation string `json:"from_location"`
	Duration     int    `json:"duration"`
	Cabins       string `json:"cabins"`
	Adults       int    `json:"adults"`
	Children     int    `json:"childrens"`
}

func (r *CruiseResponse) FromModel(cruise model.Cruise) {
	r.BookingFields.FromModel(cruise.Booking)
	r.ToLocation = cruise.ToLocation
	r.FromLocation = cruise.FromLocation
	r.Duration = cruise.Duration
	r.Cabins = cruise.Cabins
	r.Adults = cruise.Adults
	r.Children = cruise.Children
}

func (CruiseResponse) CSVHeader() []string {
	return append(clone(bookingHeader), "to_location", "from_location", "duration", "cabins", "adults", "childrens")
}

func (r CruiseResponse) CSVRow() []string {
	return append(r.csvRow(), r.ToLocation, r.FromLocation, itoa(r.Duration), r.Cabins, itoa(r.Adults), itoa(r.Children))
}

func (r CruiseResponse) MailBody() string {
	return fmt.Sprintf("Hello %s,\n\nYour cruise search for %s has been saved.\nDuration: %d days\nCabins: %s\n\nCoupon Code: %s\n\nThank you for choosing CheapTicket!",
		r.CustomerName, r.ToLocation, r.Duration, r.Cabins, r.Coupon)
}

type MultiCityFlightLegResponse struct {
	FromLocation  string `json:"from_location"`
	ToLocation    string `json:"to_location"`
	DepartureDate string `json:"departure_date"`
}

type MultiCityFlightResponse struct {
	BookingFields
	Adults   int                          `json:"adults"`
	Children int                          `json:"childrens"`
	Legs     []MultiCityFlightLegResponse `json:"legs"`
}

func (r *MultiCityFlightResponse) FromModel(flight model.MultiCityFlight) {
	r.BookingFields.FromModel(flight.Booking)
	r.Adults = flight.Adults
	r.Children = flight.Children

	r.Legs = make([]MultiCityFlightLegResponse, len(flight.Legs))
	for i, leg := range flight.Legs {
		r.Legs[i] = MultiCityFlightLegResponse{
			FromLocation:  leg.FromLocation,
			ToLocation:    leg.ToLocation,
			DepartureDate: formatDate(leg.DepartureDate),
		}
	}
}

func (MultiCityFlightResponse) CSVHeader() []string {
	return append(clone(bookingHeader), "adults", "childrens", "legs")
}

func (r MultiCityFlightResponse) CSVRow() []string {
	legs := make([]string, len(r.Legs))
	for i, leg := range r.Legs {
		legs[i] = fmt.Sprintf("%s-%s %s", leg.FromLocation, leg.ToLocation, leg.DepartureDate)
	}

	return append(r.csvRow(), itoa(r.Adults), itoa(r.Children), strings.Join(legs, "; "))
}

func (r MultiCityFlightResponse) MailBody() string {
	legs := make([]string, len(r.Legs))
	for i, leg := range r.Legs {
		legs[i] = fmt.Sprintf("- %s to %s on %s", leg.FromLocation, leg.ToLocation, leg.DepartureDate)
	}

	return fmt.Sprintf("Hello %s,\n\nYour multi-city flight search has been saved.\n\nFlight Details:\n%s\n\nCoupon Code: %s\n\nThank you for choosing CheapTicket!",
		r.CustomerName, strings.Join(legs, "\n"), r.Coupon)
}

// View is implemented by every booking response.
type View interface {
	CSVHeader() []string
	CSVRow() []string
	MailBody() string
}

// ToView converts any booking row into its response shape.
func ToView[T model.Record](record T) View {
	switch r := any(record).(type) {
	case model.Hotel:
		var res HotelResponse
		res.FromModel(r)

		return res
	case model.Flight:
		var res FlightResponse
		res.FromModel(r)

		return res
	case model.RentalCar:
		var res RentalCarResponse
		res.FromModel(r)

		return res
	case model.HolidayPackage:
		var res HolidayPackageResponse
		res.FromModel(r)

		return res
	case model.Cruise:
		var res CruiseResponse
		res.FromModel(r)

		return res
	case model.MultiCityFlight:
		var res MultiCityFlightResponse
		res.FromModel(r)

		return res
	}

	return nil
}

type CreateResponse struct {
	Message string `json:"message"`
	Data    View   `json:"data"`
}

// SavedMessage is the success message returned for a kind.
func SavedMessage(kind model.Kind) string {
	if kind == model.KindMultiCityFlight {
		return "Multi-city flight search saved successfully"
	}

	return kind.Title() + " search saved successfully"
}

// MailSubject is the confirmation subject for a kind.
func MailSubject(kind model.Kind) string {
	return kind.Title() + " Search Confirmation"
}

type GetBookingsResponse struct {
	Kind      model.Kind `json:"kind"`
	Bookings  []View     `json:"bookings"`
	TotalPage int        `json:"total_page"`
	TotalData int        `json:"total_data"`
}

func FromModels[T model.Record](kind model.Kind, models []T, totalData, limit int) GetBookingsResponse {
	res := GetBookingsResponse{
		Kind:      kind,
		Bookings:  make([]View, len(models)),
		TotalData: totalData,
		TotalPage: shared.CalculateTotalPage(totalData, limit),
	}

	for i, mod := range models {
		res.Bookings[i] = ToView(mod)
	}

	return res
}

// ListFilter narrows the staff booking listings. UserID "guest" selects
// anonymous bookings. The created range is inclusive of both calendar days.
type ListFilter struct {
	UserID      string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

const (
	queryCreatedFrom = "created_from"
	queryCreatedTo   = "created_to"
)

// FromRequest reads user_id, created_from and created_to. Owners that are
// neither "guest" nor a UUID, and dates that do not parse as YYYY-MM-DD, are
// ignored.
func (f *ListFilter) FromRequest(r *http.Request, search string) {
	query := r.URL.Query()

	f.UserID = queryOwner(query.Get(model.FieldUserID))
	f.Search = search
	f.CreatedFrom = queryDate(query.Get(queryCreatedFrom))
	f.CreatedTo = queryDate(query.Get(queryCreatedTo))
}

func queryOwner(value string) string {
	if value == constant.ContextGuest {
		return value
	}

	if _, err := uuid.Parse(value); err != nil {
		return ""
	}

	return value
}

func queryDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	day, err := timezone.ParseDate(value)
	if err != nil {
		return nil
	}

	return &day
}

var searchColumns = map[model.Kind][]string{
	model.KindHotel:           {model.FieldPlace},
	model.KindFlight:          {model.FieldFromLocation, model.FieldToLocation},
	model.KindRentalCar:       {model.FieldLocation},
	model.KindHolidayPackage:  {model.FieldFromLocation, model.FieldToLocation},
	model.KindCruise:          {model.FieldFromLocation, model.FieldToLocation, model.FieldCabins},
	model.KindMultiCityFlight: {model.FieldCustomerName},
}

// ToFilterGroup searches the kind's location columns, the coupon and the owner email.
func (f ListFilter) ToFilterGroup(kind model.Kind) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	switch f.UserID {
	case "":
	case constant.ContextGuest:
		group.Add(gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterIsNull, Table: kind.Table()})
	default:
		group.Add(gDto.Filter{Field: model.FieldUserID, Value: f.UserID, Operator: gDto.FilterOperatorEq, Table: kind.Table()})
	}

	if f.CreatedFrom != nil {
		group.Add(gDto.Filter{
			ArgName:  queryCreatedFrom,
			Field:    constant.FieldCreatedAt,
			Value:    *f.CreatedFrom,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    kind.Table(),
		})
	}

	if f.CreatedTo != nil {
		group.Add(gDto.Filter{
			ArgName:  queryCreatedTo,
			Field:    constant.FieldCreatedAt,
			Value:    f.CreatedTo.AddDate(0, 0, 1),
			Operator: gDto.FilterOperatorLess,
			Table:    kind.Table(),
		})
	}

	columns := make([]string, 0, len(searchColumns[kind])+2)
	for _, column := range searchColumns[kind] {
		columns = append(columns, kind.Table()+"."+column)
	}

	columns = append(columns, kind.Table()+"."+model.FieldCoupon, userModel.TableName+"."+userModel.FieldEmail)

	group.Add(gDto.SearchFilter(f.Search, columns...))

	return group
}

// SortableFields are the columns every booking listing may order by.
var SortableFields = []string{
	model.FieldCustomerName,
	model.FieldCoupon,
	constant.FieldCreatedAt,
}

type ExportResponse struct {
	Kind model.Kind `json:"kind"`
	URL  string     `json:"url"`
	Key  string     `json:"key"`
	Rows int        `json:"rows"`
}

// BookingEvent is published after a search is saved.
type BookingEvent struct {
	Kind      model.Kind `json:"kind"`
	ID        string     `json:"id"`
	UserID    *string    `json:"user_id"`
	Coupon    string     `json:"coupon"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewBookingEvent[T model.Record](kind model.Kind, record T) BookingEvent {
	base := model.Base(record)

	return BookingEvent{
		Kind:      kind,
		ID:        base.ID,
		UserID:    base.UserID,
		Coupon:    base.Coupon,
		CreatedAt: base.CreatedAt,
	}
}

func formatDate(t time.Time) string {
	return t.Format(constant.DateOnlyFormat)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func clone(values []string) []string {
	return append([]string(nil), values...)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
