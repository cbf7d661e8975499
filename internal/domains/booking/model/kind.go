package model

// Kind names a booking table on the wire and in admin routes.
type Kind string

const (
	KindHotel           Kind = "hotel"
	KindFlight          Kind = "flight"
	KindRentalCar       Kind = "rentalcar"
	KindHolidayPackage  Kind = "holidaypackage"
	KindCruise          Kind = "cruise"
	KindMultiCityFlight Kind = "multicityflight"
)

// CouponKinds are the tables whose rows feed the coupon counter.
var CouponKinds = []Kind{KindHotel, KindFlight, KindRentalCar, KindHolidayPackage, KindCruise}

var kinds = map[Kind]struct {
	table string
	title string
}{
	KindHotel:           {TableHotels, "Hotel"},
	KindFlight:          {TableFlights, "Flight"},
	KindRentalCar:       {TableRentalCars, "Rental Car"},
	KindHolidayPackage:  {TableHolidayPackages, "Holiday Package"},
	KindCruise:          {TableCruises, "Cruise"},
	KindMultiCityFlight: {TableMultiCityFlights, "Multi-City Flight"},
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]

	return ok
}

func (k Kind) Table() string {
	return kinds[k].table
}

// Title is the human label used in mail subjects and messages.
func (k Kind) Title() string {
	return kinds[k].title
}

// Entity is the tracing and log name of the kind's table.
func (k Kind) Entity() string {
	return string(k)
}

func (k Kind) String() string {
	return string(k)
}
