// Package timezone pins every timestamp the service writes or parses to the
// zone named by APP_TIMEZONE (an IANA name such as "Asia/Jakarta"). Booking
// dates arrive as bare calendar days, so parsing them in one fixed zone keeps
// check-in and departure days stable across hosts.
package timezone

import (
	"time"

	"cheapticket/config"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var appLocation *time.Location

func init() {
	appLocation = load(config.Get().App.Timezone)
}

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = fallbackZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// GetLocation returns the application zone, UTC before init has run.
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts t to the application zone.
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value as a wall-clock time in the application zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return Parse(time.DateOnly, value)
}

// ParseDateTime parses a "YYYY-MM-DD HH:MM:SS" wall-clock time.
func ParseDateTime(value string) (time.Time, error) {
	return Parse(time.DateTime, value)
}
