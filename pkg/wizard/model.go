package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pfjetdev/pfgrouptravel/pkg/validator"
)

// Step is the position of a wizard in its two-step flow
type Step int

const (
	StepDetails Step = iota + 1
	StepContact
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepContact:
		return "contact"
	case StepSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// TripType of the single-leg flight wizard
type TripType string

const (
	TripRoundTrip TripType = "roundTrip"
	TripOneWay    TripType = "oneWay"
	TripMultiCity TripType = "multiCity"
)

// CabinClass is the service tier of a segment
type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// Valid reports whether c is a known cabin class
func (c CabinClass) Valid() bool {
	return c == CabinEconomy || c == CabinBusiness || c == CabinFirst
}

// ServiceType selects the hotel or transfer variant of the service wizard
type ServiceType string

const (
	ServiceHotel    ServiceType = "hotel"
	ServiceTransfer ServiceType = "transfer"
)

// Date is a calendar date with no time component
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a normalised date
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf takes the calendar date of t in t's own location, so a local
// evening never turns into the next day
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String formats the date as YYYY-MM-DD, or "" when unset
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) ptr() *string {
	if d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

// Segment is one origin, destination and date unit of an itinerary. Origin
// and Destination hold a location code or its "CODE - City, Country" form.
type Segment struct {
	ID          string
	Origin      string
	Destination string
	Date        Date
	PartySize   string
	Tier        CabinClass
}

func (s Segment) complete() bool {
	return present(s.Origin) && present(s.Destination) && !s.Date.IsZero() &&
		validCount(s.PartySize) && s.Tier.Valid()
}

// ContactInfo is collected on the second step of every wizard. Flight and
// enterprise wizards use FullName, the others FirstName and LastName.
type ContactInfo struct {
	FullName  string
	FirstName string
	LastName  string
	Phone     validator.Phone
	Email     string
}

func (c ContactInfo) fullComplete() bool {
	return present(c.FullName) && !c.Phone.IsZero() && present(c.Email)
}

func (c ContactInfo) splitComplete() bool {
	return present(c.FirstName) && present(c.LastName) && !c.Phone.IsZero() && present(c.Email)
}

var phones = validator.NewPhoneValidator()

// ParsePhone splits typed input into calling code and national number
func ParsePhone(raw string) (validator.Phone, error) {
	return phones.Parse(raw)
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// parseCount parses a positive whole number without rounding
func parseCount(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a whole number greater than zero", field)
	}
	return n, nil
}

func validCount(s string) bool {
	_, err := parseCount("", s)
	return err == nil
}

func countPtr(n int) *int {
	return &n
}
