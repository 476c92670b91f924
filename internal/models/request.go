package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RequestType identifies one intake endpoint and its collection
type RequestType string

const (
	RequestBooking    RequestType = "booking"
	RequestMultiCity  RequestType = "multi-city"
	RequestContact    RequestType = "contact"
	RequestEnterprise RequestType = "enterprise-inquiry"
	RequestService    RequestType = "services"
)

// RequestTypes lists every intake request type in routing order
var RequestTypes = []RequestType{
	RequestBooking,
	RequestMultiCity,
	RequestContact,
	RequestEnterprise,
	RequestService,
}

// ParseRequestType resolves a path segment into a request type
func ParseRequestType(s string) (RequestType, bool) {
	for _, t := range RequestTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// LeadStatus is the back-office processing state of a persisted request
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusContacted  LeadStatus = "contacted"
	LeadStatusProcessing LeadStatus = "processing"
	LeadStatusCompleted  LeadStatus = "completed"
	LeadStatusCancelled  LeadStatus = "cancelled"
	LeadStatusReplied    LeadStatus = "replied"
	LeadStatusClosed     LeadStatus = "closed"
)

// TripType of a flight booking
type TripType string

const (
	TripRoundTrip TripType = "roundTrip"
	TripOneWay    TripType = "oneWay"
	TripMultiCity TripType = "multiCity"
)

// Valid reports whether t is a known trip type
func (t TripType) Valid() bool {
	switch t {
	case TripRoundTrip, TripOneWay, TripMultiCity:
		return true
	}
	return false
}

// CabinClass is the service tier of a flight
type CabinClass string

const (
	CabinEconomy  CabinClass = "economy"
	CabinBusiness CabinClass = "business"
	CabinFirst    CabinClass = "first"
)

// Valid reports whether c is a known cabin class
func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

// ServiceType discriminates service requests
type ServiceType string

const (
	ServiceHotel    ServiceType = "hotel"
	ServiceTransfer ServiceType = "transfer"
)

// Valid reports whether s is a known service type
func (s ServiceType) Valid() bool {
	return s == ServiceHotel || s == ServiceTransfer
}

// InquiryTypes accepted by the contact form
var InquiryTypes = []string{
	"group-booking",
	"corporate-travel",
	"charter-flight",
	"existing-booking",
	"partnership",
	"other",
}

// IndustryTypes accepted by the enterprise form
var IndustryTypes = []string{
	"corporate",
	"sports",
	"education",
	"events",
	"government",
	"other",
}

// ErrInvalidField is wrapped by every FieldError
var ErrInvalidField = errors.New("invalid field")

// FieldError reports one malformed field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

func fieldError(field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// BookingRequest is the payload of a single-leg flight request
type BookingRequest struct {
	TripType      TripType      `json:"trip_type" db:"trip_type"`
	FromAirport   string        `json:"from_airport" db:"from_airport"`
	ToAirport     string        `json:"to_airport" db:"to_airport"`
	DepartureDate CalendarDate  `json:"departure_date" db:"departure_date"`
	ReturnDate    *CalendarDate `json:"return_date" db:"return_date"`
	Passengers    int           `json:"passengers" db:"passengers"`
	CabinClass    CabinClass    `json:"cabin_class" db:"cabin_class"`
	FullName      string        `json:"full_name" db:"full_name"`
	Phone         string        `json:"phone" db:"phone"`
	Email         string        `json:"email" db:"email"`
}

// Validate checks enumerations, counts and date ordering
func (r *BookingRequest) Validate() error {
	if !r.TripType.Valid() {
		return fieldError("trip_type", "must be one of roundTrip, oneWay, multiCity")
	}
	if !r.CabinClass.Valid() {
		return fieldError("cabin_class", "must be one of economy, business, first")
	}
	if r.Passengers < 1 {
		return fieldError("passengers", "must be a positive integer")
	}
	if r.ReturnDate != nil && !r.ReturnDate.IsZero() && r.ReturnDate.Before(r.DepartureDate) {
		return fieldError("return_date", "must not be before departure_date")
	}
	return nil
}

// FlightLeg is one element of a multi-city itinerary
type FlightLeg struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

// FlightLegs is stored as a JSONB array in submission order
type FlightLegs []FlightLeg

// Value implements the driver.Valuer interface. The JSON is sent as text;
// lib/pq would encode a []byte as bytea.
func (f FlightLegs) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (f *FlightLegs) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FlightLegs", src)
	}
	return json.Unmarshal(data, f)
}

// MultiCityRequest is the payload of a multi-leg flight request
type MultiCityRequest struct {
	Flights    FlightLegs `json:"flights" db:"flights"`
	Passengers int        `json:"passengers" db:"passengers"`
	CabinClass CabinClass `json:"cabin_class" db:"cabin_class"`
	FullName   string     `json:"full_name" db:"full_name"`
	Phone      string     `json:"phone" db:"phone"`
	Email      string     `json:"email" db:"email"`
}

// Validate checks leg dates, counts and the cabin class
func (r *MultiCityRequest) Validate() error {
	for i, leg := range r.Flights {
		if _, err := ParseCalendarDate(leg.Date); err != nil {
			return fieldError(fmt.Sprintf("flights[%d].date", i), "must be a YYYY-MM-DD date")
		}
	}
	if !r.CabinClass.Valid() {
		return fieldError("cabin_class", "must be one of economy, business, first")
	}
	if r.Passengers < 1 {
		return fieldError("passengers", "must be a positive integer")
	}
	return nil
}

// ContactRequest is the payload of the general contact form
type ContactRequest struct {
	FirstName   string  `json:"first_name" db:"first_name"`
	LastName    string  `json:"last_name" db:"last_name"`
	Email       string  `json:"email" db:"email"`
	Phone       string  `json:"phone" db:"phone"`
	InquiryType string  `json:"inquiry_type" db:"inquiry_type"`
	GroupSize   *string `json:"group_size" db:"group_size"`
	Message     string  `json:"message" db:"message"`
}

// Validate checks the inquiry type
func (r *ContactRequest) Validate() error {
	if !contains(InquiryTypes, r.InquiryType) {
		return fieldError("inquiry_type", "unknown inquiry type %q", r.InquiryType)
	}
	return nil
}

// EnterpriseInquiry is the payload of the corporate / B2B form
type EnterpriseInquiry struct {
	CompanyName        string  `json:"company_name" db:"company_name"`
	ContactName        string  `json:"contact_name" db:"contact_name"`
	Email              string  `json:"email" db:"email"`
	Phone              string  `json:"phone" db:"phone"`
	IndustryType       string  `json:"industry_type" db:"industry_type"`
	AnnualTravelBudget *string `json:"annual_travel_budget" db:"annual_travel_budget"`
	NumberOfEmployees  *string `json:"number_of_employees" db:"number_of_employees"`
	Message            string  `json:"message" db:"message"`
}

// Validate checks the industry type
func (r *EnterpriseInquiry) Validate() error {
	if !contains(IndustryTypes, r.IndustryType) {
		return fieldError("industry_type", "unknown industry type %q", r.IndustryType)
	}
	return nil
}

// ServiceRequest is the payload of a hotel or transfer request
type ServiceRequest struct {
	ServiceType     ServiceType   `json:"service_type" db:"service_type"`
	Destination     *string       `json:"destination" db:"destination"`
	CheckInDate     *CalendarDate `json:"check_in_date" db:"check_in_date"`
	CheckOutDate    *CalendarDate `json:"check_out_date" db:"check_out_date"`
	Guests          *int          `json:"guests" db:"guests"`
	PickupLocation  *string       `json:"pickup_location" db:"pickup_location"`
	DropoffLocation *string       `json:"dropoff_location" db:"dropoff_location"`
	TransferDate    *CalendarDate `json:"transfer_date" db:"transfer_date"`
	Passengers      *int          `json:"passengers" db:"passengers"`
	FirstName       string        `json:"first_name" db:"first_name"`
	LastName        string        `json:"last_name" db:"last_name"`
	Email           string        `json:"email" db:"email"`
	Phone           string        `json:"phone" db:"phone"`
}

// Validate checks the variant's counts and date ordering
func (r *ServiceRequest) Validate() error {
	switch r.ServiceType {
	case ServiceHotel:
		if r.Guests != nil && *r.Guests < 1 {
			return fieldError("guests", "must be a positive integer")
		}
		if r.CheckInDate != nil && r.CheckOutDate != nil && !r.CheckInDate.Before(*r.CheckOutDate) {
			return fieldError("check_out_date", "must be after check_in_date")
		}
	case ServiceTransfer:
		if r.Passengers != nil && *r.Passengers < 1 {
			return fieldError("passengers", "must be a positive integer")
		}
	default:
		return fieldError("service_type", "must be one of hotel, transfer")
	}
	return nil
}

// LeadMeta is the store-assigned identity and lifecycle of a persisted request
type LeadMeta struct {
	ID        string     `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	Status    LeadStatus `json:"status" db:"status"`
}

// BookingRecord is a persisted booking request
type BookingRecord struct {
	LeadMeta
	BookingRequest
}

// MultiCityRecord is a persisted multi-city request
type MultiCityRecord struct {
	LeadMeta
	MultiCityRequest
}

// ContactRecord is a persisted contact request
type ContactRecord struct {
	LeadMeta
	ContactRequest
}

// EnterpriseRecord is a persisted enterprise inquiry
type EnterpriseRecord struct {
	LeadMeta
	EnterpriseInquiry
}

// ServiceRecord is a persisted service request
type ServiceRecord struct {
	LeadMeta
	ServiceRequest
}

// SubmissionResponse is returned by every intake endpoint on success
type SubmissionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse is the error body of every endpoint
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Fields  []string `json:"fields,omitempty"`
	Details string   `json:"details,omitempty"`
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
