package services

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pfjetdev/pfgrouptravel/internal/models"
)

// Error codes returned in the 400 body of the intake endpoints
const (
	CodeMissingRequired   = "missing_required_fields"
	CodeMissingHotel      = "missing_hotel_fields"
	CodeMissingTransfer   = "missing_transfer_fields"
	CodeInvalidSegment    = "invalid_flight_segment"
	CodeInvalidField      = "invalid_field"
	CodeInvalidJSON       = "invalid_json"
	MessageMissingFields  = "Missing required fields"
	MessageInvalidSegment = "Each flight segment must have from, to, and date"
)

// ListRule requires a non-empty array whose every element carries Fields
type ListRule struct {
	Field   string
	Fields  []string
	Code    string
	Message string
}

// VariantRule is the extra required set selected by a discriminant value
type VariantRule struct {
	Fields  []string
	Code    string
	Message string
}

// DiscriminantRule picks a VariantRule by the value of Field
type DiscriminantRule struct {
	Field    string
	Variants map[string]VariantRule
}

// IntakeRule describes how one request type is validated, stored and announced
type IntakeRule struct {
	Type           models.RequestType
	Table          string
	Label          string // used in "Failed to save <label>"
	SuccessMessage string
	Required       []string
	List           *ListRule
	Discriminant   *DiscriminantRule
	Dates          []string // YYYY-MM-DD when present
	Counts         []string // positive integers when present
	Notify         bool
	newLead        func() lead
}

// IntakeRules maps every request type to its rule
var IntakeRules = map[models.RequestType]*IntakeRule{
	models.RequestBooking: {
		Type:           models.RequestBooking,
		Table:          "booking_requests",
		Label:          "booking request",
		SuccessMessage: "Booking request submitted successfully",
		Required: []string{"trip_type", "from_airport", "to_airport", "departure_date",
			"passengers", "cabin_class", "full_name", "phone", "email"},
		Dates:   []string{"departure_date", "return_date"},
		Counts:  []string{"passengers"},
		Notify:  true,
		newLead: func() lead { return &bookingLead{} },
	},
	models.RequestMultiCity: {
		Type:           models.RequestMultiCity,
		Table:          "multi_city_requests",
		Label:          "multi-city request",
		SuccessMessage: "Multi-city booking request submitted successfully",
		Required:       []string{"flights", "passengers", "cabin_class", "full_name", "phone", "email"},
		List: &ListRule{
			Field:   "flights",
			Fields:  []string{"from", "to", "date"},
			Code:    CodeInvalidSegment,
			Message: MessageInvalidSegment,
		},
		Counts:  []string{"passengers"},
		Notify:  true,
		newLead: func() lead { return &multiCityLead{} },
	},
	models.RequestContact: {
		Type:           models.RequestContact,
		Table:          "contact_requests",
		Label:          "contact request",
		SuccessMessage: "Contact request submitted successfully",
		Required:       []string{"first_name", "last_name", "email", "phone", "inquiry_type", "message"},
		newLead:        func() lead { return &contactLead{} },
	},
	models.RequestEnterprise: {
		Type:           models.RequestEnterprise,
		Table:          "enterprise_inquiries",
		Label:          "enterprise inquiry",
		SuccessMessage: "Enterprise inquiry submitted successfully",
		Required: []string{"company_name", "contact_name", "email", "phone",
			"industry_type", "message"},
		Notify:  true,
		newLead: func() lead { return &enterpriseLead{} },
	},
	models.RequestService: {
		Type:           models.RequestService,
		Table:          "service_requests",
		Label:          "service request",
		SuccessMessage: "Service request submitted successfully",
		Required:       []string{"service_type", "first_name", "last_name", "email", "phone"},
		Discriminant: &DiscriminantRule{
			Field: "service_type",
			Variants: map[string]VariantRule{
				string(models.ServiceHotel): {
					Fields:  []string{"destination", "check_in_date", "check_out_date", "guests"},
					Code:    CodeMissingHotel,
					Message: "Missing hotel booking fields",
				},
				string(models.ServiceTransfer): {
					Fields:  []string{"pickup_location", "dropoff_location", "transfer_date", "passengers"},
					Code:    CodeMissingTransfer,
					Message: "Missing transfer booking fields",
				},
			},
		},
		Dates:   []string{"check_in_date", "check_out_date", "transfer_date"},
		Counts:  []string{"guests", "passengers"},
		newLead: func() lead { return &serviceLead{} },
	},
}

// Check runs the presence, discriminant, list, date and count rules over a
// decoded JSON object. Empty optional values are skipped; they are stored as NULL.
func (r *IntakeRule) Check(body map[string]interface{}) *ValidationError {
	if missing := missingFields(body, r.Required); len(missing) > 0 {
		return &ValidationError{Code: CodeMissingRequired, Message: MessageMissingFields, Fields: missing}
	}

	if d := r.Discriminant; d != nil {
		value, _ := body[d.Field].(string)
		variant, ok := d.Variants[value]
		if !ok {
			return &ValidationError{
				Code:    CodeInvalidField,
				Message: "Invalid " + d.Field,
				Fields:  []string{d.Field},
			}
		}
		if missing := missingFields(body, variant.Fields); len(missing) > 0 {
			return &ValidationError{Code: variant.Code, Message: variant.Message, Fields: missing}
		}
	}

	if l := r.List; l != nil {
		items, _ := body[l.Field].([]interface{})
		for _, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok || len(missingFields(obj, l.Fields)) > 0 {
				return &ValidationError{Code: l.Code, Message: l.Message, Fields: []string{l.Field}}
			}
		}
	}

	for _, field := range r.Dates {
		v := body[field]
		if !present(v) {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return invalidField(field, "must be a YYYY-MM-DD date")
		}
		if _, err := models.ParseCalendarDate(s); err != nil {
			return invalidField(field, "must be a YYYY-MM-DD date")
		}
	}

	for _, field := range r.Counts {
		v := body[field]
		if !present(v) {
			continue
		}
		if !isPositiveInt(v) {
			return invalidField(field, "must be a positive integer")
		}
	}

	return nil
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidField,
		Message: "Invalid " + field + ": " + message,
		Fields:  []string{field},
	}
}

// missingFields lists, in rule order, the fields that are absent or empty
func missingFields(body map[string]interface{}, fields []string) []string {
	var missing []string
	for _, f := range fields {
		if !present(body[f]) {
			missing = append(missing, f)
		}
	}
	return missing
}

// present treats null, "", whitespace, 0, false and [] as absent
func present(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case float64:
		return val != 0
	case []interface{}:
		return len(val) > 0
	default:
		return true
	}
}

// isPositiveInt accepts whole numbers that fit the INTEGER count columns
func isPositiveInt(v interface{}) bool {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		return err == nil && n >= 1 && n <= math.MaxInt32
	case float64:
		return val >= 1 && val <= math.MaxInt32 && val == math.Trunc(val)
	default:
		return false
	}
}
