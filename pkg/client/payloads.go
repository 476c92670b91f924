package client

// Payloads mirror the intake wire shape. Optional fields are pointers without
// omitempty so an unset value is sent as an explicit null.

// BookingPayload is posted to EndpointBooking
type BookingPayload struct {
	TripType      string  `json:"trip_type"`
	FromAirport   string  `json:"from_airport"`
	ToAirport     string  `json:"to_airport"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date"`
	Passengers    int     `json:"passengers"`
	CabinClass    string  `json:"cabin_class"`
	FullName      string  `json:"full_name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
}

// FlightLeg is one element of MultiCityPayload.Flights
type FlightLeg struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

// MultiCityPayload is posted to EndpointMultiCity
type MultiCityPayload struct {
	Flights    []FlightLeg `json:"flights"`
	Passengers int         `json:"passengers"`
	CabinClass string      `json:"cabin_class"`
	FullName   string      `json:"full_name"`
	Phone      string      `json:"phone"`
	Email      string      `json:"email"`
}

// ServicePayload is posted to EndpointServices. Fields of the other variant
// stay null.
type ServicePayload struct {
	ServiceType     string  `json:"service_type"`
	Destination     *string `json:"destination"`
	CheckInDate     *string `json:"check_in_date"`
	CheckOutDate    *string `json:"check_out_date"`
	Guests          *int    `json:"guests"`
	PickupLocation  *string `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
	TransferDate    *string `json:"transfer_date"`
	Passengers      *int    `json:"passengers"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
}

// ContactPayload is posted to EndpointContact
type ContactPayload struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	InquiryType string  `json:"inquiry_type"`
	GroupSize   *string `json:"group_size"`
	Message     string  `json:"message"`
}

// EnterprisePayload is posted to EndpointEnterprise
type EnterprisePayload struct {
	CompanyName        string  `json:"company_name"`
	ContactName        string  `json:"contact_name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	IndustryType       string  `json:"industry_type"`
	AnnualTravelBudget *string `json:"annual_travel_budget"`
	NumberOfEmployees  *string `json:"number_of_employees"`
	Message            string  `json:"message"`
}

// StringOrNil returns nil for an empty string
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
