package wizard

import (
	"github.com/pfjetdev/pfgrouptravel/pkg/client"
	"github.com/pfjetdev/pfgrouptravel/pkg/locations"
)

// MultiCityPrefill carries the single-leg fields into a new multi-city wizard
type MultiCityPrefill struct {
	From       string
	To         string
	Date       Date
	Passengers string
	Cabin      CabinClass
}

// FlightWizard collects a round-trip or one-way group flight request
type FlightWizard struct {
	flow
	dir        *locations.Directory
	tripType   TripType
	from       string
	to         string
	departDate Date
	returnDate Date
	passengers string
	cabin      CabinClass
	contact    ContactInfo
}

// NewFlightWizard creates a flight wizard. dir resolves destination cards to
// codes; nil means the default directory.
func NewFlightWizard(submitter Submitter, dir *locations.Directory) *FlightWizard {
	if dir == nil {
		dir = locations.Default()
	}
	w := &FlightWizard{dir: dir}
	w.clear()
	w.init(submitter, w)
	return w
}

func (w *FlightWizard) clear() {
	w.tripType = TripRoundTrip
	w.from, w.to = "", ""
	w.departDate, w.returnDate = Date{}, Date{}
	w.passengers = ""
	w.cabin = CabinEconomy
	w.contact = ContactInfo{}
}

func (w *FlightWizard) detailsComplete() bool {
	return w.multiCityReady() && w.cabin.Valid()
}

func (w *FlightWizard) multiCityReady() bool {
	return present(w.from) && present(w.to) && !w.departDate.IsZero() && validCount(w.passengers)
}

func (w *FlightWizard) contactComplete() bool {
	return w.contact.fullComplete()
}

func (w *FlightWizard) payload() (string, interface{}, error) {
	passengers, err := parseCount("Passengers", w.passengers)
	if err != nil {
		return "", nil, err
	}

	p := client.BookingPayload{
		TripType:      string(w.tripType),
		FromAirport:   locations.ExtractCode(w.from),
		ToAirport:     locations.ExtractCode(w.to),
		DepartureDate: w.departDate.String(),
		Passengers:    passengers,
		CabinClass:    string(w.cabin),
		FullName:      w.contact.FullName,
		Phone:         w.contact.Phone.String(),
		Email:         w.contact.Email,
	}
	if w.tripType == TripRoundTrip {
		p.ReturnDate = w.returnDate.ptr()
	}
	return client.EndpointBooking, p, nil
}

// SetTripType changes the trip type. Choosing multi-city once the route,
// date and passengers are filled returns the prefill for a MultiCityWizard;
// no request is sent.
func (w *FlightWizard) SetTripType(t TripType) *MultiCityPrefill {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tripType = t
	if t != TripMultiCity || !w.multiCityReady() {
		return nil
	}
	return &MultiCityPrefill{
		From:       w.from,
		To:         w.to,
		Date:       w.departDate,
		Passengers: w.passengers,
		Cabin:      w.cabin,
	}
}

// TripType returns the selected trip type
func (w *FlightWizard) TripType() TripType {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tripType
}

// SetFrom sets the origin (code or display form)
func (w *FlightWizard) SetFrom(v string) { w.edit(func() { w.from = v }) }

// SetTo sets the destination (code or display form)
func (w *FlightWizard) SetTo(v string) { w.edit(func() { w.to = v }) }

// SetDepartDate sets the outbound date
func (w *FlightWizard) SetDepartDate(d Date) { w.edit(func() { w.departDate = d }) }

// SetReturnDate sets the return date; it is only sent for round trips
func (w *FlightWizard) SetReturnDate(d Date) { w.edit(func() { w.returnDate = d }) }

// SetPassengers sets the party size as typed
func (w *FlightWizard) SetPassengers(v string) { w.edit(func() { w.passengers = v }) }

// SetCabinClass sets the cabin class
func (w *FlightWizard) SetCabinClass(c CabinClass) { w.edit(func() { w.cabin = c }) }

// SetContact replaces the contact details
func (w *FlightWizard) SetContact(c ContactInfo) { w.edit(func() { w.contact = c }) }

// Route returns the origin and destination as entered
func (w *FlightWizard) Route() (from, to string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.from, w.to
}

// Passengers returns the party size as typed
func (w *FlightWizard) Passengers() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.passengers
}

// Contact returns the contact details
func (w *FlightWizard) Contact() ContactInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contact
}

// BindDestinations makes destination card selections fill the destination
// field. The returned function unsubscribes.
func (w *FlightWizard) BindDestinations(topic *Topic[DestinationSelected]) func() {
	return topic.Subscribe(func(ev DestinationSelected) {
		to := ev.City
		if entry, ok := w.dir.FindByCity(ev.City); ok {
			to = entry.Code
		}
		w.SetTo(to)
	})
}
