package wizard

import (
	"github.com/google/uuid"
	"github.com/pfjetdev/pfgrouptravel/pkg/client"
	"github.com/pfjetdev/pfgrouptravel/pkg/locations"
)

const (
	MinSegments = 2
	MaxSegments = 5
)

// MultiCityWizard collects an itinerary of 2 to 5 flights
type MultiCityWizard struct {
	flow
	segments []Segment
	contact  ContactInfo
}

// NewMultiCityWizard creates a multi-city wizard. A non-nil prefill seeds the
// first flight and the second flight's origin; Reset does not bring it back.
func NewMultiCityWizard(submitter Submitter, prefill *MultiCityPrefill) *MultiCityWizard {
	w := &MultiCityWizard{}
	if prefill != nil {
		w.seed(*prefill)
	} else {
		w.clear()
	}
	w.init(submitter, w)
	return w
}

func (w *MultiCityWizard) seed(p MultiCityPrefill) {
	cabin := p.Cabin
	if !cabin.Valid() {
		cabin = CabinEconomy
	}
	w.segments = []Segment{
		{ID: uuid.NewString(), Origin: p.From, Destination: p.To, Date: p.Date, PartySize: p.Passengers, Tier: cabin},
		{ID: uuid.NewString(), Origin: p.To, PartySize: p.Passengers, Tier: cabin},
	}
	w.contact = ContactInfo{}
}

func (w *MultiCityWizard) clear() {
	w.seed(MultiCityPrefill{})
}

func (w *MultiCityWizard) detailsComplete() bool {
	for _, s := range w.segments {
		if !s.complete() {
			return false
		}
	}
	return len(w.segments) >= MinSegments
}

func (w *MultiCityWizard) contactComplete() bool {
	return w.contact.fullComplete()
}

// payload takes passengers and class from the first flight
func (w *MultiCityWizard) payload() (string, interface{}, error) {
	first := w.segments[0]
	passengers, err := parseCount("Passengers", first.PartySize)
	if err != nil {
		return "", nil, err
	}

	flights := make([]client.FlightLeg, len(w.segments))
	for i, s := range w.segments {
		flights[i] = client.FlightLeg{
			From: locations.ExtractCode(s.Origin),
			To:   locations.ExtractCode(s.Destination),
			Date: s.Date.String(),
		}
	}

	return client.EndpointMultiCity, client.MultiCityPayload{
		Flights:    flights,
		Passengers: passengers,
		CabinClass: string(first.Tier),
		FullName:   w.contact.FullName,
		Phone:      w.contact.Phone.String(),
		Email:      w.contact.Email,
	}, nil
}

// Segments returns a copy of the itinerary
func (w *MultiCityWizard) Segments() []Segment {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Segment, len(w.segments))
	copy(out, w.segments)
	return out
}

func (w *MultiCityWizard) update(i int, fn func(s *Segment)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.segments) {
		return ErrNoSegment
	}
	fn(&w.segments[i])
	return nil
}

// SetOrigin sets flight i's origin
func (w *MultiCityWizard) SetOrigin(i int, v string) error {
	return w.update(i, func(s *Segment) { s.Origin = v })
}

// SetDestination sets flight i's destination and copies it once into the
// next flight's origin. Later edits of that origin are kept.
func (w *MultiCityWizard) SetDestination(i int, v string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.setDestination(i, v)
}

func (w *MultiCityWizard) setDestination(i int, v string) error {
	if i < 0 || i >= len(w.segments) {
		return ErrNoSegment
	}
	w.segments[i].Destination = v
	if i+1 < len(w.segments) {
		w.segments[i+1].Origin = v
	}
	return nil
}

// SetDate sets flight i's date
func (w *MultiCityWizard) SetDate(i int, d Date) error {
	return w.update(i, func(s *Segment) { s.Date = d })
}

// SetPartySize sets flight i's passenger count as typed
func (w *MultiCityWizard) SetPartySize(i int, v string) error {
	return w.update(i, func(s *Segment) { s.PartySize = v })
}

// SetTier sets flight i's cabin class
func (w *MultiCityWizard) SetTier(i int, c CabinClass) error {
	return w.update(i, func(s *Segment) { s.Tier = c })
}

// SwapEnds exchanges flight i's origin and destination
func (w *MultiCityWizard) SwapEnds(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.segments) {
		return ErrNoSegment
	}
	s := &w.segments[i]
	origin := s.Origin
	s.Origin = s.Destination
	return w.setDestination(i, origin)
}

// AddSegment appends a flight starting where the last one ends, with the
// last flight's passengers and class
func (w *MultiCityWizard) AddSegment() (Segment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.segments) >= MaxSegments {
		return Segment{}, ErrSegmentLimit
	}
	last := w.segments[len(w.segments)-1]
	s := Segment{
		ID:        uuid.NewString(),
		Origin:    last.Destination,
		PartySize: last.PartySize,
		Tier:      last.Tier,
	}
	w.segments = append(w.segments, s)
	return s, nil
}

// RemoveSegment drops the flight with the given id
func (w *MultiCityWizard) RemoveSegment(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.segments) <= MinSegments {
		return ErrSegmentLimit
	}
	for i, s := range w.segments {
		if s.ID == id {
			w.segments = append(w.segments[:i], w.segments[i+1:]...)
			return nil
		}
	}
	return ErrNoSegment
}

// SetContact replaces the contact details
func (w *MultiCityWizard) SetContact(c ContactInfo) { w.edit(func() { w.contact = c }) }

// Contact returns the contact details
func (w *MultiCityWizard) Contact() ContactInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contact
}
