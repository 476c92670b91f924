package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pfjetdev/pfgrouptravel/pkg/client"
	"github.com/pfjetdev/pfgrouptravel/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submitCall struct {
	endpoint string
	payload  interface{}
}

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []submitCall
	id    string
	err   error
	gate  chan struct{} // when set, Submit blocks until it is closed
}

func (f *fakeSubmitter) Submit(ctx context.Context, endpoint string, payload interface{}) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, submitCall{endpoint: endpoint, payload: payload})
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.id, f.err
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func jane() ContactInfo {
	return ContactInfo{
		FullName: "Jane Doe",
		Phone:    validator.Phone{CountryCode: "1", NationalNumber: "5551234567"},
		Email:    "jane@example.com",
	}
}

func filledFlight(sub Submitter) *FlightWizard {
	w := NewFlightWizard(sub, nil)
	w.SetTripType(TripOneWay)
	w.SetFrom("JFK - New York, United States")
	w.SetTo("LAX")
	w.SetDepartDate(NewDate(2025, time.December, 1))
	w.SetPassengers("15")
	return w
}

func TestFlightWizard_HappyPath(t *testing.T) {
	sub := &fakeSubmitter{id: "lead-1"}
	w := filledFlight(sub)

	assert.Equal(t, StepDetails, w.Step())
	require.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	assert.Equal(t, StepContact, w.Step())
	assert.False(t, w.CanSubmit())

	w.SetContact(jane())
	require.True(t, w.CanSubmit())
	require.NoError(t, w.Submit(context.Background()))

	assert.Equal(t, StepSubmitted, w.Step())
	assert.Equal(t, "lead-1", w.SubmittedID())
	require.Len(t, sub.calls, 1)
	assert.Equal(t, client.EndpointBooking, sub.calls[0].endpoint)
	assert.Equal(t, client.BookingPayload{
		TripType:      "oneWay",
		FromAirport:   "JFK",
		ToAirport:     "LAX",
		DepartureDate: "2025-12-01",
		Passengers:    15,
		CabinClass:    "economy",
		FullName:      "Jane Doe",
		Phone:         "+1 5551234567",
		Email:         "jane@example.com",
	}, sub.calls[0].payload)
}

func TestFlightWizard_GateIsReactive(t *testing.T) {
	w := NewFlightWizard(&fakeSubmitter{}, nil)
	assert.False(t, w.CanAdvance())
	assert.ErrorIs(t, w.Next(), ErrIncomplete)

	w.SetFrom("JFK")
	w.SetTo("LAX")
	w.SetDepartDate(NewDate(2025, time.June, 1))
	assert.False(t, w.CanAdvance())

	w.SetPassengers("12.5")
	assert.False(t, w.CanAdvance(), "fractional party sizes are not rounded")

	w.SetPassengers("12")
	assert.True(t, w.CanAdvance())

	w.SetTo("")
	assert.False(t, w.CanAdvance())
}

func TestFlightWizard_ReturnDateOnlyForRoundTrip(t *testing.T) {
	sub := &fakeSubmitter{id: "x"}
	w := filledFlight(sub)
	w.SetReturnDate(NewDate(2025, time.December, 9))
	require.NoError(t, w.Next())
	w.SetContact(jane())
	require.NoError(t, w.Submit(context.Background()))
	assert.Nil(t, sub.calls[0].payload.(client.BookingPayload).ReturnDate)

	sub = &fakeSubmitter{id: "y"}
	w = filledFlight(sub)
	w.SetTripType(TripRoundTrip)
	w.SetReturnDate(NewDate(2025, time.December, 9))
	require.NoError(t, w.Next())
	w.SetContact(jane())
	require.NoError(t, w.Submit(context.Background()))
	ret := sub.calls[0].payload.(client.BookingPayload).ReturnDate
	require.NotNil(t, ret)
	assert.Equal(t, "2025-12-09", *ret)
}

func TestFlightWizard_BackKeepsData(t *testing.T) {
	w := filledFlight(&fakeSubmitter{})
	require.NoError(t, w.Next())
	w.SetContact(jane())

	w.Back()
	assert.Equal(t, StepDetails, w.Step())
	from, to := w.Route()
	assert.Equal(t, "JFK - New York, United States", from)
	assert.Equal(t, "LAX", to)

	require.NoError(t, w.Next())
	assert.Equal(t, jane(), w.Contact())
}

func TestFlightWizard_FailureStaysOnContact(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Server message", &client.SubmissionError{Kind: client.KindRejected, Status: 400, Message: "Missing required fields"}, "Missing required fields"},
		{"Transport", &client.SubmissionError{Kind: client.KindTransport, Message: client.MessageTransport}, client.MessageTransport},
		{"Unknown error", errors.New("boom"), client.MessageTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &fakeSubmitter{err: tt.err}
			w := filledFlight(sub)
			require.NoError(t, w.Next())
			w.SetContact(jane())

			assert.Error(t, w.Submit(context.Background()))
			assert.Equal(t, StepContact, w.Step())
			assert.Equal(t, tt.want, w.Feedback())
			assert.True(t, w.CanSubmit(), "a failed submission is never a dead end")

			w.DismissFeedback()
			assert.Empty(t, w.Feedback())
		})
	}
}

func TestFlightWizard_NoDuplicateSubmitWhileInFlight(t *testing.T) {
	sub := &fakeSubmitter{id: "lead-1", gate: make(chan struct{})}
	w := filledFlight(sub)
	require.NoError(t, w.Next())
	w.SetContact(jane())

	done := make(chan error)
	go func() { done <- w.Submit(context.Background()) }()

	require.Eventually(t, w.Submitting, time.Second, 5*time.Millisecond)
	assert.False(t, w.CanSubmit())
	assert.ErrorIs(t, w.Submit(context.Background()), ErrSubmissionInFlight)

	close(sub.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sub.count())
	assert.False(t, w.Submitting())
}

func TestFlightWizard_Reset(t *testing.T) {
	w := filledFlight(&fakeSubmitter{id: "lead-1"})
	require.NoError(t, w.Next())
	w.SetContact(jane())
	require.NoError(t, w.Submit(context.Background()))

	w.Reset()
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, TripRoundTrip, w.TripType())
	assert.Empty(t, w.Passengers())
	assert.Empty(t, w.SubmittedID())
	assert.Equal(t, ContactInfo{}, w.Contact())
}

func TestFlightWizard_MultiCityRedirect(t *testing.T) {
	sub := &fakeSubmitter{}
	w := NewFlightWizard(sub, nil)
	assert.Nil(t, w.SetTripType(TripMultiCity), "incomplete details do not redirect")

	w.SetFrom("JFK")
	w.SetTo("LHR")
	w.SetDepartDate(NewDate(2025, time.June, 1))
	w.SetPassengers("20")
	w.SetCabinClass(CabinBusiness)

	prefill := w.SetTripType(TripMultiCity)
	require.NotNil(t, prefill)
	assert.Equal(t, MultiCityPrefill{From: "JFK", To: "LHR", Date: NewDate(2025, time.June, 1), Passengers: "20", Cabin: CabinBusiness}, *prefill)
	assert.Zero(t, sub.count())

	mc := NewMultiCityWizard(sub, prefill)
	segs := mc.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, "JFK", segs[0].Origin)
	assert.Equal(t, "LHR", segs[0].Destination)
	assert.Equal(t, "LHR", segs[1].Origin)
	assert.Equal(t, "20", segs[1].PartySize)
	assert.Equal(t, CabinBusiness, segs[1].Tier)
}

func TestFlightWizard_DestinationCards(t *testing.T) {
	topic := NewTopic[DestinationSelected]()
	w := NewFlightWizard(&fakeSubmitter{}, nil)
	unsubscribe := w.BindDestinations(topic)

	topic.Publish(DestinationSelected{City: "london"})
	_, to := w.Route()
	assert.Equal(t, "LHR", to)

	topic.Publish(DestinationSelected{City: "Atlantis"})
	_, to = w.Route()
	assert.Equal(t, "Atlantis", to, "unknown cities fall back to the raw name")

	unsubscribe()
	unsubscribe()
	assert.Zero(t, topic.Len())
	topic.Publish(DestinationSelected{City: "Paris"})
	_, to = w.Route()
	assert.Equal(t, "Atlantis", to)
}

func TestMultiCityWizard_DestinationCopiesOnce(t *testing.T) {
	w := NewMultiCityWizard(&fakeSubmitter{}, nil)

	require.NoError(t, w.SetDestination(0, "LHR"))
	assert.Equal(t, "LHR", w.Segments()[1].Origin)

	require.NoError(t, w.SetOrigin(1, "CDG"))
	assert.Equal(t, "CDG", w.Segments()[1].Origin)
	assert.Equal(t, "LHR", w.Segments()[0].Destination)

	// the last flight has no successor to copy into
	require.NoError(t, w.SetDestination(1, "FCO"))
	assert.Len(t, w.Segments(), 2)

	assert.ErrorIs(t, w.SetDestination(5, "X"), ErrNoSegment)
}

func TestMultiCityWizard_SegmentLimits(t *testing.T) {
	w := NewMultiCityWizard(&fakeSubmitter{}, &MultiCityPrefill{From: "JFK", To: "LHR", Passengers: "10", Cabin: CabinFirst})
	first := w.Segments()[0]
	assert.ErrorIs(t, w.RemoveSegment(first.ID), ErrSegmentLimit)

	require.NoError(t, w.SetDestination(1, "CDG"))
	added, err := w.AddSegment()
	require.NoError(t, err)
	assert.Equal(t, "CDG", added.Origin)
	assert.Equal(t, "10", added.PartySize)
	assert.Equal(t, CabinFirst, added.Tier)
	assert.NotEqual(t, first.ID, added.ID)

	for i := 0; i < 2; i++ {
		_, err = w.AddSegment()
		require.NoError(t, err)
	}
	_, err = w.AddSegment()
	assert.ErrorIs(t, err, ErrSegmentLimit)
	assert.Len(t, w.Segments(), MaxSegments)

	require.NoError(t, w.RemoveSegment(added.ID))
	assert.Len(t, w.Segments(), 4)
	assert.ErrorIs(t, w.RemoveSegment("missing"), ErrNoSegment)
}

func TestMultiCityWizard_Submit(t *testing.T) {
	sub := &fakeSubmitter{id: "mc-1"}
	w := NewMultiCityWizard(sub, &MultiCityPrefill{
		From: "JFK - New York, United States", To: "LHR",
		Date: NewDate(2025, time.June, 1), Passengers: "20", Cabin: CabinEconomy,
	})
	assert.False(t, w.CanAdvance())

	require.NoError(t, w.SetDestination(1, "CDG"))
	require.NoError(t, w.SetDate(1, NewDate(2025, time.June, 10)))
	require.True(t, w.CanAdvance())
	require.NoError(t, w.Next())
	w.SetContact(jane())
	require.NoError(t, w.Submit(context.Background()))

	require.Len(t, sub.calls, 1)
	assert.Equal(t, client.EndpointMultiCity, sub.calls[0].endpoint)
	p := sub.calls[0].payload.(client.MultiCityPayload)
	assert.Equal(t, []client.FlightLeg{
		{From: "JFK", To: "LHR", Date: "2025-06-01"},
		{From: "LHR", To: "CDG", Date: "2025-06-10"},
	}, p.Flights)
	assert.Equal(t, 20, p.Passengers)
}

func TestMultiCityWizard_SwapEnds(t *testing.T) {
	w := NewMultiCityWizard(&fakeSubmitter{}, &MultiCityPrefill{From: "JFK", To: "LHR"})
	require.NoError(t, w.SwapEnds(0))
	segs := w.Segments()
	assert.Equal(t, "LHR", segs[0].Origin)
	assert.Equal(t, "JFK", segs[0].Destination)
	assert.Equal(t, "JFK", segs[1].Origin)
}

func TestMultiCityWizard_ResetDropsPrefill(t *testing.T) {
	sub := &fakeSubmitter{id: "mc-2"}
	w := NewMultiCityWizard(sub, &MultiCityPrefill{
		From: "JFK", To: "LHR", Date: NewDate(2025, time.June, 1), Passengers: "12", Cabin: CabinBusiness,
	})
	require.NoError(t, w.SetDestination(1, "CDG"))
	require.NoError(t, w.SetDate(1, NewDate(2025, time.June, 10)))
	_, err := w.AddSegment()
	require.NoError(t, err)
	require.NoError(t, w.SetDestination(2, "FRA"))
	require.NoError(t, w.SetDate(2, NewDate(2025, time.June, 14)))
	require.NoError(t, w.Next())
	w.SetContact(jane())
	require.NoError(t, w.Submit(context.Background()))

	w.Reset()
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, ContactInfo{}, w.Contact())
	segs := w.Segments()
	require.Len(t, segs, MinSegments)
	for _, s := range segs {
		assert.Empty(t, s.Origin)
		assert.Empty(t, s.Destination)
		assert.True(t, s.Date.IsZero())
		assert.Empty(t, s.PartySize)
		assert.Equal(t, CabinEconomy, s.Tier)
	}
	assert.False(t, w.CanAdvance())
}

func TestServiceWizard_ResetReturnsToHotel(t *testing.T) {
	sub := &fakeSubmitter{id: "svc-2"}
	w := NewServiceWizard(sub)
	w.SelectService(ServiceTransfer)
	w.SetTransfer(TransferDetails{Pickup: "CDG", Dropoff: "Hotel Lutetia", Date: NewDate(2025, time.July, 1), Passengers: "18"})
	require.NoError(t, w.Next())
	w.SetContact(ContactInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Phone: validator.Phone{CountryCode: "1", NationalNumber: "5551234567"}})
	require.NoError(t, w.Submit(context.Background()))

	w.Reset()
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, ServiceHotel, w.Service())
	assert.Equal(t, TransferDetails{}, w.Transfer())
	assert.Equal(t, HotelDetails{}, w.Hotel())
}

func TestServiceWizard(t *testing.T) {
	sub := &fakeSubmitter{id: "svc-1"}
	w := NewServiceWizard(sub)
	assert.Equal(t, ServiceHotel, w.Service())

	w.SetHotel(HotelDetails{Destination: "Paris", CheckIn: NewDate(2025, time.July, 1), CheckOut: NewDate(2025, time.July, 5)})
	assert.False(t, w.CanAdvance(), "guests missing")

	h := w.Hotel()
	h.Guests = "30"
	w.SetHotel(h)
	require.NoError(t, w.Next())

	w.SelectService(ServiceTransfer)
	assert.Equal(t, StepDetails, w.Step(), "switching tabs returns to step one")
	assert.False(t, w.CanAdvance())
	assert.Equal(t, "Paris", w.Hotel().Destination, "hotel data is kept")

	w.SelectService(ServiceHotel)
	require.NoError(t, w.Next())
	w.SetContact(ContactInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
		Phone: validator.Phone{CountryCode: "44", NationalNumber: "7700900123"}})
	require.NoError(t, w.Submit(context.Background()))

	p := sub.calls[0].payload.(client.ServicePayload)
	assert.Equal(t, "hotel", p.ServiceType)
	require.NotNil(t, p.Guests)
	assert.Equal(t, 30, *p.Guests)
	assert.Equal(t, "2025-07-05", *p.CheckOutDate)
	assert.Nil(t, p.PickupLocation)
	assert.Nil(t, p.Passengers)
	assert.Equal(t, "+44 7700900123", p.Phone)
}

func TestServiceWizard_CheckOutBeforeCheckIn(t *testing.T) {
	sub := &fakeSubmitter{}
	w := NewServiceWizard(sub)
	w.SetHotel(HotelDetails{Destination: "Rome", CheckIn: NewDate(2025, time.July, 5), CheckOut: NewDate(2025, time.July, 1), Guests: "4"})
	require.NoError(t, w.Next())
	w.SetContact(ContactInfo{FirstName: "A", LastName: "B", Email: "a@b.co", Phone: validator.Phone{CountryCode: "1", NationalNumber: "5551234567"}})

	assert.Error(t, w.Submit(context.Background()))
	assert.NotEmpty(t, w.Feedback())
	assert.Zero(t, sub.count())
}

func TestContactAndEnterpriseWizards(t *testing.T) {
	sub := &fakeSubmitter{id: "c-1"}

	cw := NewContactWizard(sub)
	cw.SetInquiry(InquiryDetails{InquiryType: "group-booking", Message: "Team trip"})
	require.NoError(t, cw.Next())
	cw.SetContact(ContactInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: jane().Phone})
	require.NoError(t, cw.Submit(context.Background()))
	cp := sub.calls[0].payload.(client.ContactPayload)
	assert.Nil(t, cp.GroupSize)
	assert.Equal(t, client.EndpointContact, sub.calls[0].endpoint)

	ew := NewEnterpriseWizard(sub)
	ew.SetCompany(CompanyDetails{CompanyName: "Acme", IndustryType: "sports", Message: "Season travel", NumberOfEmployees: "250"})
	require.NoError(t, ew.Next())
	ew.SetContact(jane())
	require.NoError(t, ew.Submit(context.Background()))
	ep := sub.calls[1].payload.(client.EnterprisePayload)
	assert.Equal(t, "Jane Doe", ep.ContactName)
	assert.Nil(t, ep.AnnualTravelBudget)
	require.NotNil(t, ep.NumberOfEmployees)
	assert.Equal(t, "250", *ep.NumberOfEmployees)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", d.String())
	assert.True(t, d.Before(NewDate(2025, time.March, 1)))
	assert.Equal(t, "", Date{}.String())

	_, err = ParseDate("28/02/2025")
	assert.Error(t, err)

	late := time.Date(2025, 6, 1, 23, 30, 0, 0, time.FixedZone("PDT", -7*3600))
	assert.Equal(t, "2025-06-01", DateOf(late).String())
}

func TestParsePhone(t *testing.T) {
	p, err := ParsePhone("+44 7700 900123")
	require.NoError(t, err)
	assert.Equal(t, "44", p.CountryCode)
	assert.Equal(t, "+44 7700900123", p.String())
}
