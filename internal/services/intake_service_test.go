package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pfjetdev/pfgrouptravel/internal/database"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/pkg/notify"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type insertCall struct {
	table string
	rec   database.Record
}

type fakeStore struct {
	mu      sync.Mutex
	inserts []insertCall
	err     error
}

func (f *fakeStore) Insert(ctx context.Context, table string, rec database.Record) (*database.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.inserts = append(f.inserts, insertCall{table: table, rec: rec})
	return &database.InsertResult{ID: "8a6e0804-2bd0-4672-b79d-d97027f9071a", CreatedAt: time.Now()}, nil
}

func (f *fakeStore) Select(ctx context.Context, dest interface{}, q database.Query) error {
	return nil
}

func (f *fakeStore) SelectOne(ctx context.Context, dest interface{}, q database.Query) error {
	return database.ErrNotFound
}

func (f *fakeStore) Update(ctx context.Context, table string, set database.Record, filters []database.Filter) (int64, error) {
	return 0, nil
}

type dispatched struct {
	kind models.RequestType
	id   string
	msg  notify.Message
}

type fakeDispatcher struct {
	calls []dispatched
}

func (f *fakeDispatcher) Dispatch(kind models.RequestType, leadID string, msg notify.Message) {
	f.calls = append(f.calls, dispatched{kind: kind, id: leadID, msg: msg})
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupIntakeTest(t *testing.T) (*IntakeService, *fakeStore, *fakeDispatcher) {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	store := &fakeStore{}
	dispatcher := &fakeDispatcher{}
	return NewIntakeService(store, dispatcher, loc, testLogger()), store, dispatcher
}

func recordValue(rec database.Record, column string) (interface{}, bool) {
	for _, f := range rec {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}

const validBooking = `{
	"trip_type": "roundTrip",
	"from_airport": "JFK - New York, United States",
	"to_airport": "LHR - London, United Kingdom",
	"departure_date": "2025-06-10",
	"return_date": "2025-06-20",
	"passengers": 12,
	"cabin_class": "business",
	"full_name": "Jane <Doe>",
	"phone": "+1 5551234567",
	"email": "jane@example.com"
}`

func TestSubmit_Booking(t *testing.T) {
	service, store, dispatcher := setupIntakeTest(t)

	sub, err := service.Submit(context.Background(), models.RequestBooking, []byte(validBooking), SubmissionMeta{
		ClientIP:   "203.0.113.9",
		ReceivedAt: time.Date(2025, 6, 1, 18, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "8a6e0804-2bd0-4672-b79d-d97027f9071a", sub.ID)
	assert.Equal(t, "Booking request submitted successfully", sub.Message)

	require.Len(t, store.inserts, 1)
	assert.Equal(t, "booking_requests", store.inserts[0].table)
	status, ok := recordValue(store.inserts[0].rec, "status")
	require.True(t, ok)
	assert.Equal(t, "new", status)
	passengers, _ := recordValue(store.inserts[0].rec, "passengers")
	assert.Equal(t, 12, passengers)

	require.Len(t, dispatcher.calls, 1)
	msg := dispatcher.calls[0].msg.HTML
	assert.Equal(t, sub.ID, dispatcher.calls[0].id)
	assert.Contains(t, msg, "<b>Group Travel</b>")
	assert.Contains(t, msg, "🎫 <b>NEW BOOKING REQUEST</b> 🔄")
	assert.Contains(t, msg, "• Name: Jane &lt;Doe&gt;")
	assert.Contains(t, msg, "• Return: 2025-06-20")
	assert.Contains(t, msg, "⏰ <i>Received at 6/1/2025, 11:04:05 AM PDT</i>")
	assert.Contains(t, msg, "203.0.113.9")
}

func TestSubmit_OneWayOmitsEmptyReturn(t *testing.T) {
	service, store, dispatcher := setupIntakeTest(t)

	body := `{"trip_type":"oneWay","from_airport":"JFK","to_airport":"LHR","departure_date":"2025-06-10",
		"return_date":"","passengers":3,"cabin_class":"economy","full_name":"A","phone":"5551234567","email":"a@example.com"}`
	_, err := service.Submit(context.Background(), models.RequestBooking, []byte(body), SubmissionMeta{})
	require.NoError(t, err)

	ret, _ := recordValue(store.inserts[0].rec, "return_date")
	assert.Nil(t, ret)
	assert.NotContains(t, dispatcher.calls[0].msg.HTML, "Return:")
	assert.Contains(t, dispatcher.calls[0].msg.HTML, "➡️")
}

func TestSubmit_MissingFields(t *testing.T) {
	service, store, dispatcher := setupIntakeTest(t)

	tests := []struct {
		name   string
		kind   models.RequestType
		body   string
		code   string
		msg    string
		fields []string
	}{
		{
			name:   "Booking without contact",
			kind:   models.RequestBooking,
			body:   `{"trip_type":"oneWay","from_airport":"JFK","to_airport":"LHR","departure_date":"2025-06-10","passengers":2,"cabin_class":"economy"}`,
			code:   CodeMissingRequired,
			msg:    "Missing required fields",
			fields: []string{"full_name", "phone", "email"},
		},
		{
			name:   "Zero passengers is missing",
			kind:   models.RequestBooking,
			body:   `{"trip_type":"oneWay","from_airport":"JFK","to_airport":"LHR","departure_date":"2025-06-10","passengers":0,"cabin_class":"economy","full_name":"A","phone":"5551234567","email":"a@example.com"}`,
			code:   CodeMissingRequired,
			msg:    "Missing required fields",
			fields: []string{"passengers"},
		},
		{
			name:   "Empty itinerary",
			kind:   models.RequestMultiCity,
			body:   `{"flights":[],"passengers":2,"cabin_class":"economy","full_name":"A","phone":"5551234567","email":"a@example.com"}`,
			code:   CodeMissingRequired,
			msg:    "Missing required fields",
			fields: []string{"flights"},
		},
		{
			name:   "Incomplete segment",
			kind:   models.RequestMultiCity,
			body:   `{"flights":[{"from":"JFK","to":"LHR","date":"2025-06-10"},{"from":"LHR","to":"","date":"2025-06-15"}],"passengers":2,"cabin_class":"economy","full_name":"A","phone":"5551234567","email":"a@example.com"}`,
			code:   CodeInvalidSegment,
			msg:    "Each flight segment must have from, to, and date",
			fields: []string{"flights"},
		},
		{
			name:   "Hotel without dates",
			kind:   models.RequestService,
			body:   `{"service_type":"hotel","destination":"Paris","guests":4,"first_name":"A","last_name":"B","email":"a@example.com","phone":"5551234567"}`,
			code:   CodeMissingHotel,
			msg:    "Missing hotel booking fields",
			fields: []string{"check_in_date", "check_out_date"},
		},
		{
			name:   "Transfer without passengers",
			kind:   models.RequestService,
			body:   `{"service_type":"transfer","pickup_location":"CDG","dropoff_location":"Hotel","transfer_date":"2025-06-10","first_name":"A","last_name":"B","email":"a@example.com","phone":"5551234567"}`,
			code:   CodeMissingTransfer,
			msg:    "Missing transfer booking fields",
			fields: []string{"passengers"},
		},
		{
			name:   "Service type missing",
			kind:   models.RequestService,
			body:   `{"first_name":"A","last_name":"B","email":"a@example.com","phone":"5551234567"}`,
			code:   CodeMissingRequired,
			msg:    "Missing required fields",
			fields: []string{"service_type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), tt.kind, []byte(tt.body), SubmissionMeta{})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.code, verr.Code)
			assert.Equal(t, tt.msg, verr.Message)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}

	assert.Empty(t, store.inserts)
	assert.Empty(t, dispatcher.calls)
}

func TestSubmit_InvalidFields(t *testing.T) {
	service, store, _ := setupIntakeTest(t)

	tests := []struct {
		name  string
		kind  models.RequestType
		body  string
		field string
	}{
		{
			name:  "Unknown service type",
			kind:  models.RequestService,
			body:  `{"service_type":"yacht","first_name":"A","last_name":"B","email":"a@example.com","phone":"5551234567"}`,
			field: "service_type",
		},
		{
			name:  "Bad email",
			kind:  models.RequestContact,
			body:  `{"first_name":"A","last_name":"B","email":"not-an-email","phone":"5551234567","inquiry_type":"other","message":"hi"}`,
			field: "email",
		},
		{
			name:  "Bad phone",
			kind:  models.RequestContact,
			body:  `{"first_name":"A","last_name":"B","email":"a@example.com","phone":"call me","inquiry_type":"other","message":"hi"}`,
			field: "phone",
		},
		{
			name:  "Unknown inquiry type",
			kind:  models.RequestContact,
			body:  `{"first_name":"A","last_name":"B","email":"a@example.com","phone":"5551234567","inquiry_type":"spam","message":"hi"}`,
			field: "inquiry_type",
		},
		{
			name:  "Fractional passengers",
			kind:  models.RequestBooking,
			body:  `{"trip_type":"oneWay","from_airport":"JFK","to_airport":"LHR","departure_date":"2025-06-10","passengers":2.5,"cabin_class":"economy","full_name":"A","phone":"5551234567","email":"a@example.com"}`,
			field: "passengers",
		},
		{
			name:  "Passengers beyond column range",
			kind:  models.RequestBooking,
			body:  `{"trip_type":"oneWay","from_airport":"JFK","to_airport":"LHR","departure_date":"2025-06-10","passengers":3000000000,"cabin_class":"economy","full_name":"A","phone":"5551234567","email":"a@example.com"}`,
			field: "passengers",
		},
		{
			name:  "Malformed date",
			kind:  models.RequestBooking,
			body:  `{"trip_type":"oneWay","from_airport":"JFK","to_airport":"LHR","departure_date":"10/06/2025","passengers":2,"cabin_class":"economy","full_name":"A","phone":"5551234567","email":"a@example.com"}`,
			field: "departure_date",
		},
		{
			name:  "Return before departure",
			kind:  models.RequestBooking,
			body:  `{"trip_type":"roundTrip","from_airport":"JFK","to_airport":"LHR","departure_date":"2025-06-10","return_date":"2025-06-01","passengers":2,"cabin_class":"economy","full_name":"A","phone":"5551234567","email":"a@example.com"}`,
			field: "return_date",
		},
		{
			name:  "Wrong type",
			kind:  models.RequestEnterprise,
			body:  `{"company_name":"Acme","contact_name":"A","email":"a@example.com","phone":"5551234567","industry_type":"sports","message":"hi","number_of_employees":250}`,
			field: "number_of_employees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), tt.kind, []byte(tt.body), SubmissionMeta{})
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, CodeInvalidField, verr.Code)
			assert.Equal(t, []string{tt.field}, verr.Fields)
		})
	}

	assert.Empty(t, store.inserts)
}

func TestSubmit_InvalidJSON(t *testing.T) {
	service, _, _ := setupIntakeTest(t)

	for _, body := range []string{``, `[]`, `null`, `{"a":`} {
		_, err := service.Submit(context.Background(), models.RequestContact, []byte(body), SubmissionMeta{})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, body)
		assert.Equal(t, CodeInvalidJSON, verr.Code)
	}
}

func TestSubmit_MultiCity(t *testing.T) {
	service, store, dispatcher := setupIntakeTest(t)

	body := `{"flights":[{"from":"JFK","to":"LHR","date":"2025-06-10"},{"from":"LHR","to":"CDG","date":"2025-06-15"}],
		"passengers":8,"cabin_class":"first","full_name":"A","phone":"+44 7911123456","email":"a@example.com"}`
	sub, err := service.Submit(context.Background(), models.RequestMultiCity, []byte(body), SubmissionMeta{})
	require.NoError(t, err)
	assert.Equal(t, "Multi-city booking request submitted successfully", sub.Message)

	require.Len(t, store.inserts, 1)
	flights, _ := recordValue(store.inserts[0].rec, "flights")
	assert.Equal(t, models.FlightLegs{
		{From: "JFK", To: "LHR", Date: "2025-06-10"},
		{From: "LHR", To: "CDG", Date: "2025-06-15"},
	}, flights)

	require.Len(t, dispatcher.calls, 1)
	msg := dispatcher.calls[0].msg.HTML
	assert.Contains(t, msg, "  1. JFK → LHR (2025-06-10)")
	assert.Contains(t, msg, "  2. LHR → CDG (2025-06-15)")
}

func TestSubmit_ServiceStoresNullsAndDoesNotNotify(t *testing.T) {
	service, store, dispatcher := setupIntakeTest(t)

	body := `{"service_type":"transfer","pickup_location":"CDG","dropoff_location":"Hotel Lutetia","transfer_date":"2025-06-10",
		"passengers":6,"destination":"","guests":null,"first_name":"A","last_name":"B","email":"a@example.com","phone":"5551234567"}`
	sub, err := service.Submit(context.Background(), models.RequestService, []byte(body), SubmissionMeta{})
	require.NoError(t, err)
	assert.Equal(t, "Service request submitted successfully", sub.Message)

	rec := store.inserts[0].rec
	for _, column := range []string{"destination", "check_in_date", "check_out_date", "guests"} {
		v, ok := recordValue(rec, column)
		assert.True(t, ok, column)
		assert.Nil(t, v, column)
	}
	passengers, _ := recordValue(rec, "passengers")
	assert.Equal(t, 6, passengers)
	assert.Empty(t, dispatcher.calls)
}

func TestSubmit_EnterpriseNotifies(t *testing.T) {
	service, _, dispatcher := setupIntakeTest(t)

	body := `{"company_name":"Acme & Co","contact_name":"A","email":"a@example.com","phone":"5551234567",
		"industry_type":"sports","annual_travel_budget":"100k-500k","number_of_employees":null,"message":"Team travel"}`
	_, err := service.Submit(context.Background(), models.RequestEnterprise, []byte(body), SubmissionMeta{})
	require.NoError(t, err)

	require.Len(t, dispatcher.calls, 1)
	msg := dispatcher.calls[0].msg.HTML
	assert.Contains(t, msg, "🏢 <b>NEW ENTERPRISE INQUIRY</b> 💼")
	assert.Contains(t, msg, "• Company: Acme &amp; Co")
	assert.Contains(t, msg, "• Budget: 100k-500k")
	assert.NotContains(t, msg, "Employees:")
}

func TestSubmit_EnterpriseSummaryBoundsMessage(t *testing.T) {
	service, store, dispatcher := setupIntakeTest(t)

	long := strings.Repeat("&", 5000)
	body := `{"company_name":"Acme","contact_name":"A","email":"a@example.com","phone":"5551234567",
		"industry_type":"sports","message":"` + long + `"}`
	_, err := service.Submit(context.Background(), models.RequestEnterprise, []byte(body), SubmissionMeta{
		ReceivedAt: time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	stored, _ := recordValue(store.inserts[0].rec, "message")
	assert.Equal(t, long, stored, "the stored message is never shortened")

	require.Len(t, dispatcher.calls, 1)
	msg := dispatcher.calls[0].msg.HTML
	assert.Contains(t, msg, strings.Repeat("&amp;", maxSummaryText)+"…\n")
	assert.NotContains(t, msg, "&a…")
	assert.Contains(t, msg, "Received at 1/15/2025, 12:00:00 PM PST</i>")
}

func TestSubmit_ContactDoesNotNotify(t *testing.T) {
	service, store, dispatcher := setupIntakeTest(t)

	body := `{"first_name":"A","last_name":"B","email":"a@example.com","phone":"5551234567","inquiry_type":"group-booking","group_size":"","message":"hi"}`
	_, err := service.Submit(context.Background(), models.RequestContact, []byte(body), SubmissionMeta{})
	require.NoError(t, err)

	require.Len(t, store.inserts, 1)
	size, _ := recordValue(store.inserts[0].rec, "group_size")
	assert.Nil(t, size)
	assert.Empty(t, dispatcher.calls)
}

func TestSubmit_PersistenceError(t *testing.T) {
	service, store, dispatcher := setupIntakeTest(t)
	store.err = errors.New("connection refused")

	body := `{"first_name":"A","last_name":"B","email":"a@example.com","phone":"5551234567","inquiry_type":"other","message":"hi"}`
	_, err := service.Submit(context.Background(), models.RequestContact, []byte(body), SubmissionMeta{})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Failed to save contact request", perr.Error())
	assert.Contains(t, errors.Unwrap(err).Error(), "connection refused")
	assert.Empty(t, dispatcher.calls)
}

func TestSubmit_UnknownType(t *testing.T) {
	service, _, _ := setupIntakeTest(t)
	_, err := service.Submit(context.Background(), models.RequestType("charter"), []byte(`{}`), SubmissionMeta{})
	assert.ErrorIs(t, err, ErrUnknownRequestType)
}

func TestIntakeRules_CoverEveryRequestType(t *testing.T) {
	for _, kind := range models.RequestTypes {
		rule, ok := IntakeRules[kind]
		require.True(t, ok, kind)
		assert.Equal(t, kind, rule.Type)
		assert.NotEmpty(t, rule.Table)
		assert.NotEmpty(t, rule.SuccessMessage)
		_, announces := rule.newLead().(announcer)
		assert.Equal(t, rule.Notify, announces, kind)
	}
}

func TestPresent(t *testing.T) {
	assert.False(t, present(nil))
	assert.False(t, present(""))
	assert.False(t, present("   "))
	assert.False(t, present(false))
	assert.False(t, present([]interface{}{}))
	assert.True(t, present("x"))
	assert.True(t, present(true))
	assert.True(t, present([]interface{}{1}))
	assert.True(t, present(map[string]interface{}{}))
}
