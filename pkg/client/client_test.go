package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSubmit_Success(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, EndpointBooking, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "ok", "id": "lead-1"})
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL + "/"})
	id, err := c.Submit(context.Background(), EndpointBooking, BookingPayload{
		TripType:      "oneWay",
		FromAirport:   "JFK",
		ToAirport:     "LAX",
		DepartureDate: "2025-12-01",
		Passengers:    15,
		CabinClass:    "economy",
		FullName:      "Jane Doe",
		Phone:         "+1 5551234567",
		Email:         "jane@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "lead-1", id)

	// optional fields are explicit nulls, counts are numbers
	ret := gjson.Get(gotBody, "return_date")
	assert.True(t, ret.Exists())
	assert.Equal(t, gjson.Null, ret.Type)
	assert.Equal(t, gjson.Number, gjson.Get(gotBody, "passengers").Type)
	assert.Equal(t, "2025-12-01", gjson.Get(gotBody, "departure_date").String())
}

func TestSubmit_RequestPath(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"success":true,"id":"lead-1"}`))
	}))
	defer server.Close()

	for _, base := range []string{server.URL, server.URL + "/", server.URL + "/api", server.URL + "/api/"} {
		_, err := New(Config{BaseURL: base}).Submit(context.Background(), EndpointMultiCity, MultiCityPayload{})
		require.NoError(t, err, base)
	}
	assert.Equal(t, []string{"/api/multi-city", "/api/multi-city", "/api/multi-city", "/api/multi-city"}, paths)
}

func TestSubmit_RejectedWithServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Missing required fields","code":"missing_required_fields","fields":["email"]}`))
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Submit(context.Background(), EndpointContact, ContactPayload{})

	var serr *SubmissionError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, KindRejected, serr.Kind)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.Equal(t, "Missing required fields", serr.Message)
	assert.Equal(t, []string{"email"}, serr.Fields)
}

func TestSubmit_RejectedWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Submit(context.Background(), EndpointContact, ContactPayload{})

	var serr *SubmissionError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, KindRejected, serr.Kind)
	assert.Equal(t, MessageRejected, serr.Message)
}

func TestSubmit_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(Config{BaseURL: url}).Submit(context.Background(), EndpointBooking, BookingPayload{})

	var serr *SubmissionError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, KindTransport, serr.Kind)
	assert.Equal(t, MessageTransport, serr.Message)
	assert.NotNil(t, serr.Unwrap())
}

func TestSubmit_SuccessWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Submit(context.Background(), EndpointBooking, BookingPayload{})

	var serr *SubmissionError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, KindRejected, serr.Kind)
}

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(""))
	require.NotNil(t, StringOrNil("Acme"))
	assert.Equal(t, "Acme", *StringOrNil("Acme"))
}
