package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adbPayload = `[{
	"number": "BA 176",
	"status": "Boarding",
	"departure": {
		"airport": {"iata": "JFK", "countryCode": "US", "timeZone": "America/New_York"},
		"scheduledTime": {"local": "2026-05-01 18:30-04:00"},
		"revisedTime": {"local": "2026-05-01 18:45-04:00"},
		"terminal": "7",
		"checkInDesk": "A",
		"gate": "B12"
	},
	"arrival": {
		"airport": {"iata": "LHR", "countryCode": "GB", "timeZone": "Europe/London"},
		"scheduledTime": {"local": "2026-05-02 06:30+01:00"},
		"terminal": "5"
	},
	"aircraft": {"reg": "G-YMMR", "model": "Boeing 777-200"},
	"airline": {"iata": "BA", "name": "British Airways"},
	"greatCircleDistance": {"km": 5540.7}
}]`

func TestAeroDataBoxGetFlightData(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-magicapi-key")
		w.Write([]byte(adbPayload))
	}))
	defer server.Close()

	p := NewAeroDataBox(server.URL, "secret", time.Second, logger.NewNopLogger())
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	snapshot, err := p.GetFlightData(context.Background(), "BA", "176", date)

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "/flights/Number/BA176/2026-05-01", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "JFK", snapshot.DepartureAirport)
	assert.Equal(t, "LHR", snapshot.ArrivalAirport)
	assert.Equal(t, "US", snapshot.DepartureCountry)
	assert.Equal(t, entity.StatusBoarding, snapshot.Status)
	assert.Equal(t, "B12", snapshot.DepartureGate)
	assert.Equal(t, "5", snapshot.ArrivalTerminal)
	assert.Equal(t, 5541, snapshot.Distance)
	assert.Equal(t, "Boeing 777-200", snapshot.AircraftType)
	require.NotNil(t, snapshot.ActualStartDatetime)
	assert.Equal(t, "18:45", snapshot.ActualStartDatetime.Format("15:04"))
	assert.Nil(t, snapshot.ActualEndDatetime)
	assert.Nil(t, snapshot.Extra)
}

func TestAeroDataBoxCodeshare(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(adbPayload))
	}))
	defer server.Close()

	p := NewAeroDataBox(server.URL, "secret", time.Second, logger.NewNopLogger())

	// Marketing carrier differs from the operating one in the payload.
	snapshot, err := p.GetFlightData(context.Background(), "AA", "6136", time.Now())

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	require.NotNil(t, snapshot.Extra)
	assert.Equal(t, "BA", snapshot.Extra["carrier"])
	assert.Equal(t, "British Airways", snapshot.Extra["carrierName"])
	assert.Equal(t, "176", snapshot.Extra["carrierFlightNumber"])
}

func TestAeroDataBoxFailsSoft(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"empty payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("[]"))
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			p := NewAeroDataBox(server.URL, "secret", time.Second, logger.NewNopLogger())
			snapshot, err := p.GetFlightData(context.Background(), "BA", "176", time.Now())

			assert.NoError(t, err)
			assert.Nil(t, snapshot)
		})
	}
}

func TestAeroDataBoxUnknownStatus(t *testing.T) {
	payload := `[{"number": "BA 176", "status": "SomethingNew",
		"departure": {"airport": {"iata": "JFK"}, "scheduledTime": {"local": "2026-05-01 18:30-04:00"}},
		"arrival": {"airport": {"iata": "LHR"}, "scheduledTime": {"local": "2026-05-02 06:30+01:00"}},
		"airline": {"iata": "BA"}}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	p := NewAeroDataBox(server.URL, "secret", time.Second, logger.NewNopLogger())
	snapshot, err := p.GetFlightData(context.Background(), "BA", "176", time.Now())

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, entity.StatusUnknown, snapshot.Status)
}
