package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/logger"
)

type testConfig struct {
	url string
}

func (c testConfig) GetGeocoderURL() string     { return c.url }
func (c testConfig) GetGeocoderAPIKey() string  { return "" }
func (c testConfig) GetGeocoderCountry() string { return "us" }

func TestGeocode_ParsesFirstResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("countrycodes"); got != "us" {
			t.Errorf("countrycodes = %q, want us", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"display_name": "233 Bay State Rd, Boston, MA 02215",
			"lat": "42.3505",
			"lon": "-71.1054",
			"address": {
				"road": "Bay State Rd",
				"postcode": "02215",
				"city": "Boston",
				"state": "Massachusetts",
				"country": "United States"
			}
		}]`))
	}))
	defer srv.Close()

	svc := NewService(testConfig{url: srv.URL}, logger.New("development"))
	loc, err := svc.Geocode(context.Background(), "233 Bay State Rd Boston MA 02215")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}

	if loc.Latitude != 42.3505 || loc.Longitude != -71.1054 {
		t.Fatalf("coordinates = %v,%v", loc.Latitude, loc.Longitude)
	}
	if loc.City != "Boston" || loc.Zipcode != "02215" {
		t.Fatalf("address parse: %+v", loc)
	}
}

func TestGeocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := NewService(testConfig{url: srv.URL}, logger.New("development"))
	_, err := svc.Geocode(context.Background(), "nowhere at all")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestGeocode_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewService(testConfig{url: srv.URL}, logger.New("development"))
	_, err := svc.Geocode(context.Background(), "233 Bay State Rd")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGeocode_TownFallsBackWhenCityMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat": "1", "lon": "2", "address": {"road": "Main St", "town": "Smallville"}}]`))
	}))
	defer srv.Close()

	svc := NewService(testConfig{url: srv.URL}, logger.New("development"))
	loc, err := svc.Geocode(context.Background(), "Main St Smallville")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if loc.City != "Smallville" {
		t.Fatalf("city = %q, want Smallville", loc.City)
	}
}
