// Package geocoder resolves street addresses and zipcodes to
// coordinates via a Nominatim-compatible endpoint.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bootcamp_directory_backend/platform/apperr"
	"bootcamp_directory_backend/platform/config"
	"bootcamp_directory_backend/platform/logger"
)

// Geocoder resolves free-form addresses to locations.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}

type Service struct {
	client *http.Client
	cfg    config.GeocoderConfig
	log    *logger.Logger
}

func NewService(cfg config.GeocoderConfig, log *logger.Logger) *Service {
	return &Service{
		client: &http.Client{Timeout: 5 * time.Second},
		cfg:    cfg,
		log:    log,
	}
}

var _ Geocoder = (*Service)(nil)

// Geocode resolves an address to a single location.
func (s *Service) Geocode(ctx context.Context, address string) (Location, error) {
	params := url.Values{}
	params.Add("q", address)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", "1")
	if country := s.cfg.GetGeocoderCountry(); country != "" {
		params.Add("countrycodes", country)
	}
	if key := s.cfg.GetGeocoderAPIKey(); key != "" {
		params.Add("key", key)
	}

	reqURL := fmt.Sprintf("%s?%s", s.cfg.GetGeocoderURL(), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Location{}, err
	}
	req.Header.Set("User-Agent", "BootcampDirectory/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("geocoder request failed", "error", err)
		return Location{}, apperr.Upstream("geocoding service unavailable")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("geocoder upstream error", "status", resp.StatusCode)
		return Location{}, apperr.Upstream(fmt.Sprintf("geocoding service error: %d", resp.StatusCode))
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		s.log.Error("failed to decode geocoder payload", "error", err)
		return Location{}, apperr.Upstream("invalid geocoder response")
	}

	if len(rawResults) == 0 {
		return Location{}, apperr.BadRequest("could not geocode address")
	}

	return buildLocation(rawResults[0])
}

func buildLocation(raw nominatimResponse) (Location, error) {
	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return Location{}, apperr.Upstream("invalid latitude in geocoder response")
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return Location{}, apperr.Upstream("invalid longitude in geocoder response")
	}

	return Location{
		Latitude:         lat,
		Longitude:        lon,
		FormattedAddress: raw.DisplayName,
		Street:           raw.Address.Road,
		City:             pickCity(raw.Address),
		State:            raw.Address.State,
		Zipcode:          raw.Address.Postcode,
		Country:          raw.Address.Country,
	}, nil
}

func pickCity(address nominatimAddress) string {
	if address.City != "" {
		return address.City
	}
	if address.Town != "" {
		return address.Town
	}
	if address.Village != "" {
		return address.Village
	}
	if address.Municipality != "" {
		return address.Municipality
	}
	return address.Hamlet
}
