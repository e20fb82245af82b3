// Package weather aggregates third-party weather data with an LLM-generated
// clothing suggestion for the portfolio's weather widget.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jardelmessias/portfolio-chat/internal/chat"
	"github.com/jardelmessias/portfolio-chat/internal/llm"
	"github.com/jardelmessias/portfolio-chat/internal/metrics"
)

const (
	// Open-Meteo endpoints; both are keyless.
	DefaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
)

// ErrCityNotFound indicates the geocoding lookup produced no match.
var ErrCityNotFound = errors.New("city not found")

const suggestionDirective = `Você é um assistente de clima. Dada a condição do tempo,
sugira em uma frase curta, em Português Brasileiro, que roupa vestir. Apenas a frase.`

// Report is the aggregated weather response.
type Report struct {
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	TemperatureC float64 `json:"temperature_c"`
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	Humidity     int     `json:"humidity"`
	WeatherCode  int     `json:"weather_code"`
	Description  string  `json:"description"`
	Suggestion   string  `json:"suggestion,omitempty"`
}

// Service geocodes a city, fetches current conditions and asks the completion
// provider for a clothing suggestion. A suggestion failure degrades to an
// empty suggestion; it never fails the report.
type Service struct {
	geocodeURL  string
	forecastURL string
	client      *http.Client
	completer   chat.Completer
	metrics     *metrics.Collector
	logger      *slog.Logger
}

// NewService creates the weather service.
func NewService(completer chat.Completer, collector *metrics.Collector, logger *slog.Logger) *Service {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		geocodeURL:  DefaultGeocodeURL,
		forecastURL: DefaultForecastURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		completer:   completer,
		metrics:     collector,
		logger:      logger,
	}
}

// NewServiceWithEndpoints creates a service against custom endpoints (tests).
func NewServiceWithEndpoints(completer chat.Completer, collector *metrics.Collector, logger *slog.Logger, geocodeURL, forecastURL string) *Service {
	s := NewService(completer, collector, logger)
	s.geocodeURL = geocodeURL
	s.forecastURL = forecastURL
	return s
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		Humidity    int     `json:"relative_humidity_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// GetCityWeather resolves a city name to current conditions plus a clothing
// suggestion.
func (s *Service) GetCityWeather(ctx context.Context, city string) (*Report, error) {
	start := time.Now()
	report, err := s.fetch(ctx, city)
	s.metrics.RecordTiming(metrics.OpWeather, time.Since(start))
	if err != nil {
		s.metrics.RecordFailure(metrics.OpWeather)
		return nil, err
	}

	report.Suggestion = s.suggest(ctx, report)
	return report, nil
}

func (s *Service) fetch(ctx context.Context, city string) (*Report, error) {
	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")
	q.Set("language", "pt")

	var geo geocodeResponse
	if err := s.getJSON(ctx, s.geocodeURL+"?"+q.Encode(), &geo); err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	if len(geo.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCityNotFound, city)
	}
	place := geo.Results[0]

	q = url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", place.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", place.Longitude))
	q.Set("current", "temperature_2m,wind_speed_10m,relative_humidity_2m,weather_code")

	var fc forecastResponse
	if err := s.getJSON(ctx, s.forecastURL+"?"+q.Encode(), &fc); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	return &Report{
		City:         place.Name,
		Latitude:     place.Latitude,
		Longitude:    place.Longitude,
		TemperatureC: fc.Current.Temperature,
		WindSpeedKmh: fc.Current.WindSpeed,
		Humidity:     fc.Current.Humidity,
		WeatherCode:  fc.Current.WeatherCode,
		Description:  describeCode(fc.Current.WeatherCode),
	}, nil
}

// suggest asks the completion provider for a one-line clothing suggestion.
// Failures degrade to an empty suggestion.
func (s *Service) suggest(ctx context.Context, r *Report) string {
	if s.completer == nil {
		return ""
	}

	prompt := fmt.Sprintf("Cidade: %s. Condição: %s. Temperatura: %.1f°C. Vento: %.1f km/h. Umidade: %d%%.",
		r.City, r.Description, r.TemperatureC, r.WindSpeedKmh, r.Humidity)

	suggestion, err := s.completer.Complete(ctx, llm.BuildContext(suggestionDirective, nil, prompt))
	if err != nil {
		s.logger.Warn("clothing suggestion failed", "error", err, "city", r.City)
		return ""
	}
	return suggestion
}

func (s *Service) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// describeCode maps WMO weather codes to short PT-BR descriptions.
func describeCode(code int) string {
	switch {
	case code == 0:
		return "céu limpo"
	case code <= 3:
		return "parcialmente nublado"
	case code == 45 || code == 48:
		return "neblina"
	case code >= 51 && code <= 57:
		return "garoa"
	case code >= 61 && code <= 67:
		return "chuva"
	case code >= 71 && code <= 77:
		return "neve"
	case code >= 80 && code <= 82:
		return "pancadas de chuva"
	case code >= 95:
		return "tempestade"
	default:
		return "condição desconhecida"
	}
}
