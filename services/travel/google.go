package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"roamly/models"
	"roamly/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Transit coverage in the Distance Matrix data is sparse, so transit
// estimates are derived from driving time with a safety margin.
const transitScale = 1.5

// distanceMatrixResponse mirrors the fields we read from the Google
// Distance Matrix API response.
type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// GoogleEstimator queries the Google Distance Matrix API for travel
// times between appointment addresses. Calls are bounded by the HTTP
// client timeout and throttled by the limiter so a burst of slot
// computations cannot overwhelm the provider.
type GoogleEstimator struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

// NewGoogleEstimator constructs an estimator with the given API key,
// request timeout and calls-per-second bound.
func NewGoogleEstimator(apiKey string, timeout time.Duration, callsPerSecond int) *GoogleEstimator {
	if callsPerSecond <= 0 {
		callsPerSecond = 10
	}
	return &GoogleEstimator{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(callsPerSecond)), callsPerSecond),
		Logger:  utils.GetLogger(),
	}
}

// Estimate returns the travel time between origin and destination for
// the given mode. Identical addresses short-circuit to a zero estimate
// without touching the network. Any provider failure is returned as an
// EstimateError estimate, never as a hard error.
func (g *GoogleEstimator) Estimate(ctx context.Context, origin, destination string, mode models.TransportationMode) models.TravelEstimate {
	if origin == destination {
		return models.TravelEstimate{Status: models.EstimateOK}
	}

	apiMode := mode
	scale := 1.0
	if mode == models.ModeTransit {
		apiMode = models.ModeDriving
		scale = transitScale
	}

	if g.Limiter != nil {
		if err := g.Limiter.Wait(ctx); err != nil {
			return g.failed(origin, destination, NewEstimationError("rateLimit", err.Error()))
		}
	}

	reqURL := fmt.Sprintf(
		"%s/maps/api/distancematrix/json?origins=%s&destinations=%s&mode=%s&key=%s",
		g.BaseURL, url.QueryEscape(origin), url.QueryEscape(destination), apiMode, g.APIKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return g.failed(origin, destination, NewEstimationError("request", err.Error()))
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return g.failed(origin, destination, NewEstimationError("transport", err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return g.failed(origin, destination, NewEstimationError("httpStatus", fmt.Sprintf("provider returned status %d", resp.StatusCode)))
	}

	var matrix distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
		return g.failed(origin, destination, NewEstimationError("decode", err.Error()))
	}

	if matrix.Status != "OK" || len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return g.failed(origin, destination, NewEstimationError("providerStatus", fmt.Sprintf("provider status %q", matrix.Status)))
	}
	element := matrix.Rows[0].Elements[0]
	if element.Status != "OK" {
		return g.failed(origin, destination, NewEstimationError("elementStatus", fmt.Sprintf("element status %q", element.Status)))
	}

	minutes := int(math.Ceil(float64(element.Duration.Value) * scale / 60.0))
	return models.TravelEstimate{
		DurationMinutes: minutes,
		DistanceMeters:  element.Distance.Value,
		Status:          models.EstimateOK,
	}
}

func (g *GoogleEstimator) failed(origin, destination string, cause error) models.TravelEstimate {
	if g.Logger != nil {
		g.Logger.Warn("travel estimate failed, fallback buffer will apply",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.Error(cause))
	}
	return models.TravelEstimate{
		Status:       models.EstimateError,
		ErrorMessage: cause.Error(),
	}
}
