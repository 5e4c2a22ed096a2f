// Package forecast содержит клиент внешнего сервиса прогноза цен.
//
// Сервис принимает POST /forecast с телом {"area", "months"} и возвращает
// массив помесячных точек {ds, yhat, yhat_lower, yhat_upper}.
// Вызовы защищены автоматическим выключателем (sony/gobreaker).
package forecast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akozadaev/go_neighborhood_recommender/internal/logging"
	"github.com/akozadaev/go_neighborhood_recommender/internal/metrics"
	"github.com/akozadaev/go_neighborhood_recommender/internal/models"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Границы горизонта прогноза в месяцах.
const (
	MinMonths = 1
	MaxMonths = 36

	breakerName = "forecast-service"
	monthLayout = "2006-01"
)

var (
	// ErrAreaNotFound возвращается, если у сервиса нет истории цен для района.
	ErrAreaNotFound = errors.New("no forecast data for area")

	// ErrUnavailable возвращается, когда выключатель разомкнут и запрос не отправлялся.
	ErrUnavailable = errors.New("forecast service unavailable")
)

// ServiceError описывает ответ сервиса с кодом, отличным от 2xx.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("forecast service returned %d: %s", e.StatusCode, e.Message)
}

// Config содержит параметры клиента.
type Config struct {
	URL           string
	Timeout       time.Duration
	DefaultMonths int
}

// Client вызывает сервис прогноза цен.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	cb            *gobreaker.CircuitBreaker[[]models.ForecastPoint]
	defaultMonths int
	now           func() time.Time
}

// NewClient создает клиент сервиса прогноза.
// Выключатель размыкается после пяти ошибок подряд и пробует восстановиться через 30 секунд.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.ForecastPoint](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Отсутствие данных по району и отмена запроса клиентом не говорят о сбое сервиса.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrAreaNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Client{
		baseURL:       strings.TrimRight(cfg.URL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		cb:            cb,
		defaultMonths: cfg.DefaultMonths,
		now:           time.Now,
	}
}

// Months приводит запрошенный горизонт к допустимому диапазону.
// Ноль заменяется значением по умолчанию.
func (c *Client) Months(requested int) int {
	if requested == 0 {
		requested = c.defaultMonths
	}
	if requested < MinMonths {
		return MinMonths
	}
	if requested > MaxMonths {
		return MaxMonths
	}
	return requested
}

// Forecast запрашивает прогноз цен для района.
// Точки до текущего месяца отбрасываются, результат не длиннее горизонта.
func (c *Client) Forecast(ctx context.Context, area string, months int) ([]models.ForecastPoint, error) {
	months = c.Months(months)

	points, err := c.cb.Execute(func() ([]models.ForecastPoint, error) {
		return c.fetch(ctx, area, months)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ForecastRequests.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.ForecastRequests.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.ForecastRequests.WithLabelValues("success").Inc()
	return c.upcoming(points, months), nil
}

func (c *Client) fetch(ctx context.Context, area string, months int) ([]models.ForecastPoint, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(map[string]interface{}{
		"area":   area,
		"months": months,
	}); err != nil {
		return nil, fmt.Errorf("failed to encode forecast request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forecast", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call forecast service: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrAreaNotFound, area)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &ServiceError{StatusCode: res.StatusCode, Message: errorMessage(res.Body)}
	}

	var points []models.ForecastPoint
	if err := json.NewDecoder(res.Body).Decode(&points); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	return points, nil
}

// upcoming оставляет точки начиная с текущего месяца.
func (c *Client) upcoming(points []models.ForecastPoint, months int) []models.ForecastPoint {
	now := c.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]models.ForecastPoint, 0, len(points))
	for _, p := range points {
		month, err := time.Parse(monthLayout, p.Month)
		if err != nil {
			logging.Warn().Str("ds", p.Month).Msg("Skipping forecast point with invalid month")
			continue
		}
		if month.Before(current) {
			continue
		}
		out = append(out, p)
		if len(out) == months {
			break
		}
	}
	return out
}

// errorMessage извлекает поле error из ответа сервиса, иначе возвращает тело целиком.
func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return -1
	}
}
