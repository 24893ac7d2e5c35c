package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker/v2"

	"github.com/SlavaShagalov/user-list/internal/models"
	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
)

type Transport interface {
	Fetch(ctx context.Context, values url.Values) (models.ResultPage, error)
}

// HTTPTransport posts the form to the JSON endpoint. After maxFails
// consecutive failures the breaker opens and calls fail fast until it
// half-opens again. Calls are never retried.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[models.ResultPage]
	logger   *slog.Logger
}

func NewHTTPTransport(endpoint string, client *http.Client, maxFails uint32, logger *slog.Logger) *HTTPTransport {
	if maxFails == 0 {
		maxFails = 1
	}

	settings := gobreaker.Settings{
		Name:    "user-list",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &HTTPTransport{
		endpoint: endpoint,
		client:   client,
		breaker:  gobreaker.NewCircuitBreaker[models.ResultPage](settings),
		logger:   logger,
	}
}

func (t *HTTPTransport) Fetch(ctx context.Context, values url.Values) (models.ResultPage, error) {
	return t.breaker.Execute(func() (models.ResultPage, error) {
		return t.fetch(ctx, values)
	})
}

func (t *HTTPTransport) fetch(ctx context.Context, values url.Values) (models.ResultPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return models.ResultPage{}, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	t.logger.Debug("fetch users", slog.String("endpoint", t.endpoint), slog.String("form", values.Encode()))

	resp, err := t.client.Do(req)
	if err != nil {
		return models.ResultPage{}, errors.Wrap(err, "post list request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return models.ResultPage{}, errors.Wrap(pkgErrors.ErrBadResponse, fmt.Sprintf("status %d: %s", resp.StatusCode, body.Message))
	}

	var page models.ResultPage
	if err = json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return models.ResultPage{}, errors.Wrap(pkgErrors.ErrBadResponse, err.Error())
	}
	if page.Users == nil {
		page.Users = []models.Record{}
	}

	return page, nil
}
