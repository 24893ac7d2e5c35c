package statistics

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlavaShagalov/user-list/internal/requests/repository"
)

type saverFunc func(ctx context.Context, req repository.Request) error

func (f saverFunc) SaveRequest(ctx context.Context, req repository.Request) error {
	return f(ctx, req)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNoTransport(t *testing.T) {
	stat := NewKafkaStatistics(nil, nil, discard(), nil)

	assert.ErrorIs(t, stat.Push(context.Background(), ListRequest{}), ErrNoWriter)
	assert.ErrorIs(t, stat.SaveRequest(context.Background()), ErrNoReader)
}

func TestStore(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	msg, err := NewMessage(ListRequest{
		Method:      "POST",
		URL:         "/api/v1/users/list",
		Role:        "editor",
		OrderBy:     "username",
		Order:       "DESC",
		Page:        "3",
		RequestedAt: at.UnixMilli(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, msg.Key)

	var saved repository.Request
	stat := NewKafkaStatistics(nil, nil, discard(), saverFunc(func(_ context.Context, req repository.Request) error {
		saved = req
		return nil
	}))

	require.NoError(t, stat.Store(context.Background(), msg))
	assert.Equal(t, repository.Request{
		RequestID:   string(msg.Key),
		Method:      "POST",
		URL:         "/api/v1/users/list",
		Role:        "editor",
		OrderBy:     "username",
		Direction:   "DESC",
		Page:        "3",
		RequestedAt: at,
	}, saved)
}
