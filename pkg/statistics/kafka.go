package statistics

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/SlavaShagalov/user-list/internal/requests/repository"
)

type BacklogError string

func (e BacklogError) Error() string {
	return string(e)
}

const (
	ErrNoWriter BacklogError = "statistics has no writer"
	ErrNoReader BacklogError = "statistics has no reader"
)

type Saver interface {
	SaveRequest(ctx context.Context, req repository.Request) error
}

type KafkaStatistics struct {
	reader *kafka.Reader
	writer *kafka.Writer
	logger *slog.Logger
	repo   Saver
}

func NewKafkaStatistics(reader *kafka.Reader, writer *kafka.Writer, logger *slog.Logger, repo Saver) *KafkaStatistics {
	return &KafkaStatistics{
		reader: reader,
		writer: writer,
		logger: logger,
		repo:   repo,
	}
}

// ListRequest is the event published for every list request the server accepts.
type ListRequest struct {
	Method      string
	URL         string
	Role        string
	OrderBy     string
	Order       string
	Page        string
	RequestedAt int64
}

func (backlog *KafkaStatistics) Push(ctx context.Context, req ListRequest) error {
	if backlog.writer == nil {
		return ErrNoWriter
	}

	msg, err := NewMessage(req)
	if err != nil {
		return err
	}

	backlog.logger.Debug("write message to kafka...",
		slog.String("topic", backlog.writer.Topic),
		slog.String("key", string(msg.Key)),
	)

	err = backlog.writer.WriteMessages(ctx, msg)
	if errors.Is(err, kafka.UnknownTopicOrPartition) {
		time.Sleep(5 * time.Second) // Wait for auto creating topic
		err = backlog.writer.WriteMessages(ctx, msg)
	}

	return err
}

// NewMessage encodes req under a fresh request id.
func NewMessage(req ListRequest) (kafka.Message, error) {
	payload, err := kafka.Marshal(req)
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, "marshal list request")
	}

	return kafka.Message{
		Key:   []byte(uuid.New().String()),
		Value: payload,
	}, nil
}

func (backlog *KafkaStatistics) SaveRequest(ctx context.Context) (err error) {
	if backlog.reader == nil {
		return ErrNoReader
	}

	msg, err := backlog.reader.ReadMessage(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			err = multierror.Append(err, backlog.reader.SetOffset(msg.Offset))
		}
	}()

	backlog.logger.Debug("read message from kafka",
		slog.String("topic", msg.Topic),
		slog.Int("partition", msg.Partition),
		slog.Int64("offset", msg.Offset),
		slog.String("key", string(msg.Key)),
	)

	return backlog.Store(ctx, msg)
}

// Store decodes msg and saves it, keyed by the message key.
func (backlog *KafkaStatistics) Store(ctx context.Context, msg kafka.Message) error {
	var req ListRequest
	err := kafka.Unmarshal(msg.Value, &req)
	if err != nil {
		return errors.Wrap(err, "unmarshal list request")
	}

	requestID := string(msg.Key)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	return backlog.repo.SaveRequest(ctx, repository.Request{
		RequestID:   requestID,
		Method:      req.Method,
		URL:         req.URL,
		Role:        req.Role,
		OrderBy:     req.OrderBy,
		Direction:   req.Order,
		Page:        req.Page,
		RequestedAt: time.UnixMilli(req.RequestedAt).UTC(),
	})
}
