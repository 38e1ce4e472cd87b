// Folio - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// TopicPoison receives messages whose handlers kept failing after retries.
const TopicPoison = "folio.ratings.poison"

// Config holds event bus settings.
type Config struct {
	// BufferSize is the per-subscriber output channel buffer.
	BufferSize int64

	// CloseTimeout bounds how long the router waits for handlers on shutdown.
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// DefaultConfig returns the default bus settings.
func DefaultConfig() Config {
	return Config{
		BufferSize:           256,
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 50 * time.Millisecond,
		RetryMaxInterval:     time.Second,
	}
}

// HandlerFunc consumes one RatingAdded event. Returning an error triggers
// a retry; after the last retry the message goes to TopicPoison.
type HandlerFunc func(ctx context.Context, event *RatingAdded) error

type namedHandler struct {
	name string
	fn   HandlerFunc
}

// Bus publishes rating events and dispatches them to handlers through a
// Watermill router. It implements recommend.RatingListener.
type Bus struct {
	cfg      Config
	pubsub   *gochannel.GoChannel
	wmLogger watermill.LoggerAdapter
	logger   zerolog.Logger

	mu       sync.Mutex
	handlers []namedHandler

	started   chan struct{}
	startOnce sync.Once
}

// NewBus creates a bus over an in-memory Go channel pub/sub.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBus(cfg Config, logger zerolog.Logger) *Bus {
	defaults := DefaultConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = defaults.CloseTimeout
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = defaults.RetryInitialInterval
	}
	if cfg.RetryMaxInterval <= 0 {
		cfg.RetryMaxInterval = defaults.RetryMaxInterval
	}

	l := logger.With().Str("component", "events").Logger()
	wmLogger := watermill.NewSlogLogger(logging.NewSlogLogger("watermill"))

	return &Bus{
		cfg: cfg,
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, wmLogger),
		wmLogger: wmLogger,
		logger:   l,
		started:  make(chan struct{}),
	}
}

// Started is closed once a router has subscribed its handlers for the
// first time. Messages published before that are dropped.
func (b *Bus) Started() <-chan struct{} {
	return b.started
}

// Handle registers a handler. Handlers registered after Run starts take
// effect on the next Run.
func (b *Bus) Handle(name string, fn HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, namedHandler{name: name, fn: fn})
}

// Publish sends event on TopicRatingAdded. The correlation id from ctx is
// carried in message metadata; a new one is generated when ctx has none.
func (b *Bus) Publish(ctx context.Context, event *RatingAdded) error {
	payload, err := Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, payload)
	correlationID := logging.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = logging.GenerateCorrelationID()
	}
	middleware.SetCorrelationID(correlationID, msg)

	if err := b.pubsub.Publish(TopicRatingAdded, msg); err != nil {
		return fmt.Errorf("publish %s: %w", TopicRatingAdded, err)
	}
	metrics.RecordEventPublished(TopicRatingAdded)
	return nil
}

// RatingAdded publishes an accepted rating. Publish failures are logged
// and never reach the rating writer.
func (b *Bus) RatingAdded(ctx context.Context, userID string, bookID int, value float64) {
	event := NewRatingAdded(userID, bookID, value)
	event.RequestID = logging.RequestIDFromContext(ctx)

	if err := b.Publish(ctx, event); err != nil {
		b.logger.Warn().Err(err).
			Str("user_id", userID).
			Int("book_id", bookID).
			Msg("Failed to publish rating event")
	}
}

// Run subscribes every registered handler and dispatches messages until
// ctx is canceled. Each call builds a fresh router, so a supervisor may
// call Run again after a failure.
func (b *Bus) Run(ctx context.Context) error {
	router, err := b.newRouter()
	if err != nil {
		return err
	}

	go func() {
		select {
		case <-router.Running():
			b.startOnce.Do(func() { close(b.started) })
		case <-ctx.Done():
		}
	}()

	b.logger.Info().Int("handlers", len(router.Handlers())).Msg("Event router starting")
	if err := router.Run(ctx); err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	b.logger.Info().Msg("Event router stopped")
	return nil
}

func (b *Bus) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: b.cfg.CloseTimeout}, b.wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	poisonQueue, err := middleware.PoisonQueue(b.pubsub, TopicPoison)
	if err != nil {
		return nil, fmt.Errorf("create poison queue middleware: %w", err)
	}
	retry := middleware.Retry{
		MaxRetries:      b.cfg.RetryMaxRetries,
		InitialInterval: b.cfg.RetryInitialInterval,
		MaxInterval:     b.cfg.RetryMaxInterval,
		Multiplier:      2.0,
		Logger:          b.wmLogger,
	}
	// Outermost first.
	router.AddMiddleware(poisonQueue, retry.Middleware, middleware.Recoverer)

	b.mu.Lock()
	handlers := append([]namedHandler(nil), b.handlers...)
	b.mu.Unlock()
	if len(handlers) == 0 {
		return nil, errors.New("no event handlers registered")
	}

	for _, h := range handlers {
		router.AddConsumerHandler(h.name, TopicRatingAdded, sharedSubscriber{b.pubsub}, b.consume(h))
	}
	return router, nil
}

// sharedSubscriber stops a closing router from closing the bus pub/sub,
// which outlives any one router.
type sharedSubscriber struct {
	message.Subscriber
}

func (sharedSubscriber) Close() error { return nil }

// consume adapts a HandlerFunc to Watermill. Undecodable messages are
// acknowledged and dropped since retrying cannot fix them.
func (b *Bus) consume(h namedHandler) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		event, err := Unmarshal(msg.Payload)
		if err != nil {
			metrics.RecordEventConsumed(TopicRatingAdded, "invalid")
			b.logger.Warn().Err(err).
				Str("handler", h.name).
				Str("message_uuid", msg.UUID).
				Msg("Dropping invalid rating event")
			return nil
		}

		ctx := msg.Context()
		if id := middleware.MessageCorrelationID(msg); id != "" {
			ctx = logging.ContextWithCorrelationID(ctx, id)
		}
		if event.RequestID != "" {
			ctx = logging.ContextWithRequestID(ctx, event.RequestID)
		}

		if err := h.fn(ctx, event); err != nil {
			metrics.RecordEventConsumed(TopicRatingAdded, "error")
			return fmt.Errorf("%s: %w", h.name, err)
		}
		metrics.RecordEventConsumed(TopicRatingAdded, "ok")
		return nil
	}
}

// Close shuts down the pub/sub. Publishing afterwards fails.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// String implements fmt.Stringer; suture uses it in log messages.
func (b *Bus) String() string {
	return "event-bus"
}
