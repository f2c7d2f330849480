package notifybus

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Event operations used for routing and counting.
const (
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpTransfer = "transfer"
	OpOther    = "other"
)

// Operation returns the operation an event describes, taken from its first word.
func Operation(event string) string {
	fields := strings.Fields(event)
	if len(fields) == 0 {
		return OpOther
	}

	switch op := strings.ToLower(fields[0]); op {
	case OpDeposit, OpWithdraw, OpTransfer:
		return op
	}

	return OpOther
}

// LogSubscriber writes every event to the logger.
type LogSubscriber struct {
	logger zerolog.Logger
}

// NewLogSubscriber returns a subscriber logging to l.
func NewLogSubscriber(l zerolog.Logger) *LogSubscriber {
	return &LogSubscriber{logger: l}
}

// Notify implements Subscriber.
func (s *LogSubscriber) Notify(_ context.Context, event string) error {
	s.logger.Info().Str("observer", "logger").Msg(event)
	return nil
}

// EmailSubscriber simulates sending an email per event.
type EmailSubscriber struct {
	logger zerolog.Logger

	mu   sync.Mutex
	sent int
}

// NewEmailSubscriber returns a simulated email sender logging to l.
func NewEmailSubscriber(l zerolog.Logger) *EmailSubscriber {
	return &EmailSubscriber{logger: l}
}

// Notify implements Subscriber.
func (s *EmailSubscriber) Notify(_ context.Context, event string) error {
	s.mu.Lock()
	s.sent++
	s.mu.Unlock()

	s.logger.Info().Str("observer", "email").Msgf("Email sent for event: %s", event)

	return nil
}

// Sent returns the number of simulated emails.
func (s *EmailSubscriber) Sent() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sent
}

// AnalyticsSubscriber counts events per operation.
type AnalyticsSubscriber struct {
	logger zerolog.Logger

	mu     sync.Mutex
	counts map[string]int64
}

// NewAnalyticsSubscriber returns an empty analytics recorder logging to l.
func NewAnalyticsSubscriber(l zerolog.Logger) *AnalyticsSubscriber {
	return &AnalyticsSubscriber{
		logger: l,
		counts: make(map[string]int64),
	}
}

// Notify implements Subscriber.
func (s *AnalyticsSubscriber) Notify(_ context.Context, event string) error {
	op := Operation(event)

	s.mu.Lock()
	s.counts[op]++
	s.mu.Unlock()

	s.logger.Debug().Str("observer", "analytics").Str("operation", op).Msgf("Event recorded: %s", event)

	return nil
}

// Counts returns a copy of the per-operation counters.
func (s *AnalyticsSubscriber) Counts() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}

	return out
}

// MessageWriter is the part of *kafka.Writer used by KafkaSubscriber.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaSubscriber forwards every event to a kafka topic keyed by operation.
type KafkaSubscriber struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaWriter returns a writer producing to topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaSubscriber returns a subscriber writing through w. Each write is bounded by timeout.
func NewKafkaSubscriber(w MessageWriter, timeout time.Duration) *KafkaSubscriber {
	return &KafkaSubscriber{
		writer:  w,
		timeout: timeout,
	}
}

// Notify implements Subscriber.
func (s *KafkaSubscriber) Notify(ctx context.Context, event string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(Operation(event)),
		Value: []byte(event),
		Time:  time.Now().UTC(),
	})
}
