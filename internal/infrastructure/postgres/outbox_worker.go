package postgres

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gorden73/Explore-with-me-sub000/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	outboxBatchSize   = 20
	outboxMaxAttempts = 12
	outboxPollEvery   = 500 * time.Millisecond
)

type outboxRow struct {
	ID         int64
	MessageID  string
	TraceID    string
	RoutingKey string
	Payload    []byte
	Attempt    int
}

// backoff: exponential with jitter, bounded
func nextRetryIn(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	sec := math.Pow(2, float64(attempt))
	if sec < 5 {
		sec = 5
	}
	if sec > 1800 {
		sec = 1800
	}
	d := time.Duration(sec) * time.Second
	j := time.Duration(rand.Int63n(int64(d/5))) - d/10
	return d + j
}

// StartOutboxWorker delivers pending lifecycle notifications to RabbitMQ.
// Rows are claimed with SKIP LOCKED so multiple workers never double-publish.
func (r *Repository) StartOutboxWorker(ctx context.Context, rabbitURL, exchange string) {
	go func() {
		log := logger.Logger.With().Str("component", "outbox_worker").Logger()

		conn, err := amqp.Dial(rabbitURL)
		if err != nil {
			log.Error().Err(err).Msg("failed to connect rabbitmq for outbox publishing")
			return
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			log.Error().Err(err).Msg("failed to open rabbitmq channel for outbox publishing")
			return
		}
		defer ch.Close()

		if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			log.Error().Err(err).Str("exchange", exchange).Msg("exchange declare failed")
			return
		}

		ticker := time.NewTicker(outboxPollEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stopped")
				return
			case <-ticker.C:
				if err := r.publishOutboxBatch(ctx, ch, exchange); err != nil {
					log.Warn().Err(err).Msg("outbox batch failed")
				}
			}
		}
	}()
}

func (r *Repository) publishOutboxBatch(ctx context.Context, ch *amqp.Channel, exchange string) error {
	var batch []outboxRow

	// Claim inside a tx and push next_retry_at forward so the rows read as
	// in-flight once the claim commits; the actual network publish happens
	// outside the tx to keep row locks short.
	err := r.runTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, message_id, trace_id, routing_key, payload, attempt
			FROM outbox
			WHERE status = 'pending' AND next_retry_at <= NOW()
			ORDER BY next_retry_at ASC, occurred_at ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		`, outboxBatchSize)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var m outboxRow
			if err := rows.Scan(&m.ID, &m.MessageID, &m.TraceID, &m.RoutingKey, &m.Payload, &m.Attempt); err != nil {
				return err
			}
			batch = append(batch, m)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		inFlightUntil := time.Now().Add(15 * time.Second)
		for _, m := range batch {
			if _, err := tx.Exec(ctx,
				`UPDATE outbox SET next_retry_at = $2 WHERE id = $1`, m.ID, inFlightUntil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil || len(batch) == 0 {
		return err
	}

	log := logger.Logger.With().Str("component", "outbox_worker").Logger()

	for _, m := range batch {
		pub := amqp.Publishing{
			ContentType:   "application/json",
			Body:          m.Payload,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now().UTC(),
			MessageId:     m.MessageID,
			CorrelationId: m.TraceID,
			AppId:         "ewm-main-service",
		}

		if err := ch.PublishWithContext(ctx, exchange, m.RoutingKey, false, false, pub); err != nil {
			r.failOutbox(ctx, m, fmt.Sprintf("publish error: %v", err))
			continue
		}

		_, _ = r.pool.Exec(ctx, `
			UPDATE outbox SET status = 'sent', last_error = NULL WHERE id = $1
		`, m.ID)

		log.Info().
			Int64("outbox_id", m.ID).
			Str("routing_key", m.RoutingKey).
			Msg("published")
	}

	return nil
}

func (r *Repository) failOutbox(ctx context.Context, m outboxRow, reason string) {
	attempt := m.Attempt + 1
	status := "pending"
	if attempt >= outboxMaxAttempts {
		status = "dead"
	}
	_, _ = r.pool.Exec(ctx, `
		UPDATE outbox
		SET attempt = $2, status = $3, last_error = $4, next_retry_at = NOW() + make_interval(secs => $5)
		WHERE id = $1
	`, m.ID, attempt, status, reason, nextRetryIn(attempt).Seconds())

	logger.Logger.Warn().
		Int64("outbox_id", m.ID).
		Str("routing_key", m.RoutingKey).
		Int("attempt", attempt).
		Str("reason", reason).
		Msg("outbox delivery failed")
}
