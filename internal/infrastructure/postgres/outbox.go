package postgres

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var jsonOut = jsoniter.ConfigCompatibleWithStandardLibrary

// insertOutbox stores a lifecycle notification in the same transaction as
// the state change; the outbox worker delivers it to RabbitMQ later.
func insertOutbox(ctx context.Context, tx pgx.Tx, traceID, routingKey string, payload any) error {
	body, err := jsonOut.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO outbox (message_id, trace_id, routing_key, payload, occurred_at, status)
		VALUES ($1, $2, $3, $4, NOW(), 'pending')
	`, uuid.New(), traceID, routingKey, body)
	return err
}
