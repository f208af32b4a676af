// Package consumer runs the stock worker: it tails the order topic and
// applies stock movements after the fact. Reservation is asynchronous,
// checkout never blocks on it.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/sufiansar/GloryShoppingBackend/internal/notify"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type StockRepository interface {
	ReserveStock(ctx context.Context, id int64, qty int) (bool, error)
	ReleaseStock(ctx context.Context, id int64, qty int) error
}

// StockCache drops cached variant rows after a stock movement so reads
// never serve a stale stock figure for the full TTL.
type StockCache interface {
	InvalidateVariant(ctx context.Context, id int64) error
}

type StockConsumer struct {
	reader *kafka.Reader
	stock  StockRepository
	cache  StockCache
}

func NewStockConsumer(reader *kafka.Reader, stock StockRepository, cache StockCache) *StockConsumer {
	return &StockConsumer{reader: reader, stock: stock, cache: cache}
}

// Run blocks until the context is cancelled, processing one message at a
// time. Messages that fail to decode are logged and skipped so a bad
// payload can never wedge the partition.
func (c *StockConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		c.handle(ctx, msg)
	}
}

func (c *StockConsumer) handle(ctx context.Context, msg kafka.Message) {
	// Keys look like "order.<event>.<id>"; route on the key before
	// decoding the payload.
	parts := strings.Split(string(msg.Key), ".")
	if len(parts) != 3 || parts[0] != "order" {
		logger.Warn().Str("key", string(msg.Key)).Msg("skipping message with unexpected key")
		return
	}

	var event notify.OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error().Err(err).Str("key", string(msg.Key)).Msg("failed to decode order event")
		return
	}

	switch parts[1] {
	case notify.EventCreated:
		c.reserve(ctx, event)
	case notify.EventCancelled:
		c.release(ctx, event)
	}
}

func (c *StockConsumer) reserve(ctx context.Context, event notify.OrderEvent) {
	for _, item := range event.Items {
		ok, err := c.stock.ReserveStock(ctx, item.VariantID, item.Quantity)
		if err != nil {
			logger.Error().Err(err).
				Int64("order_id", event.OrderID).
				Int64("variant_id", item.VariantID).
				Msg("failed to reserve stock")
			continue
		}
		if !ok {
			logger.Warn().
				Int64("order_id", event.OrderID).
				Int64("variant_id", item.VariantID).
				Int("quantity", item.Quantity).
				Msg("insufficient stock for reservation")
			continue
		}
		c.invalidate(ctx, item.VariantID)
		logger.Info().
			Int64("order_id", event.OrderID).
			Int64("variant_id", item.VariantID).
			Int("quantity", item.Quantity).
			Msg("stock reserved")
	}
}

func (c *StockConsumer) release(ctx context.Context, event notify.OrderEvent) {
	for _, item := range event.Items {
		if err := c.stock.ReleaseStock(ctx, item.VariantID, item.Quantity); err != nil {
			logger.Error().Err(err).
				Int64("order_id", event.OrderID).
				Int64("variant_id", item.VariantID).
				Msg("failed to release stock")
			continue
		}
		c.invalidate(ctx, item.VariantID)
		logger.Info().
			Int64("order_id", event.OrderID).
			Int64("variant_id", item.VariantID).
			Int("quantity", item.Quantity).
			Msg("stock released")
	}
}

func (c *StockConsumer) invalidate(ctx context.Context, variantID int64) {
	if c.cache == nil {
		return
	}
	if err := c.cache.InvalidateVariant(ctx, variantID); err != nil {
		logger.Warn().Err(err).Int64("variant_id", variantID).Msg("failed to invalidate cached variant")
	}
}
