package handler

import (
	"context"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/pkg/kafka"
)

var json = jsoniter.ConfigFastest

type setTotalCopies func(ctx context.Context, req model.SetInventoryRequest) (model.BookInventory, error)

// Consumer applies inventory-sync messages from the catalog to the local
// copy counts. Messages that fail to apply are left unmarked so the group
// redelivers them.
type Consumer struct {
	setTotalCopiesHandler setTotalCopies
	log                   *zap.Logger
	ready                 chan bool
}

func NewConsumer(setTotalCopiesHandler setTotalCopies, log *zap.Logger) *Consumer {
	return &Consumer{
		setTotalCopiesHandler: setTotalCopiesHandler,
		log:                   log.Named("consumer"),
		ready:                 make(chan bool),
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	close(c.ready)
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *Consumer) Ready() <-chan bool {
	return c.ready
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				c.log.Info("message channel was closed")
				return nil
			}
			var sync kafka.InventorySync
			if err := json.Unmarshal(message.Value, &sync); err != nil {
				c.log.Error("unmarshal inventory sync", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}
			if sync.BookUid == "" || sync.TotalCopies < 0 {
				c.log.Warn("skipping malformed inventory sync",
					zap.String("bookUid", sync.BookUid),
					zap.Int("totalCopies", sync.TotalCopies))
				session.MarkMessage(message, "")
				continue
			}
			inv, err := c.setTotalCopiesHandler(session.Context(), model.SetInventoryRequest{
				BookUid:     sync.BookUid,
				TotalCopies: sync.TotalCopies,
			})
			if err != nil {
				c.log.Error("apply inventory sync", zap.Error(err),
					zap.String("bookUid", sync.BookUid))
				continue
			}
			c.log.Debug("inventory synced",
				zap.String("bookUid", inv.BookUid),
				zap.Int("totalCopies", inv.TotalCopies),
				zap.Int("availableCopies", inv.AvailableCopies))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
