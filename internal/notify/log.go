package notify

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikolayk812/cartrecon/internal/domain"
)

// LogSink writes every event as a structured log line. Rejected commands are
// logged at warn level.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log}
}

func (s *LogSink) Publish(e domain.Event) {
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.Int("cart_lines", e.CartLines),
	}
	if e.ProductID != 0 {
		fields = append(fields,
			zap.Int64("product_id", int64(e.ProductID)),
			zap.Int("available", e.Available),
		)
	}
	if e.Quantity != 0 {
		fields = append(fields, zap.Int("quantity", e.Quantity))
	}
	if e.ItemID != uuid.Nil {
		fields = append(fields, zap.Stringer("item_id", e.ItemID))
	}
	if e.CartID != uuid.Nil {
		fields = append(fields, zap.Stringer("cart_id", e.CartID))
	}

	if e.Failed() {
		s.log.Warn("cart command rejected", append(fields, zap.Error(e.Err))...)
		return
	}
	s.log.Info("cart event", fields...)
}
