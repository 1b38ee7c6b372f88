package notify

import (
	"github.com/nikolayk812/cartrecon/internal/domain"
	"github.com/nikolayk812/cartrecon/internal/port"
)

// Fanout delivers every event to each sink in order.
type Fanout []port.EventSink

func (f Fanout) Publish(e domain.Event) {
	for _, sink := range f {
		if sink != nil {
			sink.Publish(e)
		}
	}
}
