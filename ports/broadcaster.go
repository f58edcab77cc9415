package ports

import (
	"context"
	"encoding/json"

	"github.com/adcpm/sc2/core"
)

// Broadcaster submits an authorized operation batch to the chain. The posting
// key is the process-level broadcaster secret; signing happens on the other
// side of this boundary. The returned payload is the broadcaster's raw result.
type Broadcaster interface {
	Broadcast(ctx context.Context, operations []core.Operation, postingKey string) (json.RawMessage, error)
}
