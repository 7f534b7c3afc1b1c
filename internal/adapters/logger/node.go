package logger

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/respec/internal/core/ports"
)

// NodeID identifies the logger Graft node. Every other adapter depends on
// it, so it carries no dependencies of its own.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})
}
