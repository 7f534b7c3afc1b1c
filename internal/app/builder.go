package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/respec/internal/adapters/archive"
	"go.trai.ch/respec/internal/adapters/cas"
	"go.trai.ch/respec/internal/adapters/config"
	"go.trai.ch/respec/internal/adapters/logger"
	"go.trai.ch/respec/internal/adapters/workspace"
	"go.trai.ch/respec/internal/core/ports"
)

// Components bundles the fully wired application for the CLI entry point.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID, workspace.NodeID, archive.NodeID, cas.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			ws, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}
			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}
			ledger, err := graft.Dep[ports.Ledger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(configLoader, ws, archiver, ledger, log),
				Logger: log,
			}, nil
		},
	})
}
