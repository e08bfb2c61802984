package ports

import (
	"context"

	"github.com/coursematch/recoengine/modules/config/model"
)

// ConfigRepository loads every configuration table in a small, constant
// number of bulk queries. It never accepts per-key lookups — the engine
// always works off a fully materialized Snapshot.
type ConfigRepository interface {
	Load(ctx context.Context) (*model.Snapshot, error)
}
