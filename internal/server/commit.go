package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/playperu/alfred0/internal/catalog"
	"github.com/playperu/alfred0/internal/configstore"
	"github.com/playperu/alfred0/internal/metrics"
	"github.com/playperu/alfred0/internal/tokens"
)

// committer runs a mutation against the live configuration, persists the
// result and announces the change. If persisting fails the mutation is
// undone, so memory never holds a change the client was told had failed.
type committer struct {
	catalog *catalog.Catalog
	tokens  *tokens.Calculator
	store   *configstore.Store
	broker  *Broker
	logger  *slog.Logger

	// mu spans mutate+save so a rollback cannot undo a concurrent request.
	mu sync.Mutex
}

// apply runs mutate and saves. An error from mutate is returned untouched
// and nothing is saved. A nil mutate just saves the current state.
func (c *committer) apply(ctx context.Context, area string, mutate func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prevCatalog := c.catalog.Snapshot()
	prevRules, prevPreset := c.tokens.Rules(), c.tokens.PresetID()

	if mutate != nil {
		if err := mutate(); err != nil {
			return err
		}
	}

	if err := c.store.Save(ctx); err != nil {
		metrics.ConfigSaveFailed()
		c.logger.Error("saving config, rolling back", "area", area, "error", err)
		if rerr := c.catalog.Replace(prevCatalog); rerr != nil {
			c.logger.Error("restoring catalog", "error", rerr)
		}
		c.tokens.Restore(prevRules, prevPreset)
		return err
	}
	c.announce(area)
	return nil
}

// exclusive runs fn, which persists on its own, without interleaving with
// apply, then announces the change.
func (c *committer) exclusive(area string, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	c.announce(area)
	return nil
}

// announce records and broadcasts a change that is already persisted.
func (c *committer) announce(area string) {
	metrics.ConfigChanged(area)
	c.broker.Publish(ChangeEvent{Type: area})
}
