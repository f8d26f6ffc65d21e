package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

const maintenanceJobID = "maintenance"

func (e *Engine) runMaintenance(ctx context.Context) error {
	if err := e.db.Optimize(ctx); err != nil {
		return fmt.Errorf("failed to optimize database: %w", err)
	}

	stats, err := e.db.GetPreferenceStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read preference stats: %w", err)
	}

	fields := []any{
		"devices", humanize.Comma(stats.Devices),
		"authenticated", humanize.Comma(stats.AuthenticatedDevices),
		"dark", humanize.Comma(stats.DarkDevices),
		"light", humanize.Comma(stats.LightDevices),
	}
	if stats.LastWrite != nil {
		fields = append(fields, "last_write", humanize.Time(*stats.LastWrite))
	}
	log.Info("Database maintenance finished", fields...)

	for _, c := range lo.Compact(e.caches) {
		s := c.CacheStats()
		if s == nil || s.Stats == nil {
			continue
		}
		log.Info("Cache statistics",
			"cache", s.CacheName,
			"hits", s.Hits,
			"misses", s.Miss,
			"set_errors", s.SetError,
		)
	}
	return nil
}
