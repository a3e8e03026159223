package spool

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/veloboard/flapship/internal/ports"
)

// Sweeper deletes processed (".sent") spool files once they age past the
// retention window. Unprocessed messages are never touched.
type Sweeper struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	logger    ports.Logger
}

// NewSweeper creates a sweeper for the given spool directory.
func NewSweeper(dir string, retention, interval time.Duration, logger ports.Logger) *Sweeper {
	return &Sweeper{
		dir:       dir,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// Run sweeps once immediately and then on every interval tick until the
// context is canceled.
func (s *Sweeper) Run(ctx context.Context) {
	s.Sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes expired .sent files and returns how many were deleted.
func (s *Sweeper) Sweep() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("spool sweep failed", ports.Err(err))
		return 0
	}

	cutoff := time.Now().Add(-s.retention)
	removed := 0

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), sentSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to remove spool file", ports.String("file", e.Name()), ports.Err(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("swept spool", ports.Int("removed", removed))
	}
	return removed
}
