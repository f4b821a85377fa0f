package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/multiweb/multiweb-backend/internal/projects"
)

// Purger hard-deletes projects that have sat soft-deleted past the retention
// window. Runs nightly.
type Purger struct {
	projects  *projects.Repo
	retention time.Duration
	logger    zerolog.Logger
}

func NewPurger(projectRepo *projects.Repo, retention time.Duration, logger zerolog.Logger) *Purger {
	return &Purger{projects: projectRepo, retention: retention, logger: logger}
}

// Start schedules the nightly run (12:00 AM) and returns the scheduler so
// the caller can stop it on shutdown.
func (p *Purger) Start() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc("0 0 0 * * *", p.run); err != nil {
		p.logger.Error().Err(err).Msg("failed to schedule purge job")
		return c
	}

	p.logger.Info().Dur("retention", p.retention).Msg("purge scheduler started")
	c.Start()
	return c
}

func (p *Purger) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-p.retention)
	n, err := p.projects.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		p.logger.Error().Err(err).Msg("purge job failed")
		return
	}
	if n > 0 {
		p.logger.Info().Int64("purged", n).Msg("purged soft-deleted projects")
	}
}
