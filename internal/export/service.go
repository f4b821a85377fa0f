package export

import (
	"bytes"
	"context"

	"github.com/rs/zerolog"

	"github.com/multiweb/multiweb-backend/internal/export/generator"
)

// Service orchestrates one export: loader → generator → streamer, in
// sequence, no retries. The caller receives either a complete archive or an
// error; no partial artifact ever leaves this package.
type Service struct {
	loader *Loader
	logger zerolog.Logger
}

func NewService(loader *Loader, logger zerolog.Logger) *Service {
	return &Service{loader: loader, logger: logger}
}

// ExportProject builds the archive for the project identified by slug on
// behalf of userID. The suggested filename is the project slug with the
// archive extension.
func (s *Service) ExportProject(ctx context.Context, slug, userID string) ([]byte, string, error) {
	snap, err := s.loader.Load(ctx, slug, userID)
	if err != nil {
		return nil, "", err
	}

	files, err := generator.Files(snap)
	if err != nil {
		return nil, "", err
	}

	// The generator's finite file sequence feeds the streamer through a
	// channel: single producer, single consumer, non-restartable.
	entries := make(chan generator.Entry)
	go func() {
		defer close(entries)
		for _, f := range files {
			select {
			case entries <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	var buf bytes.Buffer
	if err := StreamZip(ctx, &buf, entries); err != nil {
		return nil, "", err
	}

	s.logger.Info().
		Str("project", snap.Project.Slug).
		Int("pages", len(snap.Pages)).
		Int("files", len(files)).
		Int("archive_bytes", buf.Len()).
		Msg("project exported")

	return buf.Bytes(), snap.Project.Slug + ".zip", nil
}
