package export

import (
	"archive/zip"
	"compress/flate"
	"context"
	"fmt"
	"io"

	"github.com/multiweb/multiweb-backend/internal/export/domain"
	"github.com/multiweb/multiweb-backend/internal/export/generator"
)

// StreamZip consumes entries and writes a compressed zip to w. Entries are
// written as they arrive and compressed output goes to w incrementally, so
// the uncompressed project is never held in full. Completion is signaled by
// the encoder's trailing central directory; any write error aborts the whole
// stream and is surfaced as ErrArchiveIO.
//
// The writer is owned exclusively for the duration of the call. Entry order
// in the archive mirrors arrival order, and headers carry no timestamps, so
// identical input yields byte-identical output.
func StreamZip(ctx context.Context, w io.Writer, entries <-chan generator.Entry) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	seen := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", domain.ErrArchiveIO, ctx.Err())
		case entry, ok := <-entries:
			if !ok {
				if err := zw.Close(); err != nil {
					return fmt.Errorf("%w: %v", domain.ErrArchiveIO, err)
				}
				return nil
			}

			if _, dup := seen[entry.Path]; dup {
				return fmt.Errorf("%w: duplicate archive entry %s", domain.ErrConflictingPaths, entry.Path)
			}
			seen[entry.Path] = struct{}{}

			fw, err := zw.CreateHeader(&zip.FileHeader{
				Name:   entry.Path,
				Method: zip.Deflate,
			})
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrArchiveIO, err)
			}
			if _, err := io.WriteString(fw, entry.Content); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrArchiveIO, err)
			}
		}
	}
}
