package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiweb/multiweb-backend/internal/export/domain"
	"github.com/multiweb/multiweb-backend/internal/export/generator"
)

func stream(entries ...generator.Entry) <-chan generator.Entry {
	ch := make(chan generator.Entry, len(entries))
	for _, e := range entries {
		ch <- e
	}
	close(ch)
	return ch
}

func TestStreamZip_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := StreamZip(context.Background(), &buf, stream(
		generator.Entry{Path: "package.json", Content: "{}"},
		generator.Entry{Path: "src/app/page.tsx", Content: "export default 1;"},
	))
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	// Entry order mirrors insertion order.
	assert.Equal(t, "package.json", zr.File[0].Name)
	assert.Equal(t, "src/app/page.tsx", zr.File[1].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "export default 1;", string(content))
}

func TestStreamZip_ByteReproducible(t *testing.T) {
	entries := []generator.Entry{
		{Path: "a.txt", Content: "alpha"},
		{Path: "b.txt", Content: "beta"},
	}

	var first, second bytes.Buffer
	require.NoError(t, StreamZip(context.Background(), &first, stream(entries...)))
	require.NoError(t, StreamZip(context.Background(), &second, stream(entries...)))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestStreamZip_DuplicatePath(t *testing.T) {
	var buf bytes.Buffer
	err := StreamZip(context.Background(), &buf, stream(
		generator.Entry{Path: "same.txt", Content: "one"},
		generator.Entry{Path: "same.txt", Content: "two"},
	))
	require.ErrorIs(t, err, domain.ErrConflictingPaths)
}

type failingWriter struct {
	failAfter int
	written   int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.written += len(p)
	if w.written > w.failAfter {
		return 0, errors.New("sink closed")
	}
	return len(p), nil
}

func TestStreamZip_WriteFailure(t *testing.T) {
	err := StreamZip(context.Background(), &failingWriter{failAfter: 10}, stream(
		generator.Entry{Path: "a.txt", Content: "some content that exceeds the failure threshold"},
	))
	require.ErrorIs(t, err, domain.ErrArchiveIO)
}

func TestStreamZip_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unclosed channel: only cancellation can end the stream.
	entries := make(chan generator.Entry)
	var buf bytes.Buffer
	err := StreamZip(ctx, &buf, entries)
	require.ErrorIs(t, err, domain.ErrArchiveIO)
}
