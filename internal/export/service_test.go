package export

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiweb/multiweb-backend/internal/components"
	"github.com/multiweb/multiweb-backend/internal/export/domain"
	"github.com/multiweb/multiweb-backend/internal/pages"
	"github.com/multiweb/multiweb-backend/internal/sections"
)

func demoService() (*Service, *fakeStores) {
	f := newFakeStores()
	f.pages["p1"] = []pages.Page{
		{ID: "pg1", Name: "Home", Path: "/", Order: 0, IsHome: true, ProjectID: "p1"},
	}
	f.sections["pg1"] = []sections.Section{
		{ID: "s1", Order: 0, Height: 400, PageID: "pg1"},
	}
	f.components["s1"] = []components.Component{
		{ID: "c1", Type: components.VariantText, ZIndex: 0, SectionID: "s1",
			Props: map[string]interface{}{"content": "Hello"}},
		{ID: "c2", Type: components.VariantImage, ZIndex: 1, SectionID: "s1",
			Props: map[string]interface{}{"src": "/img.png"}},
	}
	return NewService(loaderFor(f), zerolog.Nop()), f
}

func TestExportProject_Success(t *testing.T) {
	svc, _ := demoService()

	archive, filename, err := svc.ExportProject(context.Background(), "demo", "owner")
	require.NoError(t, err)
	assert.Equal(t, "demo.zip", filename)

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	// Scaffold + one page entry + renderer modules + README.
	assert.Contains(t, names, "package.json")
	assert.Contains(t, names, "src/app/page.tsx")
	assert.Contains(t, names, "src/components/ComponentRenderer.tsx")
	assert.Contains(t, names, "README.md")
	assert.Len(t, names, 15)
}

func TestExportProject_Deterministic(t *testing.T) {
	svc, _ := demoService()

	first, _, err := svc.ExportProject(context.Background(), "demo", "owner")
	require.NoError(t, err)
	second, _, err := svc.ExportProject(context.Background(), "demo", "owner")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExportProject_EmptyProjectSucceeds(t *testing.T) {
	svc, f := demoService()
	f.pages["p1"] = nil

	archive, filename, err := svc.ExportProject(context.Background(), "demo", "owner")
	require.NoError(t, err)
	assert.Equal(t, "demo.zip", filename)

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	assert.Len(t, zr.File, 14)
	for _, zf := range zr.File {
		assert.NotEqual(t, "src/app/page.tsx", zf.Name)
	}
}

func TestExportProject_NotFoundProducesNothing(t *testing.T) {
	svc, _ := demoService()

	archive, filename, err := svc.ExportProject(context.Background(), "missing", "owner")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, archive)
	assert.Empty(t, filename)
}

func TestExportProject_ConflictAborts(t *testing.T) {
	svc, f := demoService()
	f.pages["p1"] = append(f.pages["p1"], pages.Page{
		ID: "pg2", Name: "Landing", Path: "/landing", Order: 1, IsHome: true, ProjectID: "p1",
	})

	archive, _, err := svc.ExportProject(context.Background(), "demo", "owner")
	require.ErrorIs(t, err, domain.ErrConflictingPaths)
	assert.Nil(t, archive)
}
