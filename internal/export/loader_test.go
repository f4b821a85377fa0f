package export

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiweb/multiweb-backend/internal/components"
	"github.com/multiweb/multiweb-backend/internal/export/domain"
	"github.com/multiweb/multiweb-backend/internal/pages"
	"github.com/multiweb/multiweb-backend/internal/projects"
	"github.com/multiweb/multiweb-backend/internal/sections"
	"github.com/multiweb/multiweb-backend/internal/users"
)

type fakeStores struct {
	users      map[string]*users.User
	projects   map[string]*projects.Project
	pages      map[string][]pages.Page           // projectID → pages
	sections   map[string][]sections.Section     // pageID → sections
	components map[string][]components.Component // sectionID → components
}

func (f *fakeStores) GetByID(_ context.Context, id string) (*users.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u, nil
}

func (f *fakeStores) GetBySlug(_ context.Context, slug string) (*projects.Project, error) {
	p, ok := f.projects[slug]
	if !ok {
		return nil, projects.ErrNotFound
	}
	return p, nil
}

func (f *fakeStores) ListByProject(_ context.Context, projectID string) ([]pages.Page, error) {
	return f.pages[projectID], nil
}

func (f *fakeStores) ListByPage(_ context.Context, pageID string) ([]sections.Section, error) {
	return f.sections[pageID], nil
}

func (f *fakeStores) ListBySection(_ context.Context, sectionID string) ([]components.Component, error) {
	return f.components[sectionID], nil
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		users: map[string]*users.User{
			"owner":      {ID: "owner", Email: "o@example.com", IsVerified: true},
			"unverified": {ID: "unverified", Email: "u@example.com", IsVerified: false},
			"other":      {ID: "other", Email: "x@example.com", IsVerified: true},
		},
		projects: map[string]*projects.Project{
			"demo": {ID: "p1", Name: "Demo", Slug: "demo", UserID: "owner", IsPublic: true},
		},
		pages:      map[string][]pages.Page{},
		sections:   map[string][]sections.Section{},
		components: map[string][]components.Component{},
	}
}

func loaderFor(f *fakeStores) *Loader {
	return NewLoader(f, f, f, f, f)
}

func TestLoader_NotFound(t *testing.T) {
	l := loaderFor(newFakeStores())
	_, err := l.Load(context.Background(), "missing", "owner")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoader_NonOwnerDenied(t *testing.T) {
	// Export is owner-only even for public projects.
	l := loaderFor(newFakeStores())
	_, err := l.Load(context.Background(), "demo", "other")
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestLoader_UnverifiedOwnerDenied(t *testing.T) {
	f := newFakeStores()
	f.projects["demo"].UserID = "unverified"
	l := loaderFor(f)
	_, err := l.Load(context.Background(), "demo", "unverified")
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestLoader_UnknownUserDenied(t *testing.T) {
	l := loaderFor(newFakeStores())
	_, err := l.Load(context.Background(), "demo", "ghost")
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestLoader_CanonicalOrdering(t *testing.T) {
	f := newFakeStores()
	// Stores return arbitrarily ordered rows; the snapshot must not.
	f.pages["p1"] = []pages.Page{
		{ID: "pg2", Name: "Second", Path: "/second", Order: 1, ProjectID: "p1"},
		{ID: "pg1", Name: "Home", Path: "/", Order: 0, IsHome: true, ProjectID: "p1"},
	}
	f.sections["pg1"] = []sections.Section{
		{ID: "s2", Order: 5, Height: 300, PageID: "pg1"},
		{ID: "s1", Order: 2, Height: 400, PageID: "pg1"},
	}
	f.components["s1"] = []components.Component{
		{ID: "c3", Type: components.VariantImage, ZIndex: 7, SectionID: "s1"},
		{ID: "c1", Type: components.VariantText, ZIndex: 0, SectionID: "s1"},
		{ID: "c2", Type: components.VariantButton, ZIndex: 3, SectionID: "s1"},
	}

	snap, err := loaderFor(f).Load(context.Background(), "demo", "owner")
	require.NoError(t, err)

	require.Len(t, snap.Pages, 2)
	assert.Equal(t, "pg1", snap.Pages[0].ID)
	assert.Equal(t, "pg2", snap.Pages[1].ID)

	require.Len(t, snap.Pages[0].Sections, 2)
	assert.Equal(t, "s1", snap.Pages[0].Sections[0].ID)
	assert.Equal(t, "s2", snap.Pages[0].Sections[1].ID)

	comps := snap.Pages[0].Sections[0].Components
	require.Len(t, comps, 3)
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string{comps[0].ID, comps[1].ID, comps[2].ID})
}

func TestLoader_StableTieBreak(t *testing.T) {
	f := newFakeStores()
	// Equal orders keep original fetch order.
	f.pages["p1"] = []pages.Page{
		{ID: "pgA", Name: "A", Path: "/a", Order: 0, ProjectID: "p1"},
		{ID: "pgB", Name: "B", Path: "/b", Order: 0, ProjectID: "p1"},
	}

	snap, err := loaderFor(f).Load(context.Background(), "demo", "owner")
	require.NoError(t, err)
	assert.Equal(t, "pgA", snap.Pages[0].ID)
	assert.Equal(t, "pgB", snap.Pages[1].ID)
}

func TestLoader_SnapshotIsDetached(t *testing.T) {
	f := newFakeStores()
	styles := map[string]interface{}{"background": "#000"}
	f.pages["p1"] = []pages.Page{{ID: "pg1", Name: "Home", Path: "/", IsHome: true, ProjectID: "p1"}}
	f.sections["pg1"] = []sections.Section{{ID: "s1", Height: 400, Styles: styles, PageID: "pg1"}}

	snap, err := loaderFor(f).Load(context.Background(), "demo", "owner")
	require.NoError(t, err)

	// Mutating the store's map after snapshot time must not leak in.
	styles["background"] = "#fff"
	assert.Equal(t, "#000", snap.Pages[0].Sections[0].Styles["background"])
}
