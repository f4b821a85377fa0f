package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiweb/multiweb-backend/internal/export/domain"
)

func demoSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Project: domain.ProjectInfo{ID: "p1", Name: "Demo Site", Slug: "demo"},
		Pages: []domain.PageNode{
			{
				ID: "pg1", Name: "Home", Path: "/", Order: 0, IsHome: true,
				Sections: []domain.SectionNode{
					{
						ID: "s1", Order: 0, Height: 400,
						Styles: map[string]interface{}{"background": "#fff"},
						Components: []domain.ComponentNode{
							{ID: "c1", Type: "text", X: 10, Y: 20, Width: 100, Height: 40,
								Props: map[string]interface{}{"content": "Hello"}, ZIndex: 0},
							{ID: "c2", Type: "image", X: 50, Y: 80, Width: 200, Height: 150,
								Props: map[string]interface{}{"src": "/img.png", "alt": "Img"}, ZIndex: 1},
						},
					},
				},
			},
		},
	}
}

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestFiles_DemoScenario(t *testing.T) {
	entries, err := Files(demoSnapshot())
	require.NoError(t, err)

	// Scaffold set + 1 page entry + Section + 6 variant renderers +
	// dispatcher + README.
	assert.Equal(t, []string{
		"package.json",
		"next.config.js",
		"tsconfig.json",
		"src/styles/globals.css",
		"src/app/layout.tsx",
		"src/app/page.tsx",
		"src/components/Section.tsx",
		"src/components/TextComponent.tsx",
		"src/components/ImageComponent.tsx",
		"src/components/ButtonComponent.tsx",
		"src/components/ContainerComponent.tsx",
		"src/components/LinkComponent.tsx",
		"src/components/FormComponent.tsx",
		"src/components/ComponentRenderer.tsx",
		"README.md",
	}, paths(entries))

	var home string
	for _, e := range entries {
		if e.Path == "src/app/page.tsx" {
			home = e.Content
		}
	}
	require.NotEmpty(t, home)

	// The embedded data lists the text component before the image component.
	textAt := strings.Index(home, `"type":"text"`)
	imageAt := strings.Index(home, `"type":"image"`)
	require.GreaterOrEqual(t, textAt, 0)
	require.GreaterOrEqual(t, imageAt, 0)
	assert.Less(t, textAt, imageAt)

	assert.Contains(t, home, "export default function HomePage()")
	assert.Contains(t, home, "import Section from '@/components/Section';")
}

func TestFiles_Deterministic(t *testing.T) {
	first, err := Files(demoSnapshot())
	require.NoError(t, err)
	second, err := Files(demoSnapshot())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFiles_EmptyProject(t *testing.T) {
	snap := &domain.Snapshot{Project: domain.ProjectInfo{Name: "Empty", Slug: "empty"}}

	entries, err := Files(snap)
	require.NoError(t, err)

	// All scaffold files, zero page entries.
	for _, e := range entries {
		assert.NotContains(t, e.Path, "src/app/page.tsx")
	}
	assert.Len(t, entries, 14)
}

func TestFiles_NonHomePagePath(t *testing.T) {
	snap := demoSnapshot()
	snap.Pages = append(snap.Pages, domain.PageNode{
		ID: "pg2", Name: "About Us", Path: "/about", Order: 1,
	})

	entries, err := Files(snap)
	require.NoError(t, err)

	assert.Contains(t, paths(entries), "src/app/about/page.tsx")
	for _, e := range entries {
		if e.Path == "src/app/about/page.tsx" {
			assert.Contains(t, e.Content, "export default function AboutUsPage()")
		}
	}
}

func TestFiles_ConflictingPaths(t *testing.T) {
	snap := demoSnapshot()
	// Second home page maps to the same canonical path.
	snap.Pages = append(snap.Pages, domain.PageNode{
		ID: "pg2", Name: "Landing", Path: "/landing", Order: 1, IsHome: true,
	})

	_, err := Files(snap)
	require.ErrorIs(t, err, domain.ErrConflictingPaths)
}

func TestFiles_AllRenderersAlwaysEmitted(t *testing.T) {
	// A project using only text still ships every variant renderer.
	snap := &domain.Snapshot{Project: domain.ProjectInfo{Name: "T", Slug: "t"}}

	entries, err := Files(snap)
	require.NoError(t, err)

	got := paths(entries)
	for _, f := range []string{
		"src/components/TextComponent.tsx",
		"src/components/ImageComponent.tsx",
		"src/components/ButtonComponent.tsx",
		"src/components/ContainerComponent.tsx",
		"src/components/LinkComponent.tsx",
		"src/components/FormComponent.tsx",
	} {
		assert.Contains(t, got, f)
	}
}

func TestFiles_DispatcherDefaultsToEmpty(t *testing.T) {
	entries, err := Files(demoSnapshot())
	require.NoError(t, err)

	var dispatcher string
	for _, e := range entries {
		if e.Path == "src/components/ComponentRenderer.tsx" {
			dispatcher = e.Content
		}
	}
	require.NotEmpty(t, dispatcher)
	assert.Contains(t, dispatcher, "default:")
	assert.Contains(t, dispatcher, "return null;")
}

func TestPageFuncName(t *testing.T) {
	cases := map[string]string{
		"Home":         "Home",
		"About Us":     "AboutUs",
		"  spaced  ":   "Spaced",
		"404":          "P404",
		"my-page":      "MyPage",
		"":             "Page",
		"!!!":          "Page",
		"2nd Chance":   "P2ndChance",
		"Contact/Form": "ContactForm",
	}
	for in, want := range cases {
		assert.Equal(t, want, pageFuncName(in), "input %q", in)
	}
}

func TestPackageJSON_NameNormalized(t *testing.T) {
	content := packageJSON("My Cool Site")
	assert.Contains(t, content, `"name": "my-cool-site"`)
	assert.Contains(t, content, `"next": "^14.0.0"`)
}

func TestLayout_EmbedsProjectName(t *testing.T) {
	assert.Contains(t, layout("Demo Site"), "title: 'Demo Site',")
}
