// Package generator maps a design snapshot to the source files of a
// standalone Next.js project. It is pure: no I/O, and the same snapshot
// always yields byte-identical output.
package generator

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/multiweb/multiweb-backend/internal/export/domain"
)

// Entry is one generated file: a path relative to the project root plus its
// text content.
type Entry struct {
	Path    string
	Content string
}

const (
	homePagePath    = "src/app/page.tsx"
	pagesRootPrefix = "src/app"
)

// Files generates the full project in archive order: scaffold files first,
// then one entry per page in snapshot order, then the shared renderer
// modules, then the README. Two pages resolving to the same output path is
// a ConflictingPaths error, never a silent overwrite.
func Files(snap *domain.Snapshot) ([]Entry, error) {
	entries := []Entry{
		{Path: "package.json", Content: packageJSON(snap.Project.Name)},
		{Path: "next.config.js", Content: nextConfig},
		{Path: "tsconfig.json", Content: tsConfig()},
		{Path: "src/styles/globals.css", Content: globalStyles},
		{Path: "src/app/layout.tsx", Content: layout(snap.Project.Name)},
	}

	seen := make(map[string]string, len(snap.Pages))
	for _, page := range snap.Pages {
		path := pageEntryPath(page)
		if other, dup := seen[path]; dup {
			return nil, fmt.Errorf("%w: pages %q and %q both generate %s",
				domain.ErrConflictingPaths, other, page.Name, path)
		}
		seen[path] = page.Name

		content, err := pageEntry(page)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Path: path, Content: content})
	}

	entries = append(entries, Entry{Path: "src/components/Section.tsx", Content: sectionComponent})
	// Every declared variant gets its renderer file, used or not; unused ones
	// are simply never dispatched to.
	for _, variant := range variantOrder {
		entries = append(entries, Entry{
			Path:    "src/components/" + variantFiles[variant],
			Content: variantRenderers[variant],
		})
	}
	entries = append(entries, Entry{Path: "src/components/ComponentRenderer.tsx", Content: componentRenderer})
	entries = append(entries, Entry{Path: "README.md", Content: readme(snap.Project.Name)})

	return entries, nil
}

// pageEntryPath maps the home page to the canonical app root and every other
// page under the pages root by its URL path.
func pageEntryPath(page domain.PageNode) string {
	if page.IsHome {
		return homePagePath
	}
	return pagesRootPrefix + page.Path + "/page.tsx"
}

// Serialized page data, embedded in each page entry as inline static data.
// Struct fields keep a fixed order and map keys marshal sorted, so the
// embedding is deterministic.
type pageSection struct {
	ID         string                 `json:"id"`
	Height     int                    `json:"height"`
	Styles     map[string]interface{} `json:"styles"`
	Components []pageComponent        `json:"components"`
}

type pageComponent struct {
	ID     string                 `json:"id"`
	Type   string                 `json:"type"`
	X      float64                `json:"x"`
	Y      float64                `json:"y"`
	Width  float64                `json:"width"`
	Height float64                `json:"height"`
	Props  map[string]interface{} `json:"props"`
	Styles map[string]interface{} `json:"styles"`
	ZIndex int                    `json:"zIndex"`
}

func pageEntry(page domain.PageNode) (string, error) {
	sections := make([]pageSection, len(page.Sections))
	for i, s := range page.Sections {
		comps := make([]pageComponent, len(s.Components))
		for j, c := range s.Components {
			comps[j] = pageComponent{
				ID: c.ID, Type: c.Type,
				X: c.X, Y: c.Y, Width: c.Width, Height: c.Height,
				Props: orEmpty(c.Props), Styles: orEmpty(c.Styles),
				ZIndex: c.ZIndex,
			}
		}
		sections[i] = pageSection{
			ID: s.ID, Height: s.Height,
			Styles:     orEmpty(s.Styles),
			Components: comps,
		}
	}

	data, err := json.Marshal(sections)
	if err != nil {
		return "", fmt.Errorf("embed page %q: %w", page.Name, err)
	}

	return fmt.Sprintf(`import Section from '@/components/Section';

const sectionsData = %s;

export default function %sPage() {
  return (
    <main>
      {sectionsData.map((section) => (
        <Section key={section.id} {...section} />
      ))}
    </main>
  );
}
`, data, pageFuncName(page.Name)), nil
}

// pageFuncName canonicalizes a human-edited page name into an identifier:
// words are title-cased and joined, everything outside letters and digits is
// dropped, a leading digit gets a "P" prefix, and an empty result falls back
// to "Page".
func pageFuncName(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if upperNext {
				r = unicode.ToUpper(r)
				upperNext = false
			}
			b.WriteRune(r)
			continue
		}
		upperNext = true
	}

	s := b.String()
	if s == "" {
		return "Page"
	}
	if unicode.IsDigit([]rune(s)[0]) {
		s = "P" + s
	}
	return s
}

func orEmpty(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
