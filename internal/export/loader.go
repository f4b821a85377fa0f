// Package export materializes a saved design tree into a downloadable
// Next.js source archive: loader (snapshot), generator (files), streamer
// (zip), orchestrated per request.
package export

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/multiweb/multiweb-backend/internal/components"
	"github.com/multiweb/multiweb-backend/internal/export/domain"
	"github.com/multiweb/multiweb-backend/internal/pages"
	"github.com/multiweb/multiweb-backend/internal/projects"
	"github.com/multiweb/multiweb-backend/internal/sections"
	"github.com/multiweb/multiweb-backend/internal/users"
)

// Stores the loader reads from. Satisfied by the pgx repos; tests use fakes.
type (
	UserStore interface {
		GetByID(ctx context.Context, id string) (*users.User, error)
	}
	ProjectStore interface {
		GetBySlug(ctx context.Context, slug string) (*projects.Project, error)
	}
	PageStore interface {
		ListByProject(ctx context.Context, projectID string) ([]pages.Page, error)
	}
	SectionStore interface {
		ListByPage(ctx context.Context, pageID string) ([]sections.Section, error)
	}
	ComponentStore interface {
		ListBySection(ctx context.Context, sectionID string) ([]components.Component, error)
	}
)

// subtreeFetchLimit bounds concurrent section/component list calls per export.
const subtreeFetchLimit = 4

// Loader assembles an ownership-and-verification-checked snapshot of a
// project's design tree. It only reads; no state survives a call.
type Loader struct {
	users      UserStore
	projects   ProjectStore
	pages      PageStore
	sections   SectionStore
	components ComponentStore
}

func NewLoader(u UserStore, p ProjectStore, pg PageStore, s SectionStore, c ComponentStore) *Loader {
	return &Loader{users: u, projects: p, pages: pg, sections: s, components: c}
}

// Load captures the snapshot for one export. The permission check happens
// once, here, at the project boundary: the snapshot is immutable afterwards
// so no per-node re-check is needed.
func (l *Loader) Load(ctx context.Context, slug, userID string) (*domain.Snapshot, error) {
	user, err := l.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, domain.ErrPermissionDenied
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.IsVerified {
		return nil, domain.ErrPermissionDenied
	}

	project, err := l.projects.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	if project.UserID != userID {
		// Export is owner-only, regardless of the public flag.
		return nil, domain.ErrPermissionDenied
	}

	pageRows, err := l.pages.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}

	snap := &domain.Snapshot{
		Project: domain.ProjectInfo{ID: project.ID, Name: project.Name, Slug: project.Slug},
		Pages:   make([]domain.PageNode, len(pageRows)),
	}

	// Sibling subtrees have no ordering dependency on each other; fetch them
	// concurrently and canonicalize afterwards.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(subtreeFetchLimit)

	for i, row := range pageRows {
		snap.Pages[i] = domain.PageNode{
			ID:     row.ID,
			Name:   row.Name,
			Path:   row.Path,
			Order:  row.Order,
			IsHome: row.IsHome,
		}

		g.Go(func() error {
			node, err := l.loadPageSubtree(gctx, row.ID)
			if err != nil {
				return err
			}
			snap.Pages[i].Sections = node
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	canonicalize(snap)
	return snap, nil
}

func (l *Loader) loadPageSubtree(ctx context.Context, pageID string) ([]domain.SectionNode, error) {
	sectionRows, err := l.sections.ListByPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	nodes := make([]domain.SectionNode, len(sectionRows))
	for i, row := range sectionRows {
		componentRows, err := l.components.ListBySection(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("load components: %w", err)
		}

		comps := make([]domain.ComponentNode, len(componentRows))
		for j, cr := range componentRows {
			comps[j] = domain.ComponentNode{
				ID:     cr.ID,
				Type:   string(cr.Type),
				X:      cr.X,
				Y:      cr.Y,
				Width:  cr.Width,
				Height: cr.Height,
				Props:  copyMap(cr.Props),
				Styles: copyMap(cr.Styles),
				ZIndex: cr.ZIndex,
			}
		}

		nodes[i] = domain.SectionNode{
			ID:         row.ID,
			Order:      row.Order,
			Height:     row.Height,
			Styles:     copyMap(row.Styles),
			Components: comps,
		}
	}
	return nodes, nil
}

// canonicalize re-sorts the assembled tree by the snapshot orders: pages and
// sections by order, components by zIndex, ties broken by original fetch
// order. Generation never depends on fetch completion order.
func canonicalize(snap *domain.Snapshot) {
	sort.SliceStable(snap.Pages, func(a, b int) bool {
		return snap.Pages[a].Order < snap.Pages[b].Order
	})
	for i := range snap.Pages {
		secs := snap.Pages[i].Sections
		sort.SliceStable(secs, func(a, b int) bool {
			return secs[a].Order < secs[b].Order
		})
		for j := range secs {
			comps := secs[j].Components
			sort.SliceStable(comps, func(a, b int) bool {
				return comps[a].ZIndex < comps[b].ZIndex
			})
		}
	}
}

// copyMap detaches free-form jsonb maps from whatever the store returned, so
// the snapshot holds values only.
func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
