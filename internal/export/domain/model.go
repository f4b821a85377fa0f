// Package domain holds the immutable snapshot tree an export walks and the
// error taxonomy the pipeline surfaces.
package domain

// Snapshot is a fully ordered, in-memory copy of one project's design tree,
// captured at export start. It is a value tree: nothing in it aliases live
// repository state, so concurrent edits cannot corrupt an in-flight export.
type Snapshot struct {
	Project ProjectInfo
	Pages   []PageNode
}

type ProjectInfo struct {
	ID   string
	Name string
	Slug string
}

type PageNode struct {
	ID       string
	Name     string
	Path     string
	Order    int
	IsHome   bool
	Sections []SectionNode
}

type SectionNode struct {
	ID         string
	Order      int
	Height     int
	Styles     map[string]interface{}
	Components []ComponentNode
}

type ComponentNode struct {
	ID     string
	Type   string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Props  map[string]interface{}
	Styles map[string]interface{}
	ZIndex int
}
