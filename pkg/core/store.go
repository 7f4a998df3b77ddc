package core

import "context"

// ListViewsOptions filters a view listing. Search is a case-insensitive
// substring match against name, name2 and alias (OR across the three);
// ViewID is an exact match combined with Search using AND.
type ListViewsOptions struct {
	Search string
	ViewID *int
}

// ListRelationsOptions filters a relation listing. ViewID matches relations
// where either endpoint equals it; Search is a case-insensitive substring
// match against the relation clause.
type ListRelationsOptions struct {
	ViewID *int
	Search string
}

// Store is the graph repository: it owns the view and relation collections
// and enforces uniqueness and referential cleanup. Implementations live in
// internal/state (MongoDB for production, in-memory for tests).
//
// Error contract: CreateView returns ErrDuplicateKey when the view_id is
// taken; CreateRelation returns ErrInvalidReference when an endpoint view is
// missing; Get/Update/Delete return ErrNotFound for absent targets; updates
// with empty patches return ErrNoFields.
type Store interface {
	CreateView(ctx context.Context, view *View) error
	GetView(ctx context.Context, viewID int) (*View, error)
	ListViews(ctx context.Context, opts ListViewsOptions) ([]*View, error)
	UpdateView(ctx context.Context, viewID int, patch ViewUpdate) (*View, error)
	// DeleteView removes the view and every relation referencing it as
	// either endpoint.
	DeleteView(ctx context.Context, viewID int) error

	CreateRelation(ctx context.Context, rel *ViewRelation) error
	GetRelation(ctx context.Context, id string) (*ViewRelation, error)
	ListRelations(ctx context.Context, opts ListRelationsOptions) ([]*ViewRelation, error)
	UpdateRelation(ctx context.Context, id string, patch RelationUpdate) (*ViewRelation, error)
	DeleteRelation(ctx context.Context, id string) error

	// GraphData exports the whole graph in the shape the visualization
	// front-end consumes.
	GraphData(ctx context.Context) (*GraphData, error)

	// ClearAll unconditionally empties both collections.
	ClearAll(ctx context.Context) error

	Stats(ctx context.Context) (*Stats, error)

	Close(ctx context.Context) error
}
