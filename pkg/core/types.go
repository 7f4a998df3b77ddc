// Package core defines the shared domain types for viewgraph: the View and
// ViewRelation entities, the Store interface they are persisted through, and
// the error taxonomy store implementations report.
//
// Types live here rather than in internal/state so that the server, the
// importer, and the store implementations can all depend on them without
// depending on each other.
package core

import (
	"time"

	"github.com/google/uuid"
)

// View is a graph node representing a named report/database view.
// ViewID is the caller-supplied business key and is unique across all views;
// ID is the system-generated storage key.
type View struct {
	ID        string    `json:"id" bson:"id"`
	ViewID    int       `json:"view_id" bson:"view_id"`
	Name      string    `json:"name" bson:"name"`
	Name2     *string   `json:"name2" bson:"name2"`
	Alias     *string   `json:"alias" bson:"alias"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ViewRelation is a graph edge between two views, identified by their
// business keys. Both endpoints must exist as views at creation time.
type ViewRelation struct {
	ID            string    `json:"id" bson:"id"`
	IDView1       int       `json:"id_view1" bson:"id_view1"`
	IDView2       int       `json:"id_view2" bson:"id_view2"`
	Relation      string    `json:"relation" bson:"relation"`
	Relation2     *string   `json:"relation2" bson:"relation2"`
	EdgeWeight    *int      `json:"edge_weight" bson:"edge_weight"`
	MinAppVersion *int      `json:"min_app_version" bson:"min_app_version"`
	MaxAppVersion *int      `json:"max_app_version" bson:"max_app_version"`
	ChangeOwner   *int      `json:"change_owner" bson:"change_owner"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// DefaultEdgeWeight is applied when a relation is created without an
// explicit edge weight.
const DefaultEdgeWeight = 10

// ViewCreate carries the caller-supplied fields for a new view.
type ViewCreate struct {
	ViewID int     `json:"view_id"`
	Name   string  `json:"name"`
	Name2  *string `json:"name2"`
	Alias  *string `json:"alias"`
}

// ViewUpdate is a partial update; nil fields are left untouched.
type ViewUpdate struct {
	Name  *string `json:"name"`
	Name2 *string `json:"name2"`
	Alias *string `json:"alias"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (u ViewUpdate) IsEmpty() bool {
	return u.Name == nil && u.Name2 == nil && u.Alias == nil
}

// RelationCreate carries the caller-supplied fields for a new relation.
type RelationCreate struct {
	IDView1       int     `json:"id_view1"`
	IDView2       int     `json:"id_view2"`
	Relation      string  `json:"relation"`
	Relation2     *string `json:"relation2"`
	EdgeWeight    *int    `json:"edge_weight"`
	MinAppVersion *int    `json:"min_app_version"`
	MaxAppVersion *int    `json:"max_app_version"`
	ChangeOwner   *int    `json:"change_owner"`
}

// RelationUpdate is a partial update; nil fields are left untouched.
type RelationUpdate struct {
	Relation   *string `json:"relation"`
	Relation2  *string `json:"relation2"`
	EdgeWeight *int    `json:"edge_weight"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (u RelationUpdate) IsEmpty() bool {
	return u.Relation == nil && u.Relation2 == nil && u.EdgeWeight == nil
}

// NewView builds a View from caller-supplied fields, minting the system id
// and creation timestamp.
func NewView(c ViewCreate) *View {
	return &View{
		ID:        uuid.New().String(),
		ViewID:    c.ViewID,
		Name:      c.Name,
		Name2:     c.Name2,
		Alias:     c.Alias,
		CreatedAt: time.Now().UTC(),
	}
}

// NewRelation builds a ViewRelation from caller-supplied fields, minting the
// system id and creation timestamp and defaulting the edge weight.
func NewRelation(c RelationCreate) *ViewRelation {
	weight := c.EdgeWeight
	if weight == nil {
		w := DefaultEdgeWeight
		weight = &w
	}
	return &ViewRelation{
		ID:            uuid.New().String(),
		IDView1:       c.IDView1,
		IDView2:       c.IDView2,
		Relation:      c.Relation,
		Relation2:     c.Relation2,
		EdgeWeight:    weight,
		MinAppVersion: c.MinAppVersion,
		MaxAppVersion: c.MaxAppVersion,
		ChangeOwner:   c.ChangeOwner,
		CreatedAt:     time.Now().UTC(),
	}
}

// ImportResult aggregates the outcome of one SQL import batch.
type ImportResult struct {
	ViewsCreated     int      `json:"views_created"`
	RelationsCreated int      `json:"relations_created"`
	Errors           []string `json:"errors"`
}

// Stats holds current collection counts.
type Stats struct {
	ViewsCount     int64 `json:"views_count"`
	RelationsCount int64 `json:"relations_count"`
}
