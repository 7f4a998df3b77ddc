// Package importer drives the SQL import pipeline: statement extraction,
// record mapping, placeholder auto-creation and persistence. It is stateless;
// all persistent state lives behind core.Store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/viewgraph/pkg/core"
	"github.com/leapstack-labs/viewgraph/pkg/sqlinsert"
)

// Importer ingests pasted SQL INSERT dumps into the graph store.
type Importer struct {
	store  core.Store
	logger *slog.Logger
}

// New creates an Importer over the given store.
func New(store core.Store, logger *slog.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

// Run processes every statement in the raw SQL text in input order and
// reports aggregate counts plus per-row persistence errors.
//
// Views that already exist are skipped silently; import never overwrites.
// Relations auto-create placeholder views for missing endpoints before the
// relation itself is inserted, so ingestion never references an endpoint it
// has not created yet. Rows that fail to parse or map are invisible noise;
// rows that fail to persist are reported in Errors. A bad row never aborts
// the batch.
func (imp *Importer) Run(ctx context.Context, rawSQL string) core.ImportResult {
	result := core.ImportResult{Errors: []string{}}

	statements := sqlinsert.Statements(rawSQL)
	imp.logger.Debug("importing sql dump", "statements", len(statements))

	for _, stmt := range statements {
		switch sqlinsert.Classify(stmt) {
		case sqlinsert.KindView:
			imp.importView(ctx, stmt, &result)
		case sqlinsert.KindRelation:
			imp.importRelation(ctx, stmt, &result)
		}
	}

	imp.logger.Info("sql import finished",
		"views_created", result.ViewsCreated,
		"relations_created", result.RelationsCreated,
		"errors", len(result.Errors))
	return result
}

func (imp *Importer) importView(ctx context.Context, stmt string, result *core.ImportResult) {
	rec, ok := sqlinsert.ParseViewInsert(stmt)
	if !ok {
		return
	}

	if err := imp.createViewIfAbsent(ctx, rec, result); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Error creating view: %v", err))
	}
}

func (imp *Importer) createViewIfAbsent(ctx context.Context, rec *sqlinsert.ViewRecord, result *core.ImportResult) error {
	_, err := imp.store.GetView(ctx, rec.ViewID)
	if err == nil {
		// Already present: skipped, not counted, not an error.
		return nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return err
	}

	view := core.NewView(core.ViewCreate{
		ViewID: rec.ViewID,
		Name:   rec.Name,
		Name2:  rec.Name2,
		Alias:  rec.Alias,
	})
	if err := imp.store.CreateView(ctx, view); err != nil {
		return err
	}
	result.ViewsCreated++
	return nil
}

func (imp *Importer) importRelation(ctx context.Context, stmt string, result *core.ImportResult) {
	rec, ok := sqlinsert.ParseRelationInsert(stmt)
	if !ok {
		return
	}

	if err := imp.createRelation(ctx, rec, result); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Error creating relation: %v", err))
	}
}

func (imp *Importer) createRelation(ctx context.Context, rec *sqlinsert.RelationRecord, result *core.ImportResult) error {
	// Endpoints first: placeholder views keep the referential invariant.
	// Placeholders created before a later failure stay created and counted;
	// failures are row-scoped, not batch-scoped.
	for _, viewID := range []int{rec.IDView1, rec.IDView2} {
		if err := imp.ensurePlaceholder(ctx, viewID, result); err != nil {
			return err
		}
	}

	rel := core.NewRelation(core.RelationCreate{
		IDView1:       rec.IDView1,
		IDView2:       rec.IDView2,
		Relation:      rec.Relation,
		Relation2:     rec.Relation2,
		EdgeWeight:    rec.EdgeWeight,
		MinAppVersion: rec.MinAppVersion,
		MaxAppVersion: rec.MaxAppVersion,
		ChangeOwner:   rec.ChangeOwner,
	})
	if err := imp.store.CreateRelation(ctx, rel); err != nil {
		return err
	}
	result.RelationsCreated++
	return nil
}

func (imp *Importer) ensurePlaceholder(ctx context.Context, viewID int, result *core.ImportResult) error {
	_, err := imp.store.GetView(ctx, viewID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return err
	}

	placeholder := core.NewView(core.ViewCreate{
		ViewID: viewID,
		Name:   fmt.Sprintf("View_%d", viewID),
	})
	if err := imp.store.CreateView(ctx, placeholder); err != nil {
		return err
	}
	imp.logger.Debug("auto-created placeholder view", "view_id", viewID)
	result.ViewsCreated++
	return nil
}
