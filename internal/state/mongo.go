package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// Collection names in the backing database.
const (
	viewsCollection     = "views"
	relationsCollection = "view_relations"
)

// Decoding uses explicit allow-list projections rather than relying on the
// driver skipping unknown fields, so documents written by newer versions with
// extra fields load cleanly and deliberately.
var (
	viewProjection = bson.D{
		{Key: "_id", Value: 0},
		{Key: "id", Value: 1},
		{Key: "view_id", Value: 1},
		{Key: "name", Value: 1},
		{Key: "name2", Value: 1},
		{Key: "alias", Value: 1},
		{Key: "created_at", Value: 1},
	}
	relationProjection = bson.D{
		{Key: "_id", Value: 0},
		{Key: "id", Value: 1},
		{Key: "id_view1", Value: 1},
		{Key: "id_view2", Value: 1},
		{Key: "relation", Value: 1},
		{Key: "relation2", Value: 1},
		{Key: "edge_weight", Value: 1},
		{Key: "min_app_version", Value: 1},
		{Key: "max_app_version", Value: 1},
		{Key: "change_owner", Value: 1},
		{Key: "created_at", Value: 1},
	}
)

// MongoStore implements core.Store on top of MongoDB. Uniqueness and
// referential integrity are enforced here in application logic; the
// collections themselves carry no cross-collection constraints.
type MongoStore struct {
	client    *mongo.Client
	views     *mongo.Collection
	relations *mongo.Collection
}

var _ core.Store = (*MongoStore)(nil)

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:    client,
		views:     db.Collection(viewsCollection),
		relations: db.Collection(relationsCollection),
	}, nil
}

func (s *MongoStore) CreateView(ctx context.Context, view *core.View) error {
	err := s.views.FindOne(ctx, bson.D{{Key: "view_id", Value: view.ViewID}}).Err()
	switch {
	case err == nil:
		return fmt.Errorf("view %d: %w", view.ViewID, core.ErrDuplicateKey)
	case !errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("checking view %d: %w", view.ViewID, err)
	}

	if _, err := s.views.InsertOne(ctx, view); err != nil {
		return fmt.Errorf("inserting view %d: %w", view.ViewID, err)
	}
	return nil
}

func (s *MongoStore) GetView(ctx context.Context, viewID int) (*core.View, error) {
	var view core.View
	err := s.views.FindOne(ctx,
		bson.D{{Key: "view_id", Value: viewID}},
		options.FindOne().SetProjection(viewProjection),
	).Decode(&view)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("view %d: %w", viewID, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching view %d: %w", viewID, err)
	}
	return &view, nil
}

func (s *MongoStore) ListViews(ctx context.Context, opts core.ListViewsOptions) ([]*core.View, error) {
	filter := bson.D{}
	if opts.Search != "" {
		regex := bson.D{{Key: "$regex", Value: opts.Search}, {Key: "$options", Value: "i"}}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: regex}},
			bson.D{{Key: "name2", Value: regex}},
			bson.D{{Key: "alias", Value: regex}},
		}})
	}
	if opts.ViewID != nil {
		filter = append(filter, bson.E{Key: "view_id", Value: *opts.ViewID})
	}

	cursor, err := s.views.Find(ctx, filter,
		options.Find().SetProjection(viewProjection).SetSort(bson.D{{Key: "view_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("listing views: %w", err)
	}
	defer cursor.Close(ctx)

	views := []*core.View{}
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decoding views: %w", err)
	}
	return views, nil
}

func (s *MongoStore) UpdateView(ctx context.Context, viewID int, patch core.ViewUpdate) (*core.View, error) {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Name2 != nil {
		set = append(set, bson.E{Key: "name2", Value: *patch.Name2})
	}
	if patch.Alias != nil {
		set = append(set, bson.E{Key: "alias", Value: *patch.Alias})
	}
	if len(set) == 0 {
		return nil, core.ErrNoFields
	}

	res, err := s.views.UpdateOne(ctx,
		bson.D{{Key: "view_id", Value: viewID}},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return nil, fmt.Errorf("updating view %d: %w", viewID, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("view %d: %w", viewID, core.ErrNotFound)
	}
	return s.GetView(ctx, viewID)
}

func (s *MongoStore) DeleteView(ctx context.Context, viewID int) error {
	res, err := s.views.DeleteOne(ctx, bson.D{{Key: "view_id", Value: viewID}})
	if err != nil {
		return fmt.Errorf("deleting view %d: %w", viewID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("view %d: %w", viewID, core.ErrNotFound)
	}

	// Cascade: drop every relation referencing the view as either endpoint.
	_, err = s.relations.DeleteMany(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "id_view1", Value: viewID}},
		bson.D{{Key: "id_view2", Value: viewID}},
	}}})
	if err != nil {
		return fmt.Errorf("deleting relations of view %d: %w", viewID, err)
	}
	return nil
}

func (s *MongoStore) CreateRelation(ctx context.Context, rel *core.ViewRelation) error {
	for _, viewID := range []int{rel.IDView1, rel.IDView2} {
		err := s.views.FindOne(ctx, bson.D{{Key: "view_id", Value: viewID}}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("view %d: %w", viewID, core.ErrInvalidReference)
		}
		if err != nil {
			return fmt.Errorf("checking view %d: %w", viewID, err)
		}
	}

	if _, err := s.relations.InsertOne(ctx, rel); err != nil {
		return fmt.Errorf("inserting relation: %w", err)
	}
	return nil
}

func (s *MongoStore) GetRelation(ctx context.Context, id string) (*core.ViewRelation, error) {
	var rel core.ViewRelation
	err := s.relations.FindOne(ctx,
		bson.D{{Key: "id", Value: id}},
		options.FindOne().SetProjection(relationProjection),
	).Decode(&rel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("relation %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching relation %s: %w", id, err)
	}
	return &rel, nil
}

func (s *MongoStore) ListRelations(ctx context.Context, opts core.ListRelationsOptions) ([]*core.ViewRelation, error) {
	filter := bson.D{}
	if opts.ViewID != nil {
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "id_view1", Value: *opts.ViewID}},
			bson.D{{Key: "id_view2", Value: *opts.ViewID}},
		}})
	}
	if opts.Search != "" {
		filter = append(filter, bson.E{Key: "relation", Value: bson.D{
			{Key: "$regex", Value: opts.Search},
			{Key: "$options", Value: "i"},
		}})
	}

	cursor, err := s.relations.Find(ctx, filter,
		options.Find().SetProjection(relationProjection),
	)
	if err != nil {
		return nil, fmt.Errorf("listing relations: %w", err)
	}
	defer cursor.Close(ctx)

	relations := []*core.ViewRelation{}
	if err := cursor.All(ctx, &relations); err != nil {
		return nil, fmt.Errorf("decoding relations: %w", err)
	}
	return relations, nil
}

func (s *MongoStore) UpdateRelation(ctx context.Context, id string, patch core.RelationUpdate) (*core.ViewRelation, error) {
	set := bson.D{}
	if patch.Relation != nil {
		set = append(set, bson.E{Key: "relation", Value: *patch.Relation})
	}
	if patch.Relation2 != nil {
		set = append(set, bson.E{Key: "relation2", Value: *patch.Relation2})
	}
	if patch.EdgeWeight != nil {
		set = append(set, bson.E{Key: "edge_weight", Value: *patch.EdgeWeight})
	}
	if len(set) == 0 {
		return nil, core.ErrNoFields
	}

	res, err := s.relations.UpdateOne(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return nil, fmt.Errorf("updating relation %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("relation %s: %w", id, core.ErrNotFound)
	}
	return s.GetRelation(ctx, id)
}

func (s *MongoStore) DeleteRelation(ctx context.Context, id string) error {
	res, err := s.relations.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return fmt.Errorf("deleting relation %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("relation %s: %w", id, core.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) GraphData(ctx context.Context) (*core.GraphData, error) {
	views, err := s.ListViews(ctx, core.ListViewsOptions{})
	if err != nil {
		return nil, err
	}
	relations, err := s.ListRelations(ctx, core.ListRelationsOptions{})
	if err != nil {
		return nil, err
	}
	return core.BuildGraph(views, relations), nil
}

func (s *MongoStore) ClearAll(ctx context.Context) error {
	if _, err := s.views.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clearing views: %w", err)
	}
	if _, err := s.relations.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clearing relations: %w", err)
	}
	return nil
}

func (s *MongoStore) Stats(ctx context.Context) (*core.Stats, error) {
	viewsCount, err := s.views.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("counting views: %w", err)
	}
	relationsCount, err := s.relations.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("counting relations: %w", err)
	}
	return &core.Stats{ViewsCount: viewsCount, RelationsCount: relationsCount}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
