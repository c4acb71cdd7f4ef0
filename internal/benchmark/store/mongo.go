package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collectionWorld   = "world"
	collectionFortune = "fortune"
)

type MongoOptions struct {
	URI      string
	Database string
	MaxPool  uint64
}

type worldDocument struct {
	Key          int `bson:"_id"`
	ID           int `bson:"id"`
	RandomNumber int `bson:"randomNumber"`
}

type fortuneDocument struct {
	Key     int    `bson:"_id"`
	ID      int    `bson:"id"`
	Message string `bson:"message"`
}

type MongoStore struct {
	client   *mongo.Client
	worlds   *mongo.Collection
	fortunes *mongo.Collection
}

func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.MaxPool > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPool)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(opts.Database)

	return &MongoStore{
		client:   client,
		worlds:   db.Collection(collectionWorld),
		fortunes: db.Collection(collectionFortune),
	}, nil
}

func (s *MongoStore) FindAllFortunes(ctx context.Context) ([]entity.Fortune, error) {
	cursor, err := s.fortunes.Find(ctx, bson.D{})
	if err != nil {
		return nil, connErr(fmt.Errorf("failed to find fortunes: %w", err))
	}

	var docs []fortuneDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, connErr(fmt.Errorf("failed to decode fortunes: %w", err))
	}

	fortunes := make([]entity.Fortune, len(docs))
	for i, doc := range docs {
		fortunes[i] = entity.Fortune{ID: doc.ID, Message: doc.Message}
	}

	return fortunes, nil
}

func (s *MongoStore) FindWorlds(ctx context.Context, ids []int) ([]entity.World, error) {
	if len(ids) == 1 {
		var doc worldDocument
		err := s.worlds.FindOne(ctx, bson.D{{Key: "_id", Value: ids[0]}}).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkgerror.ErrNotFound
		}
		if err != nil {
			return nil, connErr(fmt.Errorf("failed to find world: %w", err))
		}
		return []entity.World{{ID: doc.ID, RandomNumber: doc.RandomNumber}}, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: uniqueIDs(ids)}}}}
	cursor, err := s.worlds.Find(ctx, filter)
	if err != nil {
		return nil, connErr(fmt.Errorf("failed to find worlds: %w", err))
	}

	var docs []worldDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, connErr(fmt.Errorf("failed to decode worlds: %w", err))
	}

	byID := make(map[int]int, len(docs))
	for _, doc := range docs {
		byID[doc.Key] = doc.RandomNumber
	}

	worlds := make([]entity.World, len(ids))
	for i, id := range ids {
		n, ok := byID[id]
		if !ok {
			return nil, pkgerror.ErrNotFound
		}
		worlds[i] = entity.World{ID: id, RandomNumber: n}
	}

	return worlds, nil
}

func (s *MongoStore) ReplaceWorlds(ctx context.Context, worlds []entity.World) error {
	updates := latestByID(worlds)
	if len(updates) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, len(updates))
	for i, w := range updates {
		models[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: w.ID}}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{{Key: "randomNumber", Value: w.RandomNumber}}}})
	}

	res, err := s.worlds.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return connErr(fmt.Errorf("failed to update worlds: %w", err))
	}
	if res.MatchedCount < int64(len(updates)) {
		return pkgerror.ErrNotFound
	}

	return nil
}

func (s *MongoStore) AllWorlds(ctx context.Context) ([]entity.World, error) {
	cursor, err := s.worlds.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, connErr(fmt.Errorf("failed to find worlds: %w", err))
	}

	var docs []worldDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, connErr(fmt.Errorf("failed to decode worlds: %w", err))
	}

	worlds := make([]entity.World, len(docs))
	for i, doc := range docs {
		worlds[i] = entity.World{ID: doc.ID, RandomNumber: doc.RandomNumber}
	}

	return worlds, nil
}

func (s *MongoStore) Seed(ctx context.Context, fortunes []entity.Fortune, worlds []entity.World) error {
	for _, coll := range []*mongo.Collection{s.worlds, s.fortunes} {
		if err := coll.Drop(ctx); err != nil {
			return fmt.Errorf("failed to drop %s: %w", coll.Name(), err)
		}
	}

	if len(fortunes) > 0 {
		docs := make([]any, len(fortunes))
		for i, f := range fortunes {
			docs[i] = fortuneDocument{Key: f.ID, ID: f.ID, Message: f.Message}
		}
		if _, err := s.fortunes.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert fortunes: %w", err)
		}
	}

	if len(worlds) > 0 {
		docs := make([]any, len(worlds))
		for i, w := range worlds {
			docs[i] = worldDocument{Key: w.ID, ID: w.ID, RandomNumber: w.RandomNumber}
		}
		if _, err := s.worlds.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert worlds: %w", err)
		}
	}

	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}
