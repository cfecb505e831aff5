package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/timetable-maker/pkg/config"
	"github.com/travigo/timetable-maker/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lineGroupsCollection = "line_groups"

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

type mongoStore struct {
	instance *MongoInstance
}

func ConnectMongoDB(cfg config.MongoDBConfig) (*MongoInstance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Connection))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(cfg.Database),
	}

	createIndexes()

	return MongoGlobalInstance, nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}

func NewMongoStore(cfg config.MongoDBConfig) (GroupStore, error) {
	instance, err := ConnectMongoDB(cfg)
	if err != nil {
		return nil, err
	}

	return &mongoStore{instance: instance}, nil
}

func (s *mongoStore) collection() *mongo.Collection {
	return s.instance.Database.Collection(lineGroupsCollection)
}

func (s *mongoStore) List(ctx context.Context) ([]ctdf.LineGroup, error) {
	// _id is an ObjectID assigned on first insert, so it orders by insertion
	cursor, err := s.collection().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	groups := []ctdf.LineGroup{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

func (s *mongoStore) Upsert(ctx context.Context, group *ctdf.LineGroup) error {
	_, err := s.collection().ReplaceOne(ctx, bson.M{"id": group.ID}, group, options.Replace().SetUpsert(true))

	log.Debug().Str("id", group.ID).Err(err).Msg("Upserted group document")

	return err
}

func (s *mongoStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrGroupNotFound
	}

	return nil
}

func (s *mongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.instance.Client.Disconnect(ctx)
	if MongoGlobalInstance == s.instance {
		MongoGlobalInstance = nil
	}

	return err
}
