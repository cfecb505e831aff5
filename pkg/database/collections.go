package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createLineGroupsIndexes()
}

func createLineGroupsIndexes() {
	lineGroupsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := GetCollection(lineGroupsCollection).Indexes().CreateMany(context.Background(), lineGroupsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
