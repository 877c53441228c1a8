package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB initializes the MongoDB connection.
func ConnectDB(uri string, mode string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	if mode == "atlas" {
		fmt.Println("🌐 Successfully connected to MongoDB Atlas")
	} else {
		fmt.Println("🏠 Successfully connected to Local MongoDB")
	}

	return client, nil
}

// EnsureIndexes creates the unique indexes the invariants rely on: product
// codes, category slugs, user emails and one cart per user.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"products":    {Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		"categories":  {Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		"users":       {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"carts":       {Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		"orders":      {Keys: bson.D{{Key: "order_id", Value: 1}}, Options: unique},
		"promo_codes": {Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
	}

	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("error creating index on %s: %w", coll, err)
		}
	}
	return nil
}
