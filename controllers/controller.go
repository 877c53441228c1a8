package controllers

import (
	"context"
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stitchlk-backend/events"
	"stitchlk-backend/models"
)

var (
	errHashPassword = errors.New("Failed to hash password")
	errEmailTaken   = errors.New("Email already registered")
)

// Controller holds the dependencies shared by every handler.
type Controller struct {
	DB              *mongo.Database
	Cld             *cloudinary.Cloudinary
	PasetoSecretKey []byte
	Log             zerolog.Logger
	Events          *events.Publisher
	ShopWhatsApp    string
}

// NextSequence atomically allocates the next id for the named collection
// using a $inc on the counters document.
func (ctrl *Controller) NextSequence(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := ctrl.DB.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// CategoryDeliveryCost implements services.CategoryCostLookup against the
// categories collection. A category without a configured cost reports ok=false.
func (ctrl *Controller) CategoryDeliveryCost(ctx context.Context, category string) (float64, bool, error) {
	var cat models.Category
	err := ctrl.DB.Collection("categories").FindOne(ctx, bson.M{"name": category}).Decode(&cat)
	if err == mongo.ErrNoDocuments {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if cat.DeliveryCost <= 0 {
		return 0, false, nil
	}
	return cat.DeliveryCost, true, nil
}
