// Package mongodb implements the repositories on the document store.
// Each entity owns one collection; all mutations rely on single-document
// atomicity only.
package mongodb

import (
	"context"
	"errors"
	"time"

	"go-careers-cms/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	collCareers      = "careers"
	collApplications = "applications"
	collServices     = "service_sections"
	collUsers        = "users"
)

func mapFindErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

// EnsureIndexes creates the unique indexes the invariants depend on:
// one application per (email, career) pair and unique user emails.
// General applications (no career reference) are exempt from the
// uniqueness constraint.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err := db.Collection(collApplications).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "career", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"career": bson.M{"$exists": true}}),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
