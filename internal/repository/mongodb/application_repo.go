package mongodb

import (
	"context"
	"time"

	"go-careers-cms/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type applicationRepo struct {
	c *mongo.Collection
}

// NewApplicationRepository creates an application repository.
func NewApplicationRepository(db *mongo.Database) domain.ApplicationRepository {
	return &applicationRepo{c: db.Collection(collApplications)}
}

// Create inserts a new application. A unique-index violation on
// (email, career) surfaces as domain.ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	now := time.Now().UTC()
	app.ID = primitive.NewObjectID()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	_, err := r.c.InsertOne(ctx, app)
	return mapWriteErr(err)
}

func (r *applicationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Application, error) {
	var app domain.Application
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return nil, mapFindErr(err)
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	return r.find(ctx, bson.M{})
}

func (r *applicationRepo) ListByCareer(ctx context.Context, careerID primitive.ObjectID) ([]domain.Application, error) {
	return r.find(ctx, bson.M{"career": careerID})
}

func (r *applicationRepo) find(ctx context.Context, query bson.M) ([]domain.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}) // newest first
	cur, err := r.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []domain.Application
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Application, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*domain.Application, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var app domain.Application
	if err := r.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&app); err != nil {
		return nil, mapFindErr(err)
	}
	return &app, nil
}

func (r *applicationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Exists(ctx context.Context, email string, careerID *primitive.ObjectID) (bool, error) {
	query := bson.M{"email": email}
	if careerID != nil {
		query["career"] = *careerID
	} else {
		query["career"] = bson.M{"$exists": false}
	}
	n, err := r.c.CountDocuments(ctx, query, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *applicationRepo) Count(ctx context.Context) (int64, error) {
	return r.c.CountDocuments(ctx, bson.M{})
}
