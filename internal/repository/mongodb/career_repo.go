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

type careerRepo struct {
	c *mongo.Collection
}

// NewCareerRepository creates a career repository on the given database.
func NewCareerRepository(db *mongo.Database) domain.CareerRepository {
	return &careerRepo{c: db.Collection(collCareers)}
}

func (r *careerRepo) Create(ctx context.Context, career *domain.Career) error {
	now := time.Now().UTC()
	career.ID = primitive.NewObjectID()
	career.CreatedAt = now
	career.UpdatedAt = now

	_, err := r.c.InsertOne(ctx, career)
	return mapWriteErr(err)
}

func (r *careerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Career, error) {
	var career domain.Career
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&career); err != nil {
		return nil, mapFindErr(err)
	}
	return &career, nil
}

func (r *careerRepo) List(ctx context.Context, filter domain.CareerFilter) ([]domain.Career, error) {
	query := bson.M{}

	leg := "en"
	if filter.Lang == "ar" {
		leg = "ar"
	}
	if filter.Department != "" {
		query["department."+leg] = filter.Department
	}
	if filter.Location != "" {
		query["location."+leg] = filter.Location
	}
	if filter.EmploymentType != "" {
		query["employment_type."+leg] = filter.EmploymentType
	}
	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var careers []domain.Career
	if err := cur.All(ctx, &careers); err != nil {
		return nil, err
	}
	return careers, nil
}

func (r *careerRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Career, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var careers []domain.Career
	if err := cur.All(ctx, &careers); err != nil {
		return nil, err
	}
	return careers, nil
}

func (r *careerRepo) Update(ctx context.Context, career *domain.Career) error {
	career.UpdatedAt = time.Now().UTC()
	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": career.ID}, career)
	if err != nil {
		return mapWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *careerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *careerRepo) Count(ctx context.Context) (int64, error) {
	return r.c.CountDocuments(ctx, bson.M{})
}
