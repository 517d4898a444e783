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

type serviceRepo struct {
	c *mongo.Collection
}

// NewServiceRepository creates a service-section repository.
func NewServiceRepository(db *mongo.Database) domain.ServiceRepository {
	return &serviceRepo{c: db.Collection(collServices)}
}

func (r *serviceRepo) Create(ctx context.Context, section *domain.ServiceSection) error {
	now := time.Now().UTC()
	section.ID = primitive.NewObjectID()
	section.Version = 1
	section.CreatedAt = now
	section.UpdatedAt = now

	_, err := r.c.InsertOne(ctx, section)
	return mapWriteErr(err)
}

func (r *serviceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ServiceSection, error) {
	var section domain.ServiceSection
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&section); err != nil {
		return nil, mapFindErr(err)
	}
	return &section, nil
}

func (r *serviceRepo) GetByTitle(ctx context.Context, titleEn string) (*domain.ServiceSection, error) {
	var section domain.ServiceSection
	if err := r.c.FindOne(ctx, bson.M{"header.title.en": titleEn}).Decode(&section); err != nil {
		return nil, mapFindErr(err)
	}
	return &section, nil
}

func (r *serviceRepo) List(ctx context.Context) ([]domain.ServiceSection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sections []domain.ServiceSection
	if err := cur.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *serviceRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.ServiceSection, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sections []domain.ServiceSection
	if err := cur.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// ReplaceVersioned persists the whole section guarded by the version it was
// read at. Concurrent writers lose the race and get ErrVersionConflict; the
// usecase re-reads and retries once.
func (r *serviceRepo) ReplaceVersioned(ctx context.Context, section *domain.ServiceSection) error {
	readVersion := section.Version
	section.Version = readVersion + 1
	section.UpdatedAt = time.Now().UTC()

	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": section.ID, "version": readVersion}, section)
	if err != nil {
		section.Version = readVersion
		return mapWriteErr(err)
	}
	if res.MatchedCount == 0 {
		section.Version = readVersion
		// Distinguish a missing document from a stale version.
		n, countErr := r.c.CountDocuments(ctx, bson.M{"_id": section.ID}, options.Count().SetLimit(1))
		if countErr == nil && n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *serviceRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *serviceRepo) Count(ctx context.Context) (int64, error) {
	return r.c.CountDocuments(ctx, bson.M{})
}
