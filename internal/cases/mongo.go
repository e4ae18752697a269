// internal/cases/mongo.go
package cases

import (
	"context"
	stderrors "errors"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository stores each case as one document keyed by its id.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Create(ctx context.Context, c *models.Case) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.NewValidationError("case " + c.ID + " already exists")
		}
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Case, error) {
	var c models.Case
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.NewCaseNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("get_case", err)
	}
	return &c, nil
}

func (r *MongoRepository) Save(ctx context.Context, c *models.Case) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return errors.NewDatabaseQueryFailedError("save_case", err)
	}
	if res.MatchedCount == 0 {
		return errors.NewCaseNotFoundError(c.ID)
	}
	return nil
}
