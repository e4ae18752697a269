// internal/cases/mongo_test.go
package cases

import (
	"context"
	"testing"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		err := NewMongoRepository(mt.Coll).Create(context.Background(), &models.Case{ID: "case-1", Title: "t"})
		assert.NoError(mt, err)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		err := NewMongoRepository(mt.Coll).Create(context.Background(), &models.Case{ID: "case-1"})
		require.Error(mt, err)
		assert.Equal(mt, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)
	})

	mt.Run("get", func(mt *mtest.T) {
		created := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "case-1"},
			{Key: "client_id", Value: "client-1"},
			{Key: "title", Value: "Deposit recovery"},
			{Key: "status", Value: "in_progress"},
			{Key: "progress", Value: 40},
			{Key: "created_at", Value: created},
			{Key: "insights", Value: bson.D{{Key: "complexity", Value: "low"}, {Key: "success_probability", Value: 0.7}}},
		}))

		c, err := NewMongoRepository(mt.Coll).Get(context.Background(), "case-1")
		require.NoError(mt, err)
		assert.Equal(mt, "client-1", c.ClientID)
		assert.Equal(mt, models.CaseInProgress, c.Status)
		assert.Equal(mt, 40, c.Progress)
		assert.Equal(mt, "low", c.Insights.Complexity)
		assert.True(mt, created.Equal(c.CreatedAt))
	})

	mt.Run("get missing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewMongoRepository(mt.Coll).Get(context.Background(), "nope")
		require.Error(mt, err)
		assert.Equal(mt, errors.ErrCodeCaseNotFound, errors.AsStandardError(err).Code)
	})

	mt.Run("save unmatched", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := NewMongoRepository(mt.Coll).Save(context.Background(), &models.Case{ID: "gone"})
		require.Error(mt, err)
		assert.Equal(mt, errors.ErrCodeCaseNotFound, errors.AsStandardError(err).Code)
	})

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})
		assert.NoError(mt, NewMongoRepository(mt.Coll).Save(context.Background(), &models.Case{ID: "case-1"}))
	})
}

var _ Repository = (*MongoRepository)(nil)
