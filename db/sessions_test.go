package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"roga/models"
	"roga/services"
)

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

func TestMongoSessionStore_AppendTurnOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	found := func(mt *mtest.T, id string) bson.D {
		return mtest.CreateCursorResponse(0, mt.DB.Name()+"."+sessionsCollection, mtest.FirstBatch, bson.D{{Key: "_id", Value: id}})
	}

	mt.Run("stores the turn before advancing the round", func(mt *mtest.T) {
		store := NewMongoSessionStore(mt.DB)
		mt.AddMockResponses(
			found(mt, "s1"),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		err := store.AppendTurn(context.Background(), models.Turn{SessionID: "s1", Round: 1, Question: "first"})
		assert.NoError(mt, err)
		assert.Equal(mt, []string{"find", "insert", "update"}, commandNames(mt))
	})

	mt.Run("missing session writes nothing", func(mt *mtest.T) {
		store := NewMongoSessionStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+sessionsCollection, mtest.FirstBatch))

		err := store.AppendTurn(context.Background(), models.Turn{SessionID: "gone", Round: 1})
		assert.ErrorIs(mt, err, services.ErrSessionNotFound)
		assert.Equal(mt, []string{"find"}, commandNames(mt))
	})

	mt.Run("turn is removed when the round cannot advance", func(mt *mtest.T) {
		store := NewMongoSessionStore(mt.DB)
		mt.AddMockResponses(
			found(mt, "s2"),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := store.AppendTurn(context.Background(), models.Turn{SessionID: "s2", Round: 2})
		assert.ErrorIs(mt, err, services.ErrSessionNotFound)
		assert.Equal(mt, []string{"find", "insert", "update", "delete"}, commandNames(mt))
	})
}
