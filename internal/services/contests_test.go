package services

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/tanvirhossain/contesthub/internal/models"
)

func TestListPipelineShape(t *testing.T) {
	expected := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "status", Value: "accepted"},
			{Key: "type", Value: bson.D{
				{Key: "$regex", Value: "quiz"},
				{Key: "$options", Value: "i"},
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "type", Value: 1},
			{Key: "image", Value: 1},
			{Key: "description", Value: 1},
			{Key: "participantsCount", Value: bson.D{{Key: "$size", Value: "$participants"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "participantsCount", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	assert.Equal(t, expected, listPipeline("quiz"))
}

func TestListPipelineEmptySearchMatchesAll(t *testing.T) {
	p := listPipeline("")

	match, ok := p[0][0].Value.(bson.D)
	require.True(t, ok)
	typeFilter, ok := match[1].Value.(bson.D)
	require.True(t, ok)
	assert.Equal(t, "", typeFilter[0].Value, "empty search must compile to a match-all regex")
}

func TestListPipelineEscapesRegexMeta(t *testing.T) {
	p := listPipeline("c++")

	match := p[0][0].Value.(bson.D)
	typeFilter := match[1].Value.(bson.D)
	assert.Equal(t, `c\+\+`, typeFilter[0].Value, "search text is a substring, not a user-supplied regex")
}

func TestPopularPipelineLimitsToSix(t *testing.T) {
	p := popularPipeline()

	require.Len(t, p, 4)
	assert.Equal(t, bson.D{{Key: "$limit", Value: 6}}, p[3])
}

func TestPopularPipelineKeepsDeterministicSort(t *testing.T) {
	p := popularPipeline()

	sort := p[2][0].Value.(bson.D)
	assert.Equal(t, "participantsCount", sort[0].Key)
	assert.Equal(t, -1, sort[0].Value)
	assert.Equal(t, "_id", sort[1].Key)
	assert.Equal(t, 1, sort[1].Value)
}

func TestParticipantsWithTasks(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	contestID := primitive.NewObjectID()

	tasks := []models.Task{
		{ContestID: contestID, ParticipantID: b, Task: "Logo design"},
	}

	got := participantsWithTasks([]primitive.ObjectID{a, b, c}, tasks)

	require.Len(t, got, 3)
	assert.Equal(t, a, got[0].ID)
	assert.Nil(t, got[0].Task, "participant without a submission gets a null task")
	assert.Equal(t, b, got[1].ID)
	require.NotNil(t, got[1].Task)
	assert.Equal(t, "Logo design", *got[1].Task)
	assert.Nil(t, got[2].Task)
}

func TestParticipantsWithTasksEmpty(t *testing.T) {
	got := participantsWithTasks(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestForCreator(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	contestID := primitive.NewObjectID()
	creatorID := primitive.NewObjectID()

	mt.Run("absent contest is 404", func(mt *mtest.T) {
		svc := NewContestService(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contestDB.contests", mtest.FirstBatch))

		_, err := svc.ForCreator(context.Background(), contestID, creatorID)

		var fe *fiber.Error
		require.ErrorAs(mt, err, &fe)
		assert.Equal(mt, fiber.StatusNotFound, fe.Code)
	})

	mt.Run("creator mismatch is 403", func(mt *mtest.T) {
		svc := NewContestService(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contestDB.contests", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: contestID},
			{Key: "title", Value: "Art Quiz"},
			{Key: "creator", Value: primitive.NewObjectID()},
			{Key: "participants", Value: bson.A{}},
		}))

		_, err := svc.ForCreator(context.Background(), contestID, creatorID)

		var fe *fiber.Error
		require.ErrorAs(mt, err, &fe)
		assert.Equal(mt, fiber.StatusForbidden, fe.Code)
	})

	mt.Run("owner gets participants joined with tasks", func(mt *mtest.T) {
		svc := NewContestService(mt.DB, time.Second)
		a := primitive.NewObjectID()
		b := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "contestDB.contests", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: contestID},
				{Key: "title", Value: "Art Quiz"},
				{Key: "description", Value: "Draw and guess"},
				{Key: "prizeMoney", Value: 500},
				{Key: "creator", Value: creatorID},
				{Key: "participants", Value: bson.A{a, b}},
			}),
			mtest.CreateCursorResponse(0, "contestDB.tasks", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "contestId", Value: contestID},
				{Key: "participantId", Value: b},
				{Key: "task", Value: "Logo design"},
			}),
		)

		view, err := svc.ForCreator(context.Background(), contestID, creatorID)
		require.NoError(mt, err)

		assert.Equal(mt, contestID, view.ID)
		assert.Equal(mt, "Art Quiz", view.Title)
		assert.Equal(mt, int64(500), view.PrizeMoney)
		require.Len(mt, view.Participants, 2)
		assert.Equal(mt, a, view.Participants[0].ID)
		assert.Nil(mt, view.Participants[0].Task)
		require.NotNil(mt, view.Participants[1].Task)
		assert.Equal(mt, "Logo design", *view.Participants[1].Task)
	})
}
