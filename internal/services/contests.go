package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tanvirhossain/contesthub/internal/models"
)

type ContestService struct {
	contests *mongo.Collection
	users    *mongo.Collection
	tasks    *mongo.Collection
	timeout  time.Duration
}

func NewContestService(db *mongo.Database, timeout time.Duration) *ContestService {
	return &ContestService{
		contests: db.Collection("contests"),
		users:    db.Collection("users"),
		tasks:    db.Collection("tasks"),
		timeout:  timeout,
	}
}

// listPipeline matches accepted contests whose type contains search as a
// case-insensitive substring (empty search matches all), projects the
// summary fields with a computed participantsCount, and sorts by count
// descending with _id as deterministic tie-break.
func listPipeline(search string) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "status", Value: models.StatusAccepted},
			{Key: "type", Value: bson.D{
				{Key: "$regex", Value: regexp.QuoteMeta(search)},
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
}

func popularPipeline() mongo.Pipeline {
	return append(listPipeline(""), bson.D{{Key: "$limit", Value: 6}})
}

// List returns accepted contests filtered by type, most popular first.
func (s *ContestService) List(ctx context.Context, search string) ([]models.ContestSummary, error) {
	return s.aggregate(ctx, listPipeline(search))
}

// Popular returns the top 6 accepted contests by participant count.
func (s *ContestService) Popular(ctx context.Context) ([]models.ContestSummary, error) {
	return s.aggregate(ctx, popularPipeline())
}

func (s *ContestService) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.ContestSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.contests.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []models.ContestSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetByID fetches one contest and resolves its winner reference to the
// full user record. A contest without a winner yet is returned with a
// null winner, not an error.
func (s *ContestService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ContestDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var contest models.Contest
	err := s.contests.FindOne(ctx, bson.M{"_id": id}).Decode(&contest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Contest not found")
	}
	if err != nil {
		return nil, err
	}

	detail := &models.ContestDetail{Contest: contest}
	if contest.Winner != nil {
		var winner models.User
		err := s.users.FindOne(ctx, bson.M{"_id": *contest.Winner}).Decode(&winner)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		if err == nil {
			detail.Winner = &winner
		}
	}
	return detail, nil
}

// ForCreator returns the creator's reshaped view of their own contest,
// with each participant joined against their submitted task for it.
func (s *ContestService) ForCreator(ctx context.Context, contestID, creatorID primitive.ObjectID) (*models.CreatorContestView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var contest models.Contest
	err := s.contests.FindOne(ctx, bson.M{"_id": contestID}).Decode(&contest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Contest not found")
	}
	if err != nil {
		return nil, err
	}

	if contest.Creator != creatorID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Access denied")
	}

	cursor, err := s.tasks.Find(ctx, bson.M{"contestId": contestID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return &models.CreatorContestView{
		ID:           contest.ID,
		Title:        contest.Title,
		Description:  contest.Description,
		Deadline:     contest.Deadline,
		PrizeMoney:   contest.PrizeMoney,
		Winner:       contest.Winner,
		Participants: participantsWithTasks(contest.Participants, tasks),
	}, nil
}

// participantsWithTasks preserves the contest's participant order and
// attaches the submitted task name where one exists.
func participantsWithTasks(participants []primitive.ObjectID, tasks []models.Task) []models.ParticipantTask {
	out := make([]models.ParticipantTask, 0, len(participants))
	for _, p := range participants {
		pt := models.ParticipantTask{ID: p}
		for _, t := range tasks {
			if t.ParticipantID == p {
				name := t.Task
				pt.Task = &name
				break
			}
		}
		out = append(out, pt)
	}
	return out
}

// ListAll is the admin listing: every contest regardless of status,
// paginated like the user listing.
func (s *ContestService) ListAll(ctx context.Context, page, limit int64) ([]models.Contest, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSkip((page - 1) * limit).SetLimit(limit)
	cursor, err := s.contests.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	contests := []models.Contest{}
	if err := cursor.All(ctx, &contests); err != nil {
		return nil, 0, err
	}

	total, err := s.contests.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return contests, total, nil
}

// Create inserts a new contest as pending. Status transitions happen in
// the admin approval flow, never here.
func (s *ContestService) Create(ctx context.Context, contest models.Contest) (*models.Contest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	contest.ID = primitive.NewObjectID()
	contest.Status = models.StatusPending
	contest.Winner = nil
	if contest.Participants == nil {
		contest.Participants = []primitive.ObjectID{}
	}
	contest.CreatedAt = time.Now()

	if _, err := s.contests.InsertOne(ctx, contest); err != nil {
		return nil, err
	}
	return &contest, nil
}
