package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tanvirhossain/contesthub/internal/models"
)

type UserService struct {
	users   *mongo.Collection
	timeout time.Duration
}

func NewUserService(db *mongo.Database, timeout time.Duration) *UserService {
	return &UserService{users: db.Collection("users"), timeout: timeout}
}

// List returns one page of users plus the total count. Pages are
// 1-indexed; out-of-range values fall back to page 1 / limit 10.
func (s *UserService) List(ctx context.Context, page, limit int64) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSkip((page - 1) * limit).SetLimit(limit)
	cursor, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// GetByEmail returns nil with no error when the email is unknown; absence
// is a valid outcome for callers, not a failure.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateOrGet inserts the user on first login and returns the stored
// record unchanged on every later call. The upsert is a single
// FindOneAndUpdate with $setOnInsert, so two concurrent first logins for
// the same email still produce exactly one document.
func (s *UserService) CreateOrGet(ctx context.Context, email string, user models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user.ID = primitive.NilObjectID
	user.Email = email
	if user.Role == "" {
		user.Role = models.RoleParticipant
	}
	user.CreatedAt = time.Now()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.User
	err := s.users.FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": user},
		opts,
	).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update merges the given fields into the user document and reports the
// matched/modified counts rather than the resulting document.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	delete(fields, "_id")
	return s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
}
