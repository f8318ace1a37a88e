package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

type Contest struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string               `bson:"title" json:"title"`
	Type         string               `bson:"type" json:"type"`
	Description  string               `bson:"description" json:"description"`
	Image        string               `bson:"image" json:"image"`
	Status       string               `bson:"status" json:"status"`
	Deadline     time.Time            `bson:"deadline" json:"deadline"`
	PrizeMoney   int64                `bson:"prizeMoney" json:"prizeMoney"`
	EntryFee     int64                `bson:"entryFee,omitempty" json:"entryFee,omitempty"`
	Creator      primitive.ObjectID   `bson:"creator" json:"creator"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"`
	Winner       *primitive.ObjectID  `bson:"winner,omitempty" json:"winner,omitempty"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
}

// ContestSummary is the projection produced by the listing pipelines.
// participantsCount is computed by the store, never persisted.
type ContestSummary struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	Title             string             `bson:"title" json:"title"`
	Type              string             `bson:"type" json:"type"`
	Image             string             `bson:"image" json:"image"`
	Description       string             `bson:"description" json:"description"`
	ParticipantsCount int                `bson:"participantsCount" json:"participantsCount"`
}

// ContestDetail is a contest with its winner reference resolved to the
// stored user. Winner is null when no winner has been awarded yet.
type ContestDetail struct {
	Contest
	Winner *User `bson:"-" json:"winner"`
}

// ParticipantTask pairs a participant with the name of their submitted
// task, or null if they have not submitted one.
type ParticipantTask struct {
	ID   primitive.ObjectID `json:"id"`
	Task *string            `json:"task"`
}

// CreatorContestView is the reshaped contest a creator sees for their
// own contest.
type CreatorContestView struct {
	ID           primitive.ObjectID  `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Deadline     time.Time           `json:"deadline"`
	PrizeMoney   int64               `json:"prizeMoney"`
	Winner       *primitive.ObjectID `json:"winner"`
	Participants []ParticipantTask   `json:"participants"`
}
