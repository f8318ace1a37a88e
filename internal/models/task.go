package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a submission record keyed by contest and participant.
type Task struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ContestID     primitive.ObjectID `bson:"contestId" json:"contestId"`
	ParticipantID primitive.ObjectID `bson:"participantId" json:"participantId"`
	Task          string             `bson:"task" json:"task"`
	SubmittedAt   time.Time          `bson:"submitted_at" json:"submitted_at"`
}
