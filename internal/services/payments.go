package services

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tanvirhossain/contesthub/internal/models"
)

type PaymentService struct {
	contests *mongo.Collection
	timeout  time.Duration
}

func NewPaymentService(db *mongo.Database, stripeKey string, timeout time.Duration) *PaymentService {
	stripe.Key = stripeKey
	return &PaymentService{contests: db.Collection("contests"), timeout: timeout}
}

// CreateEntryIntent creates a Stripe PaymentIntent for the contest's
// entry fee and returns its client secret for the frontend to confirm.
func (s *PaymentService) CreateEntryIntent(ctx context.Context, contestID primitive.ObjectID, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var contest models.Contest
	err := s.contests.FindOne(ctx, bson.M{"_id": contestID}).Decode(&contest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", fiber.NewError(fiber.StatusNotFound, "Contest not found")
	}
	if err != nil {
		return "", err
	}

	if contest.EntryFee <= 0 {
		return "", fiber.NewError(fiber.StatusBadRequest, "Contest has no entry fee")
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(contest.EntryFee * 100), // fee is in whole dollars
		Currency:     stripe.String(string(stripe.CurrencyUSD)),
		ReceiptEmail: stripe.String(email),
		Metadata: map[string]string{
			"contest_id": contestID.Hex(),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
