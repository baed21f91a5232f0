package services

import (
	"context"
	"math"
	"time"

	"github.com/arzan03/BloodAid/internal/models"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var fundingCollection *mongo.Collection

// MinimumChargeCents is Stripe's floor for a card charge ($0.50).
const MinimumChargeCents = 50

// InitFundingService binds the service to the fundings collection and
// configures the Stripe client.
func InitFundingService(database *mongo.Database, stripeKey string) {
	fundingCollection = database.Collection("fundings")
	stripe.Key = stripeKey
}

// AmountToCents converts a dollar amount to integer minor units, rounding to
// the nearest cent.
func AmountToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreatePaymentIntent creates a pending card payment on the gateway and
// returns the client-side completion secret.
func CreatePaymentIntent(amount float64) (string, error) {
	cents := AmountToCents(amount)
	if cents < MinimumChargeCents {
		return "", ErrAmountTooSmall
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(cents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// RecordFunding appends a funding entry with a server-assigned date.
func RecordFunding(ctx context.Context, funding models.Funding) (*mongo.InsertOneResult, error) {
	funding.ID = primitive.NewObjectID()
	funding.Email = NormalizeEmail(funding.Email)
	funding.Date = time.Now()

	return fundingCollection.InsertOne(ctx, funding)
}

// ListFundings returns all funding entries, newest first.
func ListFundings(ctx context.Context) ([]models.Funding, error) {
	opts := options.Find().SetSort(bson.M{"date": -1})
	cursor, err := fundingCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	fundings := make([]models.Funding, 0)
	if err := cursor.All(ctx, &fundings); err != nil {
		return nil, err
	}
	return fundings, nil
}

// TotalFunding sums every funding amount, returning 0 for an empty ledger.
func TotalFunding(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	cursor, err := fundingCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
