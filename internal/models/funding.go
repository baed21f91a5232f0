package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Funding is an append-only record of a monetary contribution. Amount is the
// charged value in dollars; the Stripe payment intent behind it is created in
// a separate step and not linked transactionally.
type Funding struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Email  string             `bson:"email,omitempty" json:"email,omitempty"`
	Amount float64            `bson:"amount" json:"amount"`
	Date   time.Time          `bson:"date" json:"date"`
}
