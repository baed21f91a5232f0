package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation request lifecycle: pending → inprogress → done | canceled.
// A donor claiming a request moves it to inprogress; only the original
// requester (or a privileged role) resolves it from there.
const (
	RequestPending    = "pending"
	RequestInProgress = "inprogress"
	RequestDone       = "done"
	RequestCanceled   = "canceled"
)

type DonationRequest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RequesterName     string             `bson:"requesterName,omitempty" json:"requesterName,omitempty"`
	RequesterEmail    string             `bson:"requesterEmail" json:"requesterEmail"`
	RecipientName     string             `bson:"recipientName,omitempty" json:"recipientName,omitempty"`
	RecipientDistrict string             `bson:"recipientDistrict,omitempty" json:"recipientDistrict,omitempty"`
	RecipientUpazila  string             `bson:"recipientUpazila,omitempty" json:"recipientUpazila,omitempty"`
	HospitalName      string             `bson:"hospitalName,omitempty" json:"hospitalName,omitempty"`
	FullAddress       string             `bson:"fullAddress,omitempty" json:"fullAddress,omitempty"`
	BloodGroup        string             `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	DonationDate      string             `bson:"donationDate,omitempty" json:"donationDate,omitempty"`
	DonationTime      string             `bson:"donationTime,omitempty" json:"donationTime,omitempty"`
	RequestMessage    string             `bson:"requestMessage,omitempty" json:"requestMessage,omitempty"`
	Status            string             `bson:"status" json:"status"`
	DonorName         *string            `bson:"donorName" json:"donorName"`
	DonorEmail        *string            `bson:"donorEmail" json:"donorEmail"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
