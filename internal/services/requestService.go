package services

import (
	"context"
	"errors"
	"time"

	"github.com/arzan03/BloodAid/internal/models"
	"github.com/arzan03/BloodAid/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var requestCollection *mongo.Collection

// InitRequestService binds the service to the donationRequests collection.
func InitRequestService(database *mongo.Database) {
	requestCollection = database.Collection("donationRequests")
}

// CreateRequest inserts a new donation request. Status, donor fields and
// createdAt are forced server-side regardless of what the caller sent.
func CreateRequest(ctx context.Context, req models.DonationRequest) (*mongo.InsertOneResult, error) {
	req.ID = primitive.NewObjectID()
	req.RequesterEmail = NormalizeEmail(req.RequesterEmail)
	req.Status = models.RequestPending
	req.DonorName = nil
	req.DonorEmail = nil
	req.CreatedAt = time.Now()

	return requestCollection.InsertOne(ctx, req)
}

// ListPublicRequests returns every pending request, newest first.
func ListPublicRequests(ctx context.Context) ([]models.DonationRequest, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := requestCollection.Find(ctx, bson.M{"status": models.RequestPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := make([]models.DonationRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ListRequests returns one page of requests plus the total count. Donors see
// only their own requests; volunteers and admins see everything matching the
// optional status filter.
func ListRequests(ctx context.Context, me models.User, status string, page, limit int64) ([]models.DonationRequest, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	if me.Role == models.RoleDonor {
		query["requesterEmail"] = me.Email
	}

	skip, limit := PageSkip(page, limit)
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(skip).
		SetLimit(limit)

	return utils.Pair(
		func() ([]models.DonationRequest, error) {
			cursor, err := requestCollection.Find(ctx, query, opts)
			if err != nil {
				return nil, err
			}
			defer cursor.Close(ctx)

			requests := make([]models.DonationRequest, 0)
			if err := cursor.All(ctx, &requests); err != nil {
				return nil, err
			}
			return requests, nil
		},
		func() (int64, error) {
			return requestCollection.CountDocuments(ctx, query)
		},
	)
}

// GetRequestByID returns the request, or nil when no record exists.
func GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.DonationRequest, error) {
	var req models.DonationRequest
	err := requestCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// canModify reports whether the caller owns the request or is an admin.
func canModify(me models.User, req *models.DonationRequest) bool {
	isOwner := req != nil && req.RequesterEmail == me.Email
	return isOwner || me.Role == models.RoleAdmin
}

// UpdateRequest applies field updates to a request the caller owns (or any
// request, for admins). Status is stripped: transitions go through
// ClaimRequest and SetRequestStatus only.
func UpdateRequest(ctx context.Context, me models.User, id primitive.ObjectID, updates map[string]interface{}) (*mongo.UpdateResult, error) {
	req, err := GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(me, req) {
		return nil, ErrForbidden
	}

	for _, field := range []string{"_id", "status", "donorName", "donorEmail", "createdAt"} {
		delete(updates, field)
	}

	return requestCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
}

// DeleteRequest removes a request under the same ownership rule as UpdateRequest.
func DeleteRequest(ctx context.Context, me models.User, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	req, err := GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(me, req) {
		return nil, ErrForbidden
	}

	return requestCollection.DeleteOne(ctx, bson.M{"_id": id})
}

// ClaimRequest transitions a request from pending to inprogress and records
// the claiming donor. The status guard lives in the update filter so the
// store resolves concurrent claims: only one caller matches, the rest get a
// zero-match result.
func ClaimRequest(ctx context.Context, id primitive.ObjectID, donorName, donorEmail string) (*mongo.UpdateResult, error) {
	return requestCollection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.RequestPending},
		bson.M{"$set": bson.M{
			"status":     models.RequestInProgress,
			"donorName":  donorName,
			"donorEmail": NormalizeEmail(donorEmail),
		}},
	)
}

// CanOwnerTransition reports whether a non-privileged requester may move
// their request from current to next. Owners only resolve an in-progress
// request, to done or canceled.
func CanOwnerTransition(current, next string) bool {
	if current != models.RequestInProgress {
		return false
	}
	return next == models.RequestDone || next == models.RequestCanceled
}

// SetRequestStatus applies a status transition. Volunteers and admins may set
// any status at any time; everyone else is bound by CanOwnerTransition on
// their own requests.
func SetRequestStatus(ctx context.Context, me models.User, id primitive.ObjectID, status string) (*mongo.UpdateResult, error) {
	setStatus := func() (*mongo.UpdateResult, error) {
		return requestCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	}

	if me.IsPrivileged() {
		return setStatus()
	}

	req, err := GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil || req.RequesterEmail != me.Email {
		return nil, ErrForbidden
	}
	if !CanOwnerTransition(req.Status, status) {
		return nil, ErrInvalidTransition
	}

	return setStatus()
}
