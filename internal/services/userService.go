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

var userCollection *mongo.Collection

// InitUserService binds the service to the users collection.
func InitUserService(database *mongo.Database) {
	userCollection = database.Collection("users")
}

// RegisterInput is the profile payload sent on first login (and on every
// subsequent login, which refreshes the profile).
type RegisterInput struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

// RegisterUser upserts a user by lowercased email. Profile fields and
// updatedAt are refreshed on every call; role, status and createdAt are set
// only when the record is first inserted.
func RegisterUser(ctx context.Context, input RegisterInput) (models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" {
		return models.User{}, ErrEmailRequired
	}

	name := input.Name
	if name == "" {
		name = "Unknown"
	}

	now := time.Now()
	filter := bson.M{"email": email}
	update := bson.M{
		"$set": bson.M{
			"email":      email,
			"name":       name,
			"avatar":     input.Avatar,
			"bloodGroup": input.BloodGroup,
			"district":   input.District,
			"upazila":    input.Upazila,
			"updatedAt":  now,
		},
		"$setOnInsert": bson.M{
			"role":      models.RoleDonor,
			"status":    models.StatusActive,
			"createdAt": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := userCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		return models.User{}, err
	}

	var saved models.User
	if err := userCollection.FindOne(ctx, filter).Decode(&saved); err != nil {
		return models.User{}, err
	}
	return saved, nil
}

// SearchDonors lists active donors, optionally narrowed by exact blood
// group, district and upazila matches. Public endpoint, so the password
// field (if an older record carries one) is projected out.
func SearchDonors(ctx context.Context, bloodGroup, district, upazila string) ([]models.User, error) {
	query := bson.M{"role": models.RoleDonor, "status": models.StatusActive}
	if bloodGroup != "" {
		query["bloodGroup"] = bloodGroup
	}
	if district != "" {
		query["district"] = district
	}
	if upazila != "" {
		query["upazila"] = upazila
	}

	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := userCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	donors := make([]models.User, 0)
	if err := cursor.All(ctx, &donors); err != nil {
		return nil, err
	}
	return donors, nil
}

// GetUserByEmail looks up a user by normalized email.
func GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile applies caller-supplied fields to the caller's own record.
// Identity and administrative fields can never be changed through this path.
func UpdateProfile(ctx context.Context, email string, updates map[string]interface{}) (*mongo.UpdateResult, error) {
	for _, field := range []string{"_id", "email", "role", "status", "createdAt"} {
		delete(updates, field)
	}
	updates["updatedAt"] = time.Now()

	return userCollection.UpdateOne(
		ctx,
		bson.M{"email": NormalizeEmail(email)},
		bson.M{"$set": updates},
	)
}

// SetAvatar stores the uploaded avatar URL and returns the updated record.
func SetAvatar(ctx context.Context, email, avatarURL string) (models.User, error) {
	filter := bson.M{"email": NormalizeEmail(email)}
	update := bson.M{"$set": bson.M{"avatar": avatarURL, "updatedAt": time.Now()}}

	result, err := userCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.User{}, err
	}
	if result.MatchedCount == 0 {
		return models.User{}, ErrNotFound
	}

	var saved models.User
	if err := userCollection.FindOne(ctx, filter).Decode(&saved); err != nil {
		return models.User{}, err
	}
	return saved, nil
}

// ListUsers returns one page of users plus the total count for the filter.
// The page query and the count run in parallel.
func ListUsers(ctx context.Context, status string, page, limit int64) ([]models.User, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	skip, limit := PageSkip(page, limit)
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	return utils.Pair(
		func() ([]models.User, error) {
			cursor, err := userCollection.Find(ctx, query, opts)
			if err != nil {
				return nil, err
			}
			defer cursor.Close(ctx)

			users := make([]models.User, 0)
			if err := cursor.All(ctx, &users); err != nil {
				return nil, err
			}
			return users, nil
		},
		func() (int64, error) {
			return userCollection.CountDocuments(ctx, query)
		},
	)
}

// SetUserStatus updates a single user's account status (admin operation).
func SetUserStatus(ctx context.Context, id primitive.ObjectID, status string) (*mongo.UpdateResult, error) {
	return userCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
}

// SetUserRole updates a single user's role (admin operation).
func SetUserRole(ctx context.Context, id primitive.ObjectID, role string) (*mongo.UpdateResult, error) {
	return userCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
}
