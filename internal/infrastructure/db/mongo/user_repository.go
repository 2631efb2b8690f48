package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asksource/admin-api/internal/core/domain"
	"github.com/asksource/admin-api/internal/core/ports"
)

const usersCollection = "admin_users"

// UserRepository persists AdminUser documents in MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// mongoAdminUser mirrors domain.AdminUser with bson tags. Timestamps are
// stored as unix seconds; zero means unset for the nullable fields.
type mongoAdminUser struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	Email                  string             `bson:"email"`
	PasswordHash           string             `bson:"password_hash"`
	FirstName              string             `bson:"first_name"`
	LastName               string             `bson:"last_name"`
	Role                   string             `bson:"role"`
	IsActive               bool               `bson:"is_active"`
	IsActivated            bool               `bson:"is_activated"`
	ActivationToken        string             `bson:"activation_token,omitempty"`
	ActivationTokenExpires int64              `bson:"activation_token_expires,omitempty"`
	LastLogin              int64              `bson:"last_login,omitempty"`
	AvatarColor            string             `bson:"avatar_color"`
	CreatedAt              int64              `bson:"created_at"`
	UpdatedAt              int64              `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	doc := mongoAdminUser{
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Role:            user.Role,
		IsActive:        user.IsActive,
		IsActivated:     user.IsActivated,
		ActivationToken: user.ActivationToken,
		AvatarColor:     user.AvatarColor,
		CreatedAt:       user.CreatedAt.Unix(),
		UpdatedAt:       user.UpdatedAt.Unix(),
	}
	if user.ActivationTokenExpires != nil {
		doc.ActivationTokenExpires = user.ActivationTokenExpires.Unix()
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// ConsumeActivationToken matches a live token and clears it in the same
// FindOneAndUpdate, so a concurrent or repeated consume of the same token
// finds nothing and fails with ErrActivationTokenInvalid.
func (r *UserRepository) ConsumeActivationToken(ctx context.Context, token string, now time.Time) (*domain.AdminUser, error) {
	filter := bson.M{
		"activation_token":         token,
		"activation_token_expires": bson.M{"$gt": now.Unix()},
	}
	update := bson.M{
		"$set": bson.M{
			"is_activated": true,
			"is_active":    true,
			"updated_at":   now.Unix(),
		},
		"$unset": bson.M{
			"activation_token":         "",
			"activation_token_expires": "",
		},
	}

	var mu mongoAdminUser
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrActivationTokenInvalid
		}
		return nil, fmt.Errorf("consume activation token: %w", err)
	}
	return toDomain(&mu), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"last_login": ts.Unix(), "updated_at": ts.Unix()},
	})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.AdminUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if input.FirstName != "" {
		set["first_name"] = input.FirstName
		set["last_name"] = input.LastName
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if input.AvatarColor != "" {
		set["avatar_color"] = input.AvatarColor
	}

	var mu mongoAdminUser
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return toDomain(&mu), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// ActivateLegacy flips the activation flags on accounts that predate the
// approval gate: one pass for accounts with a recorded login, one for
// accounts that never got an activation token.
func (r *UserRepository) ActivateLegacy(ctx context.Context) (int64, error) {
	set := bson.M{"$set": bson.M{"is_activated": true, "is_active": true}}

	loggedIn, err := r.coll.UpdateMany(ctx, bson.M{
		"last_login":   bson.M{"$exists": true},
		"is_activated": false,
	}, set)
	if err != nil {
		return 0, fmt.Errorf("activate logged-in accounts: %w", err)
	}

	tokenless, err := r.coll.UpdateMany(ctx, bson.M{
		"is_activated": false,
		"$or": bson.A{
			bson.M{"activation_token": bson.M{"$exists": false}},
			bson.M{"activation_token": nil},
		},
	}, set)
	if err != nil {
		return loggedIn.ModifiedCount, fmt.Errorf("activate tokenless accounts: %w", err)
	}

	return loggedIn.ModifiedCount + tokenless.ModifiedCount, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.AdminUser, error) {
	var mu mongoAdminUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(&mu), nil
}

func toDomain(mu *mongoAdminUser) *domain.AdminUser {
	u := &domain.AdminUser{
		ID:              mu.ID.Hex(),
		Email:           mu.Email,
		PasswordHash:    mu.PasswordHash,
		FirstName:       mu.FirstName,
		LastName:        mu.LastName,
		Role:            mu.Role,
		IsActive:        mu.IsActive,
		IsActivated:     mu.IsActivated,
		ActivationToken: mu.ActivationToken,
		AvatarColor:     mu.AvatarColor,
		CreatedAt:       unixToTime(mu.CreatedAt),
		UpdatedAt:       unixToTime(mu.UpdatedAt),
	}
	if mu.ActivationTokenExpires != 0 {
		t := unixToTime(mu.ActivationTokenExpires)
		u.ActivationTokenExpires = &t
	}
	if mu.LastLogin != 0 {
		t := unixToTime(mu.LastLogin)
		u.LastLogin = &t
	}
	return u
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
