package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository implements domainUser.Repository on a mongo collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) domainUser.Repository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *domainUser.User) error {
	u.ID = uuid.NewString()
	u.Email = strings.ToLower(u.Email)
	u.Version = 1
	if u.Role == "" {
		u.Role = domainUser.RoleCustomer
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt

	if _, err := r.coll.InsertOne(ctx, toUserDocument(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainUser.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domainUser.User, error) {
	return r.first(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	return r.first(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domainUser.User, error) {
	return r.first(ctx, bson.M{
		"resetPasswordToken":  tokenHash,
		"resetPasswordExpire": bson.M{"$gt": now},
	})
}

func (r *UserRepository) first(ctx context.Context, query bson.M) (*domainUser.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, query).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domainUser.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domainUser.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]*domainUser.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toEntity())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domainUser.User) error {
	u.Email = strings.ToLower(u.Email)

	set := bson.M{
		"name":      u.Name,
		"email":     u.Email,
		"password":  u.PasswordHash,
		"role":      u.Role,
		"avatar":    u.Avatar,
		"updatedAt": time.Now(),
	}
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}
	if u.ResetPasswordToken != nil && u.ResetPasswordExpire != nil {
		set["resetPasswordToken"] = *u.ResetPasswordToken
		set["resetPasswordExpire"] = *u.ResetPasswordExpire
	} else {
		update["$unset"] = bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": u.ID, "version": u.Version}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainUser.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		count, err := r.coll.CountDocuments(ctx, bson.M{"_id": u.ID})
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if count == 0 {
			return domainUser.ErrUserNotFound
		}
		return domainUser.ErrStaleUser
	}

	u.Version++
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return domainUser.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"resetPasswordExpire": bson.M{"$lte": now}},
		bson.M{
			"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""},
			"$inc":   bson.M{"version": 1},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired reset tokens: %w", err)
	}
	return result.ModifiedCount, nil
}
