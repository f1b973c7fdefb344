package postgres

import (
	"testing"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductMapping(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domainProduct.Product{
		ID:        uuid.NewString(),
		Name:      "Camera",
		Price:     499,
		Stock:     3,
		Category:  "Camera",
		Images:    []asset.Image{{PublicID: "products/1", URL: "https://cdn/1"}},
		UserID:    uuid.NewString(),
		Version:   4,
		CreatedAt: now,
	}
	p.UpsertReview("u1", "Ann", 5, "sharp")

	m, err := toProductModel(p)
	require.NoError(t, err)
	back := toProductEntity(m)

	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.UserID, back.UserID)
	assert.Equal(t, p.Images, back.Images)
	assert.Equal(t, p.Reviews, back.Reviews)
	assert.Equal(t, 1, back.NumOfReviews)
	assert.Equal(t, 5.0, back.Ratings)
	assert.Equal(t, int64(4), back.Version)
}

func TestProductMapping_RejectsNonUUID(t *testing.T) {
	_, err := toProductModel(&domainProduct.Product{ID: "not-a-uuid"})
	assert.Error(t, err)
}

func TestUserMapping(t *testing.T) {
	u := &domainUser.User{
		ID:     uuid.NewString(),
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Role:   domainUser.RoleAdmin,
		Avatar: asset.Image{PublicID: "avatars/1", URL: "https://cdn/a"},
	}
	u.SetResetToken("hash", time.Now().Add(time.Minute))

	m, err := toUserModel(u)
	require.NoError(t, err)
	back := toUserEntity(m)

	assert.Equal(t, u.Avatar, back.Avatar)
	assert.Equal(t, *u.ResetPasswordToken, *back.ResetPasswordToken)
	assert.Equal(t, u.Role, back.Role)
}

func TestJSONBColumns(t *testing.T) {
	images := models.ImageList{{PublicID: "a", URL: "u"}}
	v, err := images.Value()
	require.NoError(t, err)

	var scanned models.ImageList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, images, scanned)

	var fromString models.ReviewList
	require.NoError(t, fromString.Scan(`[{"_id":"r1","user":"u1","name":"Ann","rating":4,"comment":"ok"}]`))
	require.Len(t, fromString, 1)
	assert.Equal(t, 4, fromString[0].Rating)

	empty, err := models.ReviewList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), empty)

	assert.Error(t, scanned.Scan(42))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, escapeLike("50% off_now"))
}
