package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertReview_AppendsAndRecomputes(t *testing.T) {
	p := &Product{}

	p.UpsertReview("u1", "Ann", 4, "good")
	p.UpsertReview("u2", "Bob", 2, "meh")

	require.Len(t, p.Reviews, 2)
	assert.Equal(t, 2, p.NumOfReviews)
	assert.InDelta(t, 3.0, p.Ratings, 1e-9)
	assert.NotEmpty(t, p.Reviews[0].ID)
	assert.NotEqual(t, p.Reviews[0].ID, p.Reviews[1].ID)
}

func TestUpsertReview_OverwritesSameUser(t *testing.T) {
	p := &Product{}

	first := p.UpsertReview("u1", "Ann", 5, "great")
	second := p.UpsertReview("u1", "Ann", 3, "ok after all")

	require.Len(t, p.Reviews, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, p.Reviews[0].Rating)
	assert.Equal(t, "ok after all", p.Reviews[0].Comment)
	assert.Equal(t, 1, p.NumOfReviews)
	assert.InDelta(t, 3.0, p.Ratings, 1e-9)
}

func TestRemoveReview(t *testing.T) {
	p := &Product{}
	a := p.UpsertReview("u1", "Ann", 5, "")
	p.UpsertReview("u2", "Bob", 1, "")

	assert.True(t, p.RemoveReview(a.ID))
	assert.Equal(t, 1, p.NumOfReviews)
	assert.InDelta(t, 1.0, p.Ratings, 1e-9)

	assert.False(t, p.RemoveReview("missing"))
	assert.Equal(t, 1, p.NumOfReviews)
}

func TestRemoveReview_LastLeavesZeroRating(t *testing.T) {
	p := &Product{}
	r := p.UpsertReview("u1", "Ann", 4, "")

	assert.True(t, p.RemoveReview(r.ID))
	assert.Empty(t, p.Reviews)
	assert.Equal(t, 0, p.NumOfReviews)
	assert.Equal(t, 0.0, p.Ratings)
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 0, Size: 8}.Offset())
	assert.Equal(t, 0, Page{Number: 1, Size: 8}.Offset())
	assert.Equal(t, 16, Page{Number: 3, Size: 8}.Offset())
}
