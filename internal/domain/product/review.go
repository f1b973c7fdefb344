package product

import (
	"github.com/google/uuid"
)

// UpsertReview overwrites the reviewer's existing review or appends a new one,
// then recomputes the derived fields.
func (p *Product) UpsertReview(userID, name string, rating int, comment string) Review {
	for i := range p.Reviews {
		if p.Reviews[i].UserID == userID {
			p.Reviews[i].Rating = rating
			p.Reviews[i].Comment = comment
			p.recompute()
			return p.Reviews[i]
		}
	}

	review := Review{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    name,
		Rating:  rating,
		Comment: comment,
	}
	p.Reviews = append(p.Reviews, review)
	p.recompute()
	return review
}

// RemoveReview drops the review with the given id and reports whether one was removed.
func (p *Product) RemoveReview(reviewID string) bool {
	kept := make([]Review, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		if r.ID != reviewID {
			kept = append(kept, r)
		}
	}

	removed := len(kept) != len(p.Reviews)
	p.Reviews = kept
	p.recompute()
	return removed
}

func (p *Product) recompute() {
	p.NumOfReviews = len(p.Reviews)
	p.Ratings = AverageRating(p.Reviews)
}

// AverageRating is the arithmetic mean of the ratings, 0 for no reviews.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
