package product

import appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"

var (
	ErrProductNotFound = appErrors.ErrProductNotFound
	ErrReviewNotFound  = appErrors.ErrReviewNotFound
	ErrStaleProduct    = appErrors.ErrConflict
)
