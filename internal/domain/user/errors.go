package user

import appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"

var (
	ErrUserNotFound      = appErrors.ErrUserNotFound
	ErrUserAlreadyExists = appErrors.ErrUserAlreadyExists
	ErrStaleUser         = appErrors.ErrConflict
)
