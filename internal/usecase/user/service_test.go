package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "s3cretpass",
		Avatar:   "data:image/png;base64,AAA",
	}
}

func TestRegister_Success(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, domainUser.ErrUserNotFound).Once()
	deps.store.On("Upload", mock.Anything, mock.MatchedBy(func(in domainAsset.UploadInput) bool {
		return in.Folder == domainAsset.FolderAvatars && in.Width == 150 && in.Crop == "scale" && in.AutoOptimize
	})).Return(&domainAsset.Image{PublicID: "avatars/1", URL: "https://cdn/a1"}, nil).Once()
	deps.repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*domainUser.User).ID = "u1" }).
		Return(nil).Once()

	auth, err := svc.Register(context.Background(), registerRequest())

	require.NoError(t, err)
	assert.Equal(t, "u1", auth.User.ID)
	assert.Equal(t, "jane@example.com", auth.User.Email)
	assert.Equal(t, domainUser.RoleCustomer, auth.User.Role)
	assert.Equal(t, "avatars/1", auth.User.Avatar.PublicID)

	claims, err := utils.ValidateToken(auth.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	deps.repo.AssertExpectations(t)
}

func TestRegister_RateLimitedAfterRetries(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainUser.ErrUserNotFound).Once()
	deps.store.On("Upload", mock.Anything, mock.Anything).Return(nil, domainAsset.ErrRateLimited).Times(3)

	_, err := svc.Register(context.Background(), registerRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrRateLimited)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, msgUploadRateLimited, appErr.Message)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, deps.sleeps)
	deps.store.AssertNumberOfCalls(t, "Upload", 3)
	deps.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_PayloadTooLarge(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainUser.ErrUserNotFound).Once()
	deps.store.On("Upload", mock.Anything, mock.Anything).Return(nil, domainAsset.ErrPayloadTooLarge).Once()

	_, err := svc.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, appErrors.ErrPayloadTooLarge)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, msgUploadTooLarge, appErr.Message)
	deps.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_GenericUploadFailureIsServerError(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainUser.ErrUserNotFound).Once()
	deps.store.On("Upload", mock.Anything, mock.Anything).Return(nil, domainAsset.ErrUpstream).Times(3)

	_, err := svc.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, appErrors.ErrUpstream)
	assert.NotErrorIs(t, err, appErrors.ErrRateLimited)
	assert.NotErrorIs(t, err, appErrors.ErrPayloadTooLarge)
	var appErr *appErrors.AppError
	assert.False(t, errors.As(err, &appErr))
}

func TestRegister_DuplicateEmailBeforeUpload(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domainUser.User{ID: "u0"}, nil).Once()

	_, err := svc.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, appErrors.ErrConflict)
	deps.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestRegister_CreateFailureDiscardsAvatar(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domainUser.ErrUserNotFound).Once()
	deps.store.On("Upload", mock.Anything, mock.Anything).Return(&domainAsset.Image{PublicID: "avatars/1"}, nil).Once()
	deps.repo.On("Create", mock.Anything, mock.Anything).Return(domainUser.ErrUserAlreadyExists).Once()
	deps.store.On("Delete", mock.Anything, "avatars/1").Return(nil).Once()

	_, err := svc.Register(context.Background(), registerRequest())

	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)
	deps.store.AssertExpectations(t)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	svc, deps := newTestService()
	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	deps.repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domainUser.ErrUserNotFound).Once()
	deps.repo.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domainUser.User{ID: "u1", Email: "jane@example.com", PasswordHash: hash}, nil).Once()

	_, errUnknown := svc.Login(context.Background(), &LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
	_, errWrong := svc.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "wrong-password"})

	assert.Equal(t, errUnknown, errWrong)
	assert.ErrorIs(t, errUnknown, appErrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_UnknownEmailStillComparesHash(t *testing.T) {
	svc, deps := newTestService()
	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	var compared []string
	svc.checkPassword = func(hash, password string) bool {
		compared = append(compared, hash)
		return utils.CheckPassword(hash, password)
	}

	deps.repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domainUser.ErrUserNotFound).Once()
	deps.repo.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domainUser.User{ID: "u1", Email: "jane@example.com", PasswordHash: hash}, nil).Once()

	_, errUnknown := svc.Login(context.Background(), &LoginRequest{Email: "ghost@example.com", Password: "unknown-account-placeholder"})
	_, errWrong := svc.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, appErrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, appErrors.ErrInvalidCredentials)
	require.Len(t, compared, 2)
	assert.Equal(t, dummyPasswordHash(), compared[0])
	assert.Equal(t, hash, compared[1])
}

func TestLogin_Success(t *testing.T) {
	svc, deps := newTestService()
	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)
	deps.repo.On("GetByEmail", mock.Anything, "jane@example.com").
		Return(&domainUser.User{ID: "u1", Role: domainUser.RoleAdmin, PasswordHash: hash}, nil).Once()

	auth, err := svc.Login(context.Background(), &LoginRequest{Email: "JANE@example.com", Password: "correct-password"})

	require.NoError(t, err)
	claims, err := utils.ValidateToken(auth.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, domainUser.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), auth.ExpiresAt, time.Minute)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@example.com"})

	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestDelete_AvatarFailureDoesNotBlock(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.On("GetByID", mock.Anything, "u1").
		Return(&domainUser.User{ID: "u1", Avatar: domainAsset.Image{PublicID: "avatars/1"}}, nil).Once()
	deps.repo.On("Delete", mock.Anything, "u1").Return(nil).Once()
	deps.store.On("Delete", mock.Anything, "avatars/1").Return(errors.New("store down")).Once()

	require.NoError(t, svc.Delete(context.Background(), "u1"))
	deps.repo.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	svc, deps := newTestService()
	deps.repo.On("GetByID", mock.Anything, "missing").Return(nil, domainUser.ErrUserNotFound).Once()

	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), appErrors.ErrNotFound)
}

func TestUpdateRole_NoOwnershipCheck(t *testing.T) {
	svc, deps := newTestService()
	target := &domainUser.User{ID: "u2", Name: "Bob Smith", Role: domainUser.RoleCustomer}
	deps.repo.On("GetByID", mock.Anything, "u2").Return(target, nil).Once()
	deps.repo.On("Update", mock.Anything, target).Return(nil).Once()

	u, err := svc.UpdateRole(context.Background(), "u2", &UpdateRoleRequest{Role: domainUser.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, domainUser.RoleAdmin, u.Role)
	assert.Equal(t, "Bob Smith", u.Name)
}

func TestUpdateRole_InvalidRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateRole(context.Background(), "u2", &UpdateRoleRequest{Role: "root"})

	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestUpdateProfile_ReplacesAvatarAfterPersist(t *testing.T) {
	svc, deps := newTestService()
	current := &domainUser.User{ID: "u1", Name: "Jane Doe", Avatar: domainAsset.Image{PublicID: "avatars/old"}}
	deps.repo.On("GetByID", mock.Anything, "u1").Return(current, nil).Once()
	deps.store.On("Upload", mock.Anything, mock.Anything).Return(&domainAsset.Image{PublicID: "avatars/new"}, nil).Once()
	deps.repo.On("Update", mock.Anything, current).Return(nil).Once()
	deps.store.On("Delete", mock.Anything, "avatars/old").Return(nil).Once()

	u, err := svc.UpdateProfile(context.Background(), "u1", &UpdateProfileRequest{Email: "NEW@example.com", Avatar: "data:x"})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "avatars/new", u.Avatar.PublicID)
	deps.store.AssertExpectations(t)
}

func TestUpdateProfile_PersistFailureKeepsOldAvatar(t *testing.T) {
	svc, deps := newTestService()
	current := &domainUser.User{ID: "u1", Avatar: domainAsset.Image{PublicID: "avatars/old"}}
	deps.repo.On("GetByID", mock.Anything, "u1").Return(current, nil).Once()
	deps.store.On("Upload", mock.Anything, mock.Anything).Return(&domainAsset.Image{PublicID: "avatars/new"}, nil).Once()
	deps.repo.On("Update", mock.Anything, current).Return(domainUser.ErrStaleUser).Once()
	deps.store.On("Delete", mock.Anything, "avatars/new").Return(nil).Once()

	_, err := svc.UpdateProfile(context.Background(), "u1", &UpdateProfileRequest{Avatar: "data:x"})

	assert.ErrorIs(t, err, appErrors.ErrConflict)
	deps.store.AssertNotCalled(t, "Delete", mock.Anything, "avatars/old")
}

func TestPasswordLongerThanBcryptLimitIsRejected(t *testing.T) {
	tooLong := strings.Repeat("p", utils.MaxPasswordBytes+8)
	multiByte := strings.Repeat("é", 40)

	t.Run("register before any upload", func(t *testing.T) {
		for _, password := range []string{tooLong, multiByte} {
			svc, deps := newTestService()
			req := registerRequest()
			req.Password = password

			_, err := svc.Register(context.Background(), req)

			assert.ErrorIs(t, err, appErrors.ErrValidation)
			deps.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
			deps.repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
		}
	})

	t.Run("update password", func(t *testing.T) {
		svc, deps := newTestService()

		_, err := svc.UpdatePassword(context.Background(), "u1", &UpdatePasswordRequest{
			OldPassword: "old-password", NewPassword: tooLong, ConfirmPassword: tooLong,
		})

		assert.ErrorIs(t, err, appErrors.ErrValidation)
		deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("reset password", func(t *testing.T) {
		svc, deps := newTestService()
		u := &domainUser.User{ID: "u1"}
		u.SetResetToken("h", time.Now().Add(time.Minute))
		deps.repo.On("GetByResetToken", mock.Anything, mock.Anything, mock.Anything).Return(u, nil).Once()

		_, err := svc.ResetPassword(context.Background(), "deadbeef", &ResetPasswordRequest{
			Password: tooLong, ConfirmPassword: tooLong,
		})

		assert.ErrorIs(t, err, appErrors.ErrValidation)
		deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("limit itself is accepted", func(t *testing.T) {
		atLimit := strings.Repeat("p", utils.MaxPasswordBytes)
		assert.NoError(t, utils.ValidateStruct(&ResetPasswordRequest{Password: atLimit, ConfirmPassword: atLimit}))
	})
}
