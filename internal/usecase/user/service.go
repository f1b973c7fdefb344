package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	assetUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/asset"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgUploadRateLimited = "Too many upload requests. Please try again later."
	msgUploadTooLarge    = "Image is too large. Please upload a smaller image (max 10MB)."
)

// dummyPasswordHash is compared against on unknown emails so that a failed
// login costs one bcrypt comparison either way.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, err := utils.HashPassword("unknown-account-placeholder")
	if err != nil {
		panic(fmt.Sprintf("hash placeholder password: %v", err))
	}
	return hash
})

// Service implements user use cases
type Service struct {
	userRepo domainUser.Repository
	images   *assetUsecase.Manager
	sessions *SessionIssuer
	mailer   Mailer
	events   EventPublisher
	config   *config.Config
	now      func() time.Time

	checkPassword func(hash, password string) bool
}

// NewService creates a new user service. events may be nil.
func NewService(
	userRepo domainUser.Repository,
	images *assetUsecase.Manager,
	sessions *SessionIssuer,
	mailer Mailer,
	events EventPublisher,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo: userRepo,
		images:   images,
		sessions: sessions,
		mailer:   mailer,
		events:   events,
		config:   cfg,
		now:      time.Now,

		checkPassword: utils.CheckPassword,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}
	email := utils.SanitizeEmail(req.Email)

	// Check if user already exists
	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, domainUser.ErrUserAlreadyExists
	}

	avatar, err := s.images.Upload(ctx, req.Avatar, assetUsecase.Avatars)
	if err != nil {
		return nil, uploadError(err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.images.Discard(ctx, *avatar)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &domainUser.User{
		Name:         utils.SanitizeString(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domainUser.RoleCustomer,
		Avatar:       *avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.images.Discard(ctx, *avatar)
		return nil, err
	}

	auth, err := s.sessions.Issue(user)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role),
		zap.String("event", "user_registered"),
	)
	s.publish(ctx, TopicUserRegistered, user.ID, UserRegisteredData{ID: user.ID, Name: user.Name, Email: user.Email})

	return auth, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, appErrors.ErrMissingCredential
	}
	email := utils.SanitizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			s.checkPassword(dummyPasswordHash(), req.Password)
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", email),
				zap.String("event", "user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.checkPassword(user.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	auth, err := s.sessions.Issue(user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
		zap.String("event", "login_success"),
	)

	return auth, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*domainUser.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// uploadError attaches client-facing messages to the upload failures that
// callers can act on.
func uploadError(err error) error {
	switch {
	case errors.Is(err, domainAsset.ErrRateLimited):
		return appErrors.NewAppError("UPLOAD_RATE_LIMITED", msgUploadRateLimited, err)
	case errors.Is(err, domainAsset.ErrPayloadTooLarge):
		return appErrors.NewAppError("UPLOAD_TOO_LARGE", msgUploadTooLarge, err)
	default:
		return fmt.Errorf("failed to upload avatar: %w", err)
	}
}

func (s *Service) publish(ctx context.Context, topic, id string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, topic, id, AggregateTypeUser, data); err != nil {
		logger.Warn("Failed to publish user event",
			zap.String("topic", topic),
			zap.String("user_id", id),
			zap.Error(err),
		)
	}
}
