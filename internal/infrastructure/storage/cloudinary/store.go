package cloudinary

import (
	"context"
	"fmt"
	"strings"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// uploadAPI is the subset of the Cloudinary upload API the store calls.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Store implements asset.Store against Cloudinary.
type Store struct {
	api uploadAPI
}

func NewStore(cfg config.CloudinaryConfig) (*Store, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &Store{api: &cld.Upload}, nil
}

func (s *Store) Upload(ctx context.Context, input asset.UploadInput) (*asset.Image, error) {
	params := uploader.UploadParams{
		Folder:       input.Folder,
		ResourceType: "auto",
	}
	params.Transformation = transformation(input)

	result, err := s.api.Upload(ctx, input.Data, params)
	if err != nil {
		return nil, classify(err.Error(), err)
	}
	if result == nil {
		return nil, fmt.Errorf("cloudinary upload: empty response: %w", asset.ErrUpstream)
	}
	if result.Error.Message != "" {
		return nil, classify(result.Error.Message, nil)
	}

	return &asset.Image{
		PublicID: result.PublicID,
		URL:      result.SecureURL,
	}, nil
}

func (s *Store) Delete(ctx context.Context, publicID string) error {
	result, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return classify(err.Error(), err)
	}
	if result != nil && result.Error.Message != "" {
		return classify(result.Error.Message, nil)
	}
	return nil
}

// transformation builds the incoming transformation string, e.g.
// "w_150,c_scale,q_auto,f_auto" for avatars.
func transformation(input asset.UploadInput) string {
	var parts []string
	if input.Width > 0 {
		crop := input.Crop
		if crop == "" {
			crop = "scale"
		}
		parts = append(parts, fmt.Sprintf("w_%d", input.Width), "c_"+crop)
	}
	if input.AutoOptimize {
		parts = append(parts, "q_auto", "f_auto")
	}
	return strings.Join(parts, ",")
}

// classify maps a provider failure onto the asset error taxonomy by message.
func classify(message string, cause error) error {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "rate limit"), strings.Contains(lower, "too many requests"):
		return fmt.Errorf("cloudinary: %s: %w", message, asset.ErrRateLimited)
	case strings.Contains(lower, "file size too large"), strings.Contains(lower, "too large"):
		return fmt.Errorf("cloudinary: %s: %w", message, asset.ErrPayloadTooLarge)
	}
	if cause != nil {
		return fmt.Errorf("cloudinary: %w: %w", asset.ErrUpstream, cause)
	}
	return fmt.Errorf("cloudinary: %s: %w", message, asset.ErrUpstream)
}
