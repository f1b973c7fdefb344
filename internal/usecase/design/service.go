package design

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/httpclient"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgGenerateFailed = "Error generating design"
	msgProxyFailed    = "Error proxying image"
	msgProxyTooLarge  = "Image is too large to proxy"

	defaultMaxProxyBytes = 20 << 20
)

// Doer sends outbound HTTP requests.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Service forwards prompts to the image generation API and proxies
// generated images back to the browser.
type Service struct {
	generator Doer
	fetcher   Doer
	cfg       config.DesignConfig

	maxProxyBytes int64
}

func NewService(generator, fetcher Doer, cfg config.DesignConfig) *Service {
	return &Service{
		generator: generator,
		fetcher:   fetcher,
		cfg:       cfg,

		maxProxyBytes: defaultMaxProxyBytes,
	}
}

// Generate returns the URL of one generated image for the prompt.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", appErrors.Validation("Prompt is required", err)
	}

	body, err := json.Marshal(generationPayload{
		Model:  s.cfg.Model,
		Prompt: req.Prompt,
		N:      1,
		Size:   s.cfg.Size,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	ctx, cancel := withTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", generationError(msgGenerateFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.generator.Do(ctx, httpReq)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			return "", generationError(upstreamMessage(statusErr.Body), err)
		}
		return "", generationError(msgGenerateFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", generationError(msgGenerateFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", generationError(upstreamMessage(raw), fmt.Errorf("generation API returned status %d", resp.StatusCode))
	}

	var result generationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", generationError(msgGenerateFailed, err)
	}
	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return "", generationError(msgGenerateFailed, errors.New("generation API returned no image"))
	}

	logger.Info("Design generated",
		zap.Int("prompt_length", len(req.Prompt)),
		zap.String("event", "design_generated"),
	)

	return result.Data[0].URL, nil
}

// Proxy fetches imageURL and returns its bytes with the upstream Content-Type.
func (s *Service) Proxy(ctx context.Context, req *ProxyRequest) (*ProxiedImage, error) {
	if req.ImageURL == "" {
		return nil, appErrors.Validation("Image URL is required", nil)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Image URL is invalid", err)
	}

	ctx, cancel := withTimeout(ctx, s.cfg.ProxyTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.ImageURL, http.NoBody)
	if err != nil {
		return nil, generationError(msgProxyFailed, err)
	}

	resp, err := s.fetcher.Do(ctx, httpReq)
	if err != nil {
		return nil, generationError(msgProxyFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, generationError(msgProxyFailed, fmt.Errorf("image host returned status %d", resp.StatusCode))
	}

	if resp.ContentLength > s.maxProxyBytes {
		return nil, proxyTooLarge(resp.ContentLength, s.maxProxyBytes)
	}

	// One byte past the cap tells a truncated body apart from an exact fit.
	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxProxyBytes+1))
	if err != nil {
		return nil, generationError(msgProxyFailed, err)
	}
	if int64(len(data)) > s.maxProxyBytes {
		return nil, proxyTooLarge(-1, s.maxProxyBytes)
	}

	return &ProxiedImage{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func generationError(message string, err error) error {
	logger.Error(message, zap.Error(err))
	return appErrors.NewAppError("UPSTREAM_ERROR", message, fmt.Errorf("%w: %w", appErrors.ErrUpstream, err))
}

func proxyTooLarge(size, limit int64) error {
	logger.Warn(msgProxyTooLarge,
		zap.Int64("content_length", size),
		zap.Int64("limit", limit),
	)
	return appErrors.NewAppError("PAYLOAD_TOO_LARGE", msgProxyTooLarge,
		fmt.Errorf("image exceeds %d bytes: %w", limit, appErrors.ErrPayloadTooLarge))
}

func upstreamMessage(body []byte) string {
	var parsed upstreamError
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return msgGenerateFailed
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
