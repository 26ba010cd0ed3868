package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"decorlens/domain/services"
	"decorlens/infrastructure/metrics"
	"decorlens/pkg/logger"
)

// maxImageBytes bounds the download of an image handed to the model
const maxImageBytes = 20 << 20

// Client wraps the Google Gemini API client and implements services.VisionModel
type Client struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Options customizes the client. A nil HTTPClient gets one with the call timeout.
type Options struct {
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, services.ErrVisionNotConfigured
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:     client,
		model:      model,
		timeout:    timeout,
		httpClient: httpClient,
		metrics:    opts.Metrics,
	}, nil
}

// Complete sends the prompt, and the image when one is given, in a single
// attempt and returns the raw text of the first candidate.
func (c *Client) Complete(ctx context.Context, req *services.VisionRequest) (string, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var parts []*genai.Part

	// Image first, then the instructions
	if req.ImageURL != "" {
		data, mimeType, err := c.loadImage(ctx, req.ImageURL)
		if err != nil {
			c.fail(req, start, "image_fetch_failed", "Failed to load image for model", err)
			return "", fmt.Errorf("%w: %w", services.ErrVisionUnavailable, err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, mimeType))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		c.fail(req, start, "generate_failed", "Model call failed", err)
		return "", fmt.Errorf("%w: %w", services.ErrVisionUnavailable, err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		err := errors.New("no content generated")
		c.fail(req, start, "generate_empty", "Model returned no candidates", err)
		return "", fmt.Errorf("%w: %w", services.ErrVisionUnavailable, err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		err := errors.New("empty response from Gemini")
		c.fail(req, start, "generate_empty", "Model returned empty text", err)
		return "", fmt.Errorf("%w: %w", services.ErrVisionUnavailable, err)
	}

	c.metrics.RecordVision(req.Operation, "success", time.Since(start))
	logger.Vision("generate_completed", "Model call completed", map[string]interface{}{
		"operation":   req.Operation,
		"model":       c.model,
		"with_image":  req.ImageURL != "",
		"duration_ms": time.Since(start).Milliseconds(),
		"chars":       len(text),
	})

	return text, nil
}

func (c *Client) fail(req *services.VisionRequest, start time.Time, action, message string, err error) {
	c.metrics.RecordVision(req.Operation, "unavailable", time.Since(start))
	logger.VisionError(action, message, err, map[string]interface{}{
		"operation":   req.Operation,
		"model":       c.model,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// loadImage accepts http(s) URLs and base64 data URLs
func (c *Client) loadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	if strings.HasPrefix(imageURL, "data:") {
		return decodeDataURL(imageURL)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image url: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}

	mimeType := resp.Header.Get("Content-Type")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/jpeg"
	}
	return data, mimeType, nil
}

func decodeDataURL(dataURL string) ([]byte, string, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, "", errors.New("unsupported data url")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image: %w", err)
	}
	mimeType := strings.TrimSuffix(header, ";base64")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return data, mimeType, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	// The genai client doesn't have a Close method in the current SDK
	return nil
}

// Unconfigured is used when no API key is set. Every call fails with
// services.ErrVisionNotConfigured so the rest of the API keeps serving.
type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, *services.VisionRequest) (string, error) {
	return "", services.ErrVisionNotConfigured
}
