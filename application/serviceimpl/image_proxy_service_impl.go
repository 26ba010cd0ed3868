package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"decorlens/domain/services"
	"decorlens/infrastructure/metrics"
	"decorlens/pkg/logger"
)

// ImageProxyOptions configures the proxy's fetch and cache limits
type ImageProxyOptions struct {
	MaxBytes int64
	Timeout  time.Duration
	CacheTTL time.Duration
}

type ImageProxyServiceImpl struct {
	httpClient *http.Client
	cache      services.ImageCache
	opts       ImageProxyOptions
	metrics    *metrics.Metrics
}

func NewImageProxyService(httpClient *http.Client, cache services.ImageCache, opts ImageProxyOptions, m *metrics.Metrics) services.ImageProxyService {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 10 << 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &ImageProxyServiceImpl{
		httpClient: httpClient,
		cache:      cache,
		opts:       opts,
		metrics:    m,
	}
}

// Fetch downloads an http(s) image, serving repeats from the cache
func (s *ImageProxyServiceImpl) Fetch(ctx context.Context, rawURL string) (*services.CachedImage, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, services.ErrInvalidImageURL
	}
	key := u.String()

	if s.cache != nil {
		if img, ok := s.cache.Get(ctx, key); ok {
			s.metrics.RecordImageCache(true)
			return img, nil
		}
		s.metrics.RecordImageCache(false)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, services.ErrInvalidImageURL
	}
	req.Header.Set("Accept", "image/*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream status %d", services.ErrImageFetch, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrImageFetch, err)
	}
	if int64(len(data)) > s.opts.MaxBytes {
		return nil, services.ErrImageTooLarge
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: not an image (%s)", services.ErrImageFetch, contentType)
	}

	img := &services.CachedImage{Data: data, ContentType: contentType}
	if s.cache != nil {
		s.cache.Set(ctx, key, img, s.opts.CacheTTL)
	}

	logger.Debug(logger.CategoryCache, "image_proxied", "Image fetched for proxy", map[string]interface{}{
		"host":  u.Host,
		"bytes": len(data),
	})
	return img, nil
}
