package services

import "context"

type ImageProxyService interface {
	Fetch(ctx context.Context, rawURL string) (*CachedImage, error)
}
