package serviceimpl

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decorlens/domain/services"
	"decorlens/infrastructure/cache"
)

func newProxy(t *testing.T, maxBytes int64) services.ImageProxyService {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)

	return NewImageProxyService(client, cache.NewMemoryImageCache(time.Minute), ImageProxyOptions{
		MaxBytes: maxBytes,
		Timeout:  time.Second,
		CacheTTL: time.Minute,
	}, nil)
}

func imageResponder(body []byte, contentType string) httpmock.Responder {
	return func(*http.Request) (*http.Response, error) {
		resp := httpmock.NewBytesResponse(http.StatusOK, body)
		resp.Header.Set("Content-Type", contentType)
		return resp, nil
	}
}

func TestImageProxy_FetchesAndCaches(t *testing.T) {
	proxy := newProxy(t, 1024)
	const src = "https://cdn.example.com/sofa.jpg"
	httpmock.RegisterResponder(http.MethodGet, src, imageResponder([]byte("jpeg-bytes"), "image/jpeg"))

	img, err := proxy.Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), img.Data)
	assert.Equal(t, "image/jpeg", img.ContentType)

	_, err = proxy.Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetCallCountInfo()["GET "+src])
}

func TestImageProxy_Errors(t *testing.T) {
	proxy := newProxy(t, 8)
	httpmock.RegisterResponder(http.MethodGet, "https://cdn.example.com/big.jpg", imageResponder([]byte(strings.Repeat("x", 64)), "image/jpeg"))
	httpmock.RegisterResponder(http.MethodGet, "https://cdn.example.com/page", imageResponder([]byte("<html>"), "text/html"))
	httpmock.RegisterResponder(http.MethodGet, "https://cdn.example.com/gone.jpg", httpmock.NewStringResponder(http.StatusNotFound, ""))

	tests := []struct {
		url  string
		want error
	}{
		{"", services.ErrInvalidImageURL},
		{"ftp://cdn.example.com/a.jpg", services.ErrInvalidImageURL},
		{"/relative.jpg", services.ErrInvalidImageURL},
		{"https://cdn.example.com/big.jpg", services.ErrImageTooLarge},
		{"https://cdn.example.com/page", services.ErrImageFetch},
		{"https://cdn.example.com/gone.jpg", services.ErrImageFetch},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			_, err := proxy.Fetch(context.Background(), tt.url)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
