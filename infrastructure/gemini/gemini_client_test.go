package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decorlens/domain/services"
	"decorlens/infrastructure/metrics"
	"decorlens/pkg/logger"
)

const roomImageURL = "https://images.example.com/room.jpg"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "gemini-logs")
	if err != nil {
		panic(err)
	}
	_ = logger.Init(dir, false)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	c, err := NewGeminiClient(context.Background(), "test-key", "gemini-2.0-flash", 5*time.Second, Options{
		HTTPClient: httpClient,
		Metrics:    metrics.New(),
	})
	require.NoError(t, err)
	return c
}

func generateResponse(t *testing.T, text string) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	require.NoError(t, err)
	return string(body)
}

func registerImage() {
	httpmock.RegisterResponder(http.MethodGet, roomImageURL, func(req *http.Request) (*http.Response, error) {
		resp := httpmock.NewBytesResponse(http.StatusOK, []byte{0xff, 0xd8, 0xff, 0xe0})
		resp.Header.Set("Content-Type", "image/jpeg")
		return resp, nil
	})
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-2.0-flash", time.Second, Options{})
	assert.ErrorIs(t, err, services.ErrVisionNotConfigured)
}

func TestComplete_ReturnsModelText(t *testing.T) {
	c := newMockedClient(t)
	registerImage()

	modelText := `{"items":[{"name":"Grey Sofa","category":"Seating"}]}`
	httpmock.RegisterResponder(http.MethodPost, "=~generateContent",
		httpmock.NewStringResponder(http.StatusOK, generateResponse(t, modelText)))

	text, err := c.Complete(context.Background(), &services.VisionRequest{
		Operation: "analyze_image",
		Prompt:    "List the furniture",
		ImageURL:  roomImageURL,
	})
	require.NoError(t, err)
	assert.Equal(t, modelText, text)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+roomImageURL])
	assert.Equal(t, 1, info["POST =~generateContent"])
}

func TestComplete_UpstreamFailureIsUnavailable(t *testing.T) {
	c := newMockedClient(t)
	registerImage()

	httpmock.RegisterResponder(http.MethodPost, "=~generateContent",
		httpmock.NewStringResponder(http.StatusServiceUnavailable, `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))

	_, err := c.Complete(context.Background(), &services.VisionRequest{
		Operation: "analyze_image",
		Prompt:    "List the furniture",
		ImageURL:  roomImageURL,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrVisionUnavailable)
}

func TestComplete_ImageFetchFailure(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, roomImageURL, httpmock.NewStringResponder(http.StatusNotFound, "missing"))

	_, err := c.Complete(context.Background(), &services.VisionRequest{
		Operation: "analyze_image",
		Prompt:    "List the furniture",
		ImageURL:  roomImageURL,
	})
	assert.ErrorIs(t, err, services.ErrVisionUnavailable)
	assert.Zero(t, httpmock.GetCallCountInfo()["POST =~generateContent"])
}

func TestComplete_DataURLSkipsDownload(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, "=~generateContent",
		httpmock.NewStringResponder(http.StatusOK, generateResponse(t, `{"is_valid":true}`)))

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	text, err := c.Complete(context.Background(), &services.VisionRequest{
		Operation: "validate_decor",
		Prompt:    "Is this a room?",
		ImageURL:  dataURL,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"is_valid":true}`, text)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestUnconfigured(t *testing.T) {
	_, err := Unconfigured{}.Complete(context.Background(), &services.VisionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, services.ErrVisionNotConfigured)
}
