package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"decorlens/domain/models"
	"decorlens/domain/services"
	"decorlens/interfaces/api/middleware"
	"decorlens/pkg/config"
	"decorlens/pkg/logger"
)

const testAdminToken = "admin-secret"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "handlers-logs")
	if err != nil {
		panic(err)
	}
	_ = logger.Init(dir, false)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fakeBoardService struct {
	board     *models.Board
	items     []models.DetectedItem
	more      *services.SeeMoreResult
	reconcile *services.ReconcileResult
	err       error

	analyzedURL string
}

func (f *fakeBoardService) CreateBoard(ctx context.Context, sourceImageURL string) (*models.Board, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Board{ID: uuid.New(), SourceImageURL: sourceImageURL, Status: models.BoardStatusUploaded}, nil
}

func (f *fakeBoardService) GetBoard(ctx context.Context, id uuid.UUID) (*models.Board, []models.DetectedItem, error) {
	return f.board, f.items, f.err
}

func (f *fakeBoardService) AnalyzeImage(ctx context.Context, boardID uuid.UUID, imageURL string) ([]models.DetectedItem, error) {
	f.analyzedURL = imageURL
	return f.items, f.err
}

func (f *fakeBoardService) AddItemDetails(ctx context.Context, boardID uuid.UUID) ([]models.DetectedItem, error) {
	return f.items, f.err
}

func (f *fakeBoardService) SeeMoreItems(ctx context.Context, boardID uuid.UUID) (*services.SeeMoreResult, error) {
	return f.more, f.err
}

func (f *fakeBoardService) ReconcileCounts(ctx context.Context) (*services.ReconcileResult, error) {
	return f.reconcile, f.err
}

type fakeDesignService struct {
	result json.RawMessage
	list   []json.RawMessage
	err    error
}

func (f *fakeDesignService) AnalyzeRoom(context.Context, *services.RoomAnalysisRequest) (json.RawMessage, error) {
	return f.result, f.err
}

func (f *fakeDesignService) GenerateCarpenterSpec(context.Context, *services.CarpenterSpecRequest) (json.RawMessage, error) {
	return f.result, f.err
}

func (f *fakeDesignService) GenerateStyleDirections(context.Context, *services.StyleDirectionsRequest) ([]json.RawMessage, error) {
	return f.list, f.err
}

func (f *fakeDesignService) GenerateStyleInspirations(context.Context, *services.StyleContext) ([]json.RawMessage, error) {
	return f.list, f.err
}

func (f *fakeDesignService) GenerateDeepDesign(context.Context, *services.StyleContext) (json.RawMessage, error) {
	return f.result, f.err
}

type fakeProductService struct {
	matches []models.ItemProductMatch
	err     error
}

func (f *fakeProductService) SearchProducts(context.Context, uuid.UUID) ([]models.ItemProductMatch, error) {
	return f.matches, f.err
}

type fakeDecorService struct{ verdict services.DecorValidation }

func (f *fakeDecorService) Validate(context.Context, string) services.DecorValidation {
	return f.verdict
}

type fakeProxyService struct {
	img *services.CachedImage
	err error
}

func (f *fakeProxyService) Fetch(context.Context, string) (*services.CachedImage, error) {
	return f.img, f.err
}

type fixture struct {
	board   *fakeBoardService
	design  *fakeDesignService
	product *fakeProductService
	decor   *fakeDecorService
	proxy   *fakeProxyService
	app     *fiber.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		board:   &fakeBoardService{},
		design:  &fakeDesignService{},
		product: &fakeProductService{},
		decor:   &fakeDecorService{verdict: services.PermissiveDecorValidation()},
		proxy:   &fakeProxyService{},
	}

	cfg := &config.Config{}
	cfg.App.Name = "decorlens-test"
	cfg.Affiliate.AmazonTag = "tag-20"

	h := NewHandlers(&Services{
		BoardService:           f.board,
		ProductService:         f.product,
		DesignService:          f.design,
		DecorValidationService: f.decor,
		ImageProxyService:      f.proxy,
	}, nil, cfg)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestID())
	app.Get("/health", h.Health.Health)
	app.Get("/health/detailed", h.Health.DetailedHealth)

	api := app.Group("/api/v1")
	api.Post("/boards", h.Board.CreateBoard)
	api.Post("/boards/analyze", h.Board.AnalyzeImage)
	api.Post("/boards/item-details", h.Board.AddItemDetails)
	api.Post("/boards/more-items", h.Board.SeeMoreItems)
	api.Get("/boards/:id", h.Board.GetBoard)
	api.Post("/rooms/analyze", h.Design.AnalyzeRoom)
	api.Post("/items/carpenter-specs", h.Design.GenerateCarpenterSpec)
	api.Post("/styles/directions", h.Design.GenerateStyleDirections)
	api.Post("/styles/inspirations", h.Design.GenerateStyleInspirations)
	api.Post("/styles/deep-design", h.Design.GenerateDeepDesign)
	api.Post("/decor/validate", h.Decor.ValidateDecor)
	api.Post("/products/search", h.Product.SearchProducts)
	api.Post("/retailer/query", h.Retailer.BuildQuery)
	api.Get("/proxy-image", h.Proxy.ProxyImage)

	admin := api.Group("/admin", middleware.AdminToken(testAdminToken))
	admin.Post("/boards/reconcile", h.Admin.ReconcileBoards)
	admin.Get("/logs", h.Log.GetLogs)

	f.app = app
	return f
}

// do sends body as JSON (nil for no body) and decodes a JSON response into a map
func (f *fixture) do(t *testing.T, method, path string, body interface{}, headers ...string) (int, map[string]interface{}) {
	t.Helper()
	resp := f.raw(t, method, path, body, headers...)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp.StatusCode, out
}

func (f *fixture) raw(t *testing.T, method, path string, body interface{}, headers ...string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			payload, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(payload)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
