package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"marketplace_service/internal/domain"
	"marketplace_service/internal/repository"
	"marketplace_service/internal/storage"
	"marketplace_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger := newTestLogger()
	uploadsDir := filepath.Join(t.TempDir(), "uploads")

	images, err := storage.NewDiskImageStore(uploadsDir, "/uploads", logger)
	require.NoError(t, err)
	productUseCase := usecase.NewProductUseCase(repository.NewMemoryProductRepository(logger), images, logger)
	viewUseCase := usecase.NewViewUseCase(repository.NewMemoryViewCounter(), logger)

	return NewRouter(RouterConfig{
		UploadsDir:         uploadsDir,
		UploadsURLPrefix:   "/uploads",
		MaxMultipartMemory: 8 << 20,
		CORSAllowOrigin:    "*",
	}, NewProductHandler(productUseCase, logger), NewViewHandler(viewUseCase, logger), logger)
}

type productForm struct {
	name, description, price string
	filename, content        string
}

func newCreateRequest(t *testing.T, form productForm) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("productName", form.name))
	require.NoError(t, w.WriteField("productDescription", form.description))
	require.NoError(t, w.WriteField("productPrice", form.price))
	if form.filename != "" {
		part, err := w.CreateFormFile("productImage", form.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(form.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func listProducts(t *testing.T, router http.Handler) []domain.Product {
	t.Helper()
	rr := serve(router, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &products))
	return products
}

func TestChairScenario(t *testing.T) {
	router := setupRouter(t)

	rr := serve(router, newCreateRequest(t, productForm{
		name: "Chair", description: "Wooden", price: "25.5",
		filename: "chair.png", content: "png-bytes",
	}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created domain.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Chair", created.Name)
	assert.Equal(t, "Wooden", created.Description)
	assert.Equal(t, 25.5, created.Price)
	assert.Regexp(t, `^/uploads/productImage-\d+-\d+\.png$`, created.Image)

	products := listProducts(t, router)
	require.Len(t, products, 1)
	assert.Equal(t, created, products[0])

	img := serve(router, httptest.NewRequest(http.MethodGet, created.Image, nil))
	assert.Equal(t, http.StatusOK, img.Code)
	assert.Equal(t, "png-bytes", img.Body.String())

	rr = serve(router, httptest.NewRequest(http.MethodDelete, "/products/"+created.ID, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, rr.Body.String())

	rr = serve(router, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	// The image outlives the product.
	img = serve(router, httptest.NewRequest(http.MethodGet, created.Image, nil))
	assert.Equal(t, http.StatusOK, img.Code)
}

func TestCreateProductsKeepsCreationOrder(t *testing.T) {
	router := setupRouter(t)
	names := []string{"Chair", "Table", "Lamp", "Rug"}

	for _, name := range names {
		rr := serve(router, newCreateRequest(t, productForm{
			name: name, description: name + " desc", price: "10",
			filename: name + ".jpg", content: name,
		}))
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	products := listProducts(t, router)
	require.Len(t, products, len(names))
	ids := map[string]bool{}
	for i, name := range names {
		assert.Equal(t, name, products[i].Name)
		assert.Equal(t, name+" desc", products[i].Description)
		assert.Equal(t, 10.0, products[i].Price)
		assert.False(t, ids[products[i].ID])
		ids[products[i].ID] = true
	}
}

func TestCreateProductWithoutImage(t *testing.T) {
	router := setupRouter(t)

	rr := serve(router, newCreateRequest(t, productForm{name: "Chair", description: "Wooden", price: "25.5"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"No image file uploaded"}`, rr.Body.String())
	assert.Empty(t, listProducts(t, router))
}

func TestCreateProductNotMultipart(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"productName":"Chair"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(router, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, listProducts(t, router))
}

func TestCreateProductInvalidPrice(t *testing.T) {
	router := setupRouter(t)

	for _, price := range []string{"", "cheap", "NaN", "Inf"} {
		rr := serve(router, newCreateRequest(t, productForm{
			name: "Chair", price: price, filename: "chair.png", content: "x",
		}))
		assert.Equal(t, http.StatusBadRequest, rr.Code, "price %q", price)
		assert.JSONEq(t, `{"error":"Invalid product price"}`, rr.Body.String())
	}
	assert.Empty(t, listProducts(t, router))
}

func TestDeleteProductTwice(t *testing.T) {
	router := setupRouter(t)

	rr := serve(router, newCreateRequest(t, productForm{name: "Chair", price: "1", filename: "c.png", content: "x"}))
	require.Equal(t, http.StatusCreated, rr.Code)
	var created domain.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = serve(router, newCreateRequest(t, productForm{name: "Table", price: "2", filename: "t.png", content: "y"}))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = serve(router, httptest.NewRequest(http.MethodDelete, "/products/"+created.ID, nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(router, httptest.NewRequest(http.MethodDelete, "/products/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, rr.Body.String())

	products := listProducts(t, router)
	require.Len(t, products, 1)
	assert.Equal(t, "Table", products[0].Name)
}

func TestViewCountIncrements(t *testing.T) {
	router := setupRouter(t)

	for want := 1; want <= 3; want++ {
		rr := serve(router, httptest.NewRequest(http.MethodGet, "/view-count", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"count":%d}`, want), rr.Body.String())
	}

	rr := serve(router, httptest.NewRequest(http.MethodPost, "/view-count", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":4}`, rr.Body.String())
}

type brokenViewUseCase struct{}

func (brokenViewUseCase) RecordView(ctx context.Context) (int64, error) {
	return 0, errors.New("disk full")
}

func TestViewCountFailure(t *testing.T) {
	router := gin.New()
	NewViewHandler(brokenViewUseCase{}, newTestLogger()).RegisterRoutes(router)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/view-count", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to get or update view count"}`, rr.Body.String())
}

func TestMiddlewares(t *testing.T) {
	router := setupRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = serve(router, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr = serve(router, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestIndexPage(t *testing.T) {
	router := setupRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/view-count")
}

func TestParsePrice(t *testing.T) {
	price, err := parsePrice(" 25.5 ")
	require.NoError(t, err)
	assert.Equal(t, 25.5, price)

	price, err = parsePrice("0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, price)

	_, err = parsePrice("1e400")
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}
