package handle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hjemme/inventar/pkg/configs"
	"github.com/hjemme/inventar/pkg/internal/model"
	"github.com/hjemme/inventar/pkg/internal/router"
	"github.com/hjemme/inventar/pkg/internal/storage"
	dbc "github.com/hjemme/inventar/pkg/internal/storage/db"
	s3c "github.com/hjemme/inventar/pkg/internal/storage/s3"
	"github.com/hjemme/inventar/pkg/middleware"
)

// fakeBlobStore is an in-memory object store for exercising the blob routes.
type fakeBlobStore struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{buckets: map[string]map[string][]byte{}}
}

func (f *fakeBlobStore) PutBlob(_ context.Context, bucket, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.buckets[bucket] == nil {
		f.buckets[bucket] = map[string][]byte{}
	}

	f.buckets[bucket][key] = append([]byte(nil), data...)

	return nil
}

func (f *fakeBlobStore) GetBlob(_ context.Context, bucket, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.buckets[bucket][key]
	if !ok {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, s3c.ErrObjectNotFound)
	}

	return append([]byte(nil), data...), nil
}

func (f *fakeBlobStore) RemoveBlob(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.buckets[bucket], key)

	return nil
}

func (f *fakeBlobStore) StatBlob(_ context.Context, bucket, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.buckets[bucket][key]

	return ok, nil
}

func (f *fakeBlobStore) HealthCheck(_ context.Context) error { return nil }

func buildEngine(t *testing.T, store storage.ObjectStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	manager := &storage.Manager{S3: store, DB: &dbc.Client{DB: db}}

	engine := gin.New()
	engine.Use(middleware.StorageMiddleware(manager))
	router.RegisterAPIRoutes(engine.Group("/api"))
	router.RegisterStatusRoutes(engine.Group("/status"))

	return engine
}

func newTestEngine(t *testing.T) *gin.Engine {
	return buildEngine(t, nil)
}

func newTestEngineWithStore(t *testing.T) (*gin.Engine, *fakeBlobStore) {
	t.Helper()
	require.NoError(t, configs.InitConfig(t.TempDir()))

	store := newFakeBlobStore()

	return buildEngine(t, store), store
}

func perform(engine *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func TestHealthProbe(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodGet, "/status/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Healthy", w.Body.String())
}

func TestHealthS3NotInitialized(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodGet, "/status/health/s3", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestItemCRUD(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodPost, "/api/items", []byte(`{"name":"Hei","description":"Test"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var created model.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int32(1), created.ID)
	assert.Equal(t, "Hei", created.Name)

	w = perform(engine, http.MethodGet, "/api/items/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Test", got.Description)

	created.Description = "Endret"
	body, err := json.Marshal(created)
	require.NoError(t, err)

	w = perform(engine, http.MethodPut, "/api/items", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(engine, http.MethodGet, "/api/items", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all []model.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "Endret", all[0].Description)

	w = perform(engine, http.MethodDelete, "/api/items/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(engine, http.MethodGet, "/api/items/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEmptyRendersArray(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodGet, "/api/locations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetUnknownIDIs404(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodGet, "/api/categories/12", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

func TestInvalidIDIs400(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodGet, "/api/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMalformedBodyIs400(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodPost, "/api/locations", []byte(`{"name": 42`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUnknownIDIs404(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodPut, "/api/categories", []byte(`{"id":9,"name":"Ghost"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGifterRoutes(t *testing.T) {
	engine := newTestEngine(t)

	w := perform(engine, http.MethodPost, "/api/gifters", []byte(`{"firstname":"Ola","lastname":"Normann","notes":"Han er grei"}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(engine, http.MethodGet, "/api/gifters/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Gifter
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ola", got.Firstname)

	// Append-only: no update or delete routes are bound.
	w = perform(engine, http.MethodPut, "/api/gifters", []byte(`{"id":1}`))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(engine, http.MethodDelete, "/api/gifters/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFileUploadDownloadDelete(t *testing.T) {
	engine, store := newTestEngineWithStore(t)

	content := []byte("raw file bytes")
	w := perform(engine, http.MethodPost, "/api/files", content)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(engine, http.MethodGet, "/api/file_infos", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var infos []model.FileInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, int32(1), infos[0].ID)
	assert.Equal(t, "files", infos[0].ObjectStorageLocation)

	w = perform(engine, http.MethodGet, "/api/files/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, content, w.Body.Bytes())

	w = perform(engine, http.MethodDelete, "/api/files/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.buckets["files"])

	w = perform(engine, http.MethodGet, "/api/files/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadUnknownFileIs404(t *testing.T) {
	engine, _ := newTestEngineWithStore(t)

	w := perform(engine, http.MethodGet, "/api/files/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPictureUploadDownloadDelete(t *testing.T) {
	engine, store := newTestEngineWithStore(t)

	picture := []byte{1, 2, 3, 4, 5}
	w := perform(engine, http.MethodPost, "/api/pictures?item_id=7&description=Bilde+av+stol", picture)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(engine, http.MethodGet, "/api/pictures", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var infos []model.PictureInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, int32(7), infos[0].ItemID)
	assert.Equal(t, "Bilde av stol", infos[0].Description)
	assert.Equal(t, "item-7", infos[0].ObjectStorageLocation)

	w = perform(engine, http.MethodGet, "/api/pictures/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, picture, w.Body.Bytes())

	w = perform(engine, http.MethodDelete, "/api/pictures/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.buckets["item-7"])

	w = perform(engine, http.MethodGet, "/api/pictures/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPictureUploadInvalidItemIDIs400(t *testing.T) {
	engine, _ := newTestEngineWithStore(t)

	w := perform(engine, http.MethodPost, "/api/pictures?item_id=abc&description=x", []byte{1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(engine, http.MethodPost, "/api/pictures", []byte{1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthS3WithStore(t *testing.T) {
	engine, _ := newTestEngineWithStore(t)

	w := perform(engine, http.MethodGet, "/status/health/s3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
