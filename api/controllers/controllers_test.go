package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SalangsangJohnPatrick/inventory-management/internal/inventory"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/config"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/logger"
)

type stubInventory struct {
	inventory.Service
	gotQuery  inventory.ListQuery
	gotID     uint
	imported  string
	importErr error
}

func (s *stubInventory) List(_ context.Context, q inventory.ListQuery) (*inventory.ListResult, error) {
	s.gotQuery = q
	return &inventory.ListResult{Items: []inventory.ItemDTO{}}, nil
}

func (s *stubInventory) Get(_ context.Context, id uint) (*inventory.ItemDTO, error) {
	s.gotID = id
	return &inventory.ItemDTO{ID: id}, nil
}

func (s *stubInventory) Import(_ context.Context, r io.Reader) (*inventory.ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.imported = string(raw)
	if s.importErr != nil {
		return nil, s.importErr
	}
	return &inventory.ImportResult{Success: inventory.ImportSuccessMessage, Imported: 1}, nil
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(importFileField, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/ImportInventoryItems", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestInventoryShowRejectsNonNumericID(t *testing.T) {
	svc := &stubInventory{}
	for _, raw := range []string{"abc", "0", "-3", "1.5"} {
		rec := httptest.NewRecorder()
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/inventory/"+raw, nil), "id", raw)
		InventoryShow(svc, logger.Nop())(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code, raw)
		assert.Equal(t, "Product not found", decodeError(t, rec).Error.Message)
	}
	assert.Zero(t, svc.gotID)

	rec := httptest.NewRecorder()
	InventoryShow(svc, logger.Nop())(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/inventory/7", nil), "id", "7"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 7, svc.gotID)
}

func TestInventoryListParsesQuery(t *testing.T) {
	svc := &stubInventory{}
	target := "/inventory?currentPage=3&itemsPerPage=5&sortField=price&sortOrder=desc&search=%20nike%20" +
		"&filterForm%5Btype%5D=Shoes"
	rec := httptest.NewRecorder()
	InventoryList(svc, nil)(rec, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.gotQuery.Page)
	assert.Equal(t, 5, svc.gotQuery.PerPage)
	assert.Equal(t, "price", svc.gotQuery.SortField)
	assert.Equal(t, "desc", svc.gotQuery.SortOrder)
	assert.Equal(t, "nike", svc.gotQuery.Search)
	assert.Equal(t, map[string]string{"type": "Shoes"}, svc.gotQuery.Filters)
}

func TestInventoryListRejectsBadPage(t *testing.T) {
	rec := httptest.NewRecorder()
	InventoryList(&stubInventory{}, nil)(rec, httptest.NewRequest(http.MethodGet, "/inventory?currentPage=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInventoryCreateMalformedJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader("{"))
	InventoryCreate(&stubInventory{}, nil)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlersWithoutServiceReportInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	InventoryList(nil, nil)(rec, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	AuthLogin(nil, nil)(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestInventoryImportUploadChecks(t *testing.T) {
	cfg := config.ImportConfig{MaxUploadKB: 1}
	csv := []byte("brand_name,type,quantity_on_hand,price,products_sold\nNike,Shoes,1,1.00,0\n")

	t.Run("missing file", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ImportInventoryItems", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		InventoryImport(&stubInventory{}, cfg, nil)(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "The file field is required.", decodeError(t, rec).Error.Details["file"])
	})

	t.Run("wrong extension", func(t *testing.T) {
		rec := httptest.NewRecorder()
		InventoryImport(&stubInventory{}, cfg, nil)(rec, uploadRequest(t, "items.xlsx", csv))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "The file must be a file of type: csv, txt.", decodeError(t, rec).Error.Details["file"])
	})

	t.Run("binary content", func(t *testing.T) {
		png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
		rec := httptest.NewRecorder()
		InventoryImport(&stubInventory{}, cfg, nil)(rec, uploadRequest(t, "items.csv", png))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		big := bytes.Repeat([]byte("Nike,Shoes,1,1.00,0\n"), 200)
		rec := httptest.NewRecorder()
		InventoryImport(&stubInventory{}, cfg, nil)(rec, uploadRequest(t, "items.csv", big))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "The file may not be greater than 1 kilobytes.", decodeError(t, rec).Error.Details["file"])
	})

	t.Run("accepted", func(t *testing.T) {
		svc := &stubInventory{}
		rec := httptest.NewRecorder()
		InventoryImport(svc, cfg, logger.Nop())(rec, uploadRequest(t, "items.txt", csv))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, string(csv), svc.imported)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &stubInventory{importErr: errors.New("db down")}
		rec := httptest.NewRecorder()
		InventoryImport(svc, cfg, logger.Nop())(rec, uploadRequest(t, "items.csv", csv))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHealthReadyReportsFailedDependency(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	handler := HealthReady(cfg, logger.Nop(),
		ReadinessCheck{Name: "database", Check: func(context.Context) error { return nil }},
		ReadinessCheck{Name: "redis", Check: func(context.Context) error { return errors.New("dial tcp: refused") }},
	)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "unavailable", body.Error.Details["redis"])
	assert.NotContains(t, body.Error.Details, "database")
	assert.Equal(t, "test", rec.Header().Get("X-Inventory-Env"))
}

func TestRootReportsVersion(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "inventory-management", Version: "1.2.3"}}
	rec := httptest.NewRecorder()
	Root(cfg)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"name":"inventory-management","version":"1.2.3"}}`, rec.Body.String())
}
