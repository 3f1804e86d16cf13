package handler_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/domain"
	"ledgerbook/internal/handler"
	"ledgerbook/internal/importer"
	"ledgerbook/internal/service"
	"ledgerbook/mocks"
)

func newInventoryHandler(maxBytes int64) (*handler.InventoryHandler, *mocks.MockInventoryService, *mocks.MockExportService) {
	invSvc := new(mocks.MockInventoryService)
	exportSvc := new(mocks.MockExportService)
	return handler.NewInventoryHandler(invSvc, exportSvc, maxBytes), invSvc, exportSvc
}

func multipartFile(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestInventoryHandler_Create(t *testing.T) {
	h, invSvc, _ := newInventoryHandler(0)
	businessID := uuid.New()

	invSvc.On("Create", mock.Anything, businessID, mock.MatchedBy(func(in *service.InventoryInput) bool {
		return in.Name == "Widget" && in.Quantity.Equal(calc.NewNumber(10).Decimal)
	})).Return(&domain.InventoryItem{ID: uuid.New(), BusinessID: businessID, Name: "Widget"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/inventory", jsonBody(t, map[string]interface{}{
		"name": "Widget", "quantity": "10", "unit_price": 250,
	}), businessID, uuid.New())
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	invSvc.AssertExpectations(t)
}

func TestInventoryHandler_Create_Duplicate(t *testing.T) {
	h, invSvc, _ := newInventoryHandler(0)

	invSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateInventoryItem)

	c, w := newContext(http.MethodPost, "/api/v1/inventory", jsonBody(t, map[string]interface{}{"name": "Widget"}), uuid.New(), uuid.New())
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_ITEM", decode(t, w).Error.Code)
}

func TestInventoryHandler_List_DefaultsToAscending(t *testing.T) {
	h, invSvc, _ := newInventoryHandler(0)
	businessID := uuid.New()

	invSvc.On("List", mock.Anything, businessID, mock.MatchedBy(func(q domain.ListQuery) bool {
		return !q.Desc && q.Sort == "name" && q.Search == "wid"
	})).Return([]domain.InventoryItem{{Name: "Widget"}}, 1, nil)

	c, w := newContext(http.MethodGet, "/api/v1/inventory?sort=name&q=+wid+", nil, businessID, uuid.New())
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode(t, w).Meta.Total)
	invSvc.AssertExpectations(t)
}

func TestInventoryHandler_Import_Success(t *testing.T) {
	h, invSvc, _ := newInventoryHandler(1 << 20)
	businessID := uuid.New()
	content := "name,qty\nWidget,5\n"

	invSvc.On("Import", mock.Anything, businessID, "stock.csv", mock.MatchedBy(func(r io.Reader) bool {
		b, err := io.ReadAll(r)
		return err == nil && string(b) == content
	})).Return(&service.ImportOutput{
		TotalRows: 2,
		Created:   1,
		Failed:    1,
		Errors:    []importer.RowError{{Row: 3, Column: "quantity", Message: "must be a number", Value: "abc"}},
	}, nil)

	body, contentType := multipartFile(t, "file", "stock.csv", content)
	c, w := newContext(http.MethodPost, "/api/v1/inventory/import", body, businessID, uuid.New())
	c.Request.Header.Set("Content-Type", contentType)
	h.Import(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 1, data["created"])
	assert.EqualValues(t, 1, data["failed"])
	assert.Len(t, data["errors"], 1)
	invSvc.AssertExpectations(t)
}

func TestInventoryHandler_Import_MissingFile(t *testing.T) {
	h, invSvc, _ := newInventoryHandler(1 << 20)

	body, contentType := multipartFile(t, "upload", "stock.csv", "name\nWidget\n")
	c, w := newContext(http.MethodPost, "/api/v1/inventory/import", body, uuid.New(), uuid.New())
	c.Request.Header.Set("Content-Type", contentType)
	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decode(t, w).Error.Code)
	invSvc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryHandler_Import_TooLarge(t *testing.T) {
	h, invSvc, _ := newInventoryHandler(64)

	body, contentType := multipartFile(t, "file", "stock.csv", "name\n"+strings.Repeat("Widget\n", 100))
	c, w := newContext(http.MethodPost, "/api/v1/inventory/import", body, uuid.New(), uuid.New())
	c.Request.Header.Set("Content-Type", contentType)
	h.Import(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "FILE_TOO_LARGE", decode(t, w).Error.Code)
	invSvc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryHandler_Import_UnsupportedType(t *testing.T) {
	h, invSvc, _ := newInventoryHandler(1 << 20)

	invSvc.On("Import", mock.Anything, mock.Anything, "stock.pdf", mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body, contentType := multipartFile(t, "file", "stock.pdf", "%PDF")
	c, w := newContext(http.MethodPost, "/api/v1/inventory/import", body, uuid.New(), uuid.New())
	c.Request.Header.Set("Content-Type", contentType)
	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", decode(t, w).Error.Code)
}

func TestInventoryHandler_Export(t *testing.T) {
	h, _, exportSvc := newInventoryHandler(0)
	businessID := uuid.New()

	exportSvc.On("ExportInventory", mock.Anything, businessID, mock.Anything, domain.ExportFormatXLSX).Return(&service.ExportFile{
		FileName:    "Inventory_2024-01-31.xlsx",
		ContentType: domain.ValidExportFormats[domain.ExportFormatXLSX],
		Data:        []byte("PK"),
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/inventory/export?format=xlsx", nil, businessID, uuid.New())
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Inventory_2024-01-31.xlsx")
	assert.Equal(t, "PK", w.Body.String())
}

func TestInventoryHandler_Delete_NotFound(t *testing.T) {
	h, invSvc, _ := newInventoryHandler(0)
	businessID, itemID := uuid.New(), uuid.New()

	invSvc.On("Delete", mock.Anything, businessID, itemID).Return(domain.ErrNotFound)

	c, w := newContext(http.MethodDelete, "/api/v1/inventory/"+itemID.String(), nil, businessID, uuid.New())
	c.Params = gin.Params{{Key: "id", Value: itemID.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
