package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/handler"
	"ledgerbook/internal/service"
	"ledgerbook/internal/wizard"
	"ledgerbook/mocks"
)

func newDraftHandler() (*handler.DraftHandler, *mocks.MockDraftService) {
	svc := new(mocks.MockDraftService)
	return handler.NewDraftHandler(svc), svc
}

func draftContext(t *testing.T, method string, draftID uuid.UUID, body interface{}, businessID, userID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var c *gin.Context
	var w *httptest.ResponseRecorder
	if body == nil {
		c, w = newContext(method, "/api/v1/drafts/"+draftID.String(), nil, businessID, userID)
	} else {
		c, w = newContext(method, "/api/v1/drafts/"+draftID.String(), jsonBody(t, body), businessID, userID)
	}
	c.Params = gin.Params{{Key: "id", Value: draftID.String()}}
	return c, w
}

func TestDraftHandler_Create(t *testing.T) {
	h, svc := newDraftHandler()
	businessID, userID := uuid.New(), uuid.New()

	svc.On("Create", mock.Anything, businessID, userID, domain.DocTypePurchase).Return(&service.DraftView{
		ID:           uuid.New(),
		DocumentType: "purchase",
		Steps:        []string{"party", "items", "summary"},
		CurrentStep:  "party",
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/drafts", jsonBody(t, map[string]string{"document_type": "purchase"}), businessID, userID)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestDraftHandler_Create_MissingType(t *testing.T) {
	h, svc := newDraftHandler()

	c, w := newContext(http.MethodPost, "/api/v1/drafts", jsonBody(t, map[string]string{}), uuid.New(), uuid.New())
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDraftHandler_UpdateStep(t *testing.T) {
	h, svc := newDraftHandler()
	businessID, draftID := uuid.New(), uuid.New()

	svc.On("UpdateStep", mock.Anything, businessID, draftID, "party", mock.MatchedBy(func(f map[string]any) bool {
		return f["party_name"] == "Acme Traders"
	})).Return(&service.DraftView{ID: draftID, CurrentStep: "party"}, nil)

	c, w := draftContext(t, http.MethodPut, draftID, map[string]interface{}{
		"step":   "party",
		"fields": map[string]interface{}{"party_name": "Acme Traders"},
	}, businessID, uuid.New())
	h.UpdateStep(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDraftHandler_UpdateStep_UnknownStep(t *testing.T) {
	h, svc := newDraftHandler()
	draftID := uuid.New()

	svc.On("UpdateStep", mock.Anything, mock.Anything, draftID, "shipping", mock.Anything).
		Return(nil, fmt.Errorf("%w: shipping", wizard.ErrUnknownStep))

	c, w := draftContext(t, http.MethodPut, draftID, map[string]interface{}{
		"step":   "shipping",
		"fields": map[string]interface{}{"x": 1},
	}, uuid.New(), uuid.New())
	h.UpdateStep(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_STEP", decode(t, w).Error.Code)
}

func TestDraftHandler_Navigation(t *testing.T) {
	businessID, draftID := uuid.New(), uuid.New()

	t.Run("next", func(t *testing.T) {
		h, svc := newDraftHandler()
		svc.On("Next", mock.Anything, businessID, draftID).Return(&service.DraftView{ID: draftID, Current: 1, CurrentStep: "items"}, nil)

		c, w := draftContext(t, http.MethodPost, draftID, nil, businessID, uuid.New())
		h.Next(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"current_step":"items"`)
		svc.AssertExpectations(t)
	})

	t.Run("back", func(t *testing.T) {
		h, svc := newDraftHandler()
		svc.On("Back", mock.Anything, businessID, draftID).Return(&service.DraftView{ID: draftID, CurrentStep: "party"}, nil)

		c, w := draftContext(t, http.MethodPost, draftID, nil, businessID, uuid.New())
		h.Back(c)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("expired draft", func(t *testing.T) {
		h, svc := newDraftHandler()
		svc.On("Next", mock.Anything, businessID, draftID).Return(nil, domain.ErrDraftNotFound)

		c, w := draftContext(t, http.MethodPost, draftID, nil, businessID, uuid.New())
		h.Next(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "DRAFT_NOT_FOUND", decode(t, w).Error.Code)
	})
}

func TestDraftHandler_Submit(t *testing.T) {
	h, svc := newDraftHandler()
	businessID, userID, draftID := uuid.New(), uuid.New(), uuid.New()

	svc.On("Submit", mock.Anything, businessID, userID, draftID).Return(&service.DocumentResult{
		Document: &domain.Document{ID: uuid.New(), DocumentType: domain.DocTypeInvoice},
	}, nil)

	c, w := draftContext(t, http.MethodPost, draftID, nil, businessID, userID)
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestDraftHandler_Submit_EmptyDocument(t *testing.T) {
	h, svc := newDraftHandler()
	draftID := uuid.New()

	svc.On("Submit", mock.Anything, mock.Anything, mock.Anything, draftID).Return(nil, domain.ErrEmptyDocument)

	c, w := draftContext(t, http.MethodPost, draftID, nil, uuid.New(), uuid.New())
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_DOCUMENT", decode(t, w).Error.Code)
}

func TestDraftHandler_Delete(t *testing.T) {
	h, svc := newDraftHandler()
	businessID, draftID := uuid.New(), uuid.New()

	svc.On("Delete", mock.Anything, businessID, draftID).Return(nil)

	c, w := draftContext(t, http.MethodDelete, draftID, nil, businessID, uuid.New())
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
