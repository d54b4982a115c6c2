package lead

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupLeadRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(store, nil))

	r := gin.New()
	v1 := r.Group("/api/v1")
	RegisterRoutes(v1, handler)
	return r
}

func TestListLeadsEndpoint(t *testing.T) {
	store := new(mockStore)
	store.On("List", mock.Anything, "ann", PageSize, 0).
		Return([]*Lead{{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Status: StatusNew}}, int64(1), nil)

	r := setupLeadRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?q=ann", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_count":1`)
	assert.Contains(t, w.Body.String(), `"ann@x.com"`)
}

func TestListLeadsRejectsBadPage(t *testing.T) {
	r := setupLeadRouter(new(mockStore))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?page=zero", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PAGE")
}

func TestCreateLeadValidation(t *testing.T) {
	r := setupLeadRouter(new(mockStore))

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"first_name":"Ann","last_name":"","email":"not-an-email"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestImportEndpointRejectsMissingColumns(t *testing.T) {
	store := new(mockStore)
	r := setupLeadRouter(store)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "leads.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("First Name,Last Name\n\"Ann\",\"Lee\""))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_COLUMNS")
	assert.Contains(t, w.Body.String(), "email")
	store.AssertNotCalled(t, "BulkInsert", mock.Anything, mock.Anything)
}

func TestImportEndpointAcceptsRawBody(t *testing.T) {
	store := new(mockStore)
	store.On("BulkInsert", mock.Anything, mock.MatchedBy(func(leads []*Lead) bool {
		return len(leads) == 1
	})).Return(nil).Once()

	r := setupLeadRouter(store)

	w := httptest.NewRecorder()
	body := strings.NewReader("First Name,Last Name,Email\n\"Ann\",\"Lee\",\"ann@x.com\"")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads/import", body)
	req.Header.Set("Content-Type", "text/csv")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":1`)
	store.AssertExpectations(t)
}

func TestExportEndpointSetsAttachment(t *testing.T) {
	store := new(mockStore)
	store.On("List", mock.Anything, "", -1, 0).
		Return([]*Lead{{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Status: StatusNew}}, int64(1), nil)

	r := setupLeadRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/export", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "leads_export_")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), `"First Name"`))
}

func TestDeleteLeadNotFound(t *testing.T) {
	store := new(mockStore)
	store.On("Delete", mock.Anything, "missing").Return(ErrLeadNotFound)

	r := setupLeadRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/leads/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "LEAD_NOT_FOUND")
}
