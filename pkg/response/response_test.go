package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		body = nil
	}
	return w, body
}

func TestOKEnvelope(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		OK(c, gin.H{"id": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	require.Contains(t, body, "data")
}

func TestPaginatedEnvelope(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Paginated(c, []string{"a", "b"}, 42, 20, 0)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), data["total"])
	assert.Equal(t, float64(20), data["limit"])
	assert.Equal(t, float64(0), data["offset"])
}

func TestErrorMapsAppError(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Error(c, apperrors.NewNotFound("Booking not found"))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, apperrors.CodeNotFound, body["error"])
	assert.Equal(t, "Booking not found", body["message"])
}

func TestErrorInvalidTransitionCarriesText(t *testing.T) {
	// The admin UI reads transition refusals from the "error" field.
	w, body := record(func(c *gin.Context) {
		Error(c, apperrors.NewInvalidTransition("已完成的訂單無法取消"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "已完成的訂單無法取消", body["error"])
	assert.Equal(t, "已完成的訂單無法取消", body["message"])
}

func TestErrorWrapsUnknown(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Error(c, errors.New("boom"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperrors.CodeInternalError, body["error"])
}
