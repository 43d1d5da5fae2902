package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// The routers below get a nil DB on purpose: every request in these tests must
// be rejected by validation before any database access happens.

func perform(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestValidateCustomerCancelReason(t *testing.T) {
	cases := []struct {
		name   string
		reason string
		ok     bool
	}{
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too short", "hi", false},
		{"four chars", "abcd", false},
		{"five chars", "abcde", true},
		{"five cjk chars", "行程臨時取消", true},
		{"trimmed into range", "  change of plans  ", true},
		{"at max", strings.Repeat("a", 200), true},
		{"over max", strings.Repeat("a", 201), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trimmed, err := validateCustomerCancelReason(tc.reason)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, strings.TrimSpace(tc.reason), trimmed)
			} else {
				require.Error(t, err)
				assert.Equal(t, apperrors.CodeInvalidParams, apperrors.From(err).Code)
			}
		})
	}
}

func TestValidateAdminCancelReason(t *testing.T) {
	_, err := validateAdminCancelReason("   ")
	require.Error(t, err)

	trimmed, err := validateAdminCancelReason("  司機久候不到  ")
	require.NoError(t, err)
	assert.Equal(t, "司機久候不到", trimmed)
}

func TestCustomerCancelRejectsBadInputBeforeDB(t *testing.T) {
	r := gin.New()
	r.POST("/api/bookings/:id/cancel", CancelBookingCustomer(nil, zap.NewNop()))

	t.Run("short reason", func(t *testing.T) {
		w, body := perform(r, http.MethodPost, "/api/bookings/1/cancel",
			`{"customerUid":"u1","reason":"hi"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, apperrors.CodeInvalidParams, body["error"])
	})

	t.Run("overlong reason", func(t *testing.T) {
		long := strings.Repeat("x", 201)
		w, _ := perform(r, http.MethodPost, "/api/bookings/1/cancel",
			`{"customerUid":"u1","reason":"`+long+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing customerUid", func(t *testing.T) {
		w, _ := perform(r, http.MethodPost, "/api/bookings/1/cancel",
			`{"reason":"change of plans"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w, _ := perform(r, http.MethodPost, "/api/bookings/abc/cancel",
			`{"customerUid":"u1","reason":"change of plans"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminCancelRejectsBlankReasonBeforeDB(t *testing.T) {
	r := gin.New()
	r.POST("/api/admin/bookings/:id/cancel", CancelBookingAdmin(nil, zap.NewNop()))

	w, body := perform(r, http.MethodPost, "/api/admin/bookings/1/cancel", `{"reason":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestParseDateRange(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		start, end, err := parseDateRange("2026-01-01", "2026-01-31")
		require.NoError(t, err)
		assert.True(t, start.Before(end))
	})

	t.Run("same day", func(t *testing.T) {
		_, _, err := parseDateRange("2026-01-15", "2026-01-15")
		assert.NoError(t, err)
	})

	for name, pair := range map[string][2]string{
		"missing start": {"", "2026-01-31"},
		"missing end":   {"2026-01-01", ""},
		"bad format":    {"01/01/2026", "2026-01-31"},
		"inverted":      {"2026-02-01", "2026-01-01"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := parseDateRange(pair[0], pair[1])
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeInvalidParams, apperrors.From(err).Code)
		})
	}
}

func TestEarningsSummaryRejectsInvertedRange(t *testing.T) {
	r := gin.New()
	r.GET("/api/admin/earnings/summary", EarningsSummary(nil))

	w, body := perform(r, http.MethodGet,
		"/api/admin/earnings/summary?startDate=2026-02-01&endDate=2026-01-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "INVALID_PARAMS", body["error"])
}

func TestMarkMessagesReadRequiresUserID(t *testing.T) {
	r := gin.New()
	r.PUT("/api/chat/mark-read/:bookingId", MarkMessagesRead(nil))

	w, body := perform(r, http.MethodPut, "/api/chat/mark-read/5", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PARAMS", body["error"])
}

func TestParseLimitOffsetBounds(t *testing.T) {
	r := gin.New()
	var limit, offset int
	r.GET("/probe", func(c *gin.Context) {
		limit, offset = parseLimitOffset(c)
		c.Status(http.StatusOK)
	})

	perform(r, http.MethodGet, "/probe?limit=500&offset=-3", "")
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	perform(r, http.MethodGet, "/probe?limit=50&offset=10", "")
	assert.Equal(t, 50, limit)
	assert.Equal(t, 10, offset)
}
