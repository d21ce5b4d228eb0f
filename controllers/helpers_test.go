package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func travelRequest() map[string]any {
	return map[string]any{
		"category":        "short-term",
		"product":         "Travel Insurance",
		"firstName":       "Jane",
		"lastName":        "Doe",
		"email":           "jane@example.com",
		"phone":           "+1 555 123 4567",
		"dateOfBirth":     "1990-01-01",
		"destination":     "Thailand",
		"travelStartDate": "2025-07-01",
		"travelEndDate":   "2025-07-08",
		"travelersCount":  2,
	}
}

// asUser stands in for AuthMiddleware.
func asUser(id, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Set("email", email)
		c.Set("role", "ADMIN")
		c.Next()
	}
}
