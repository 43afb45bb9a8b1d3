package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/globetrotter/planner/internal/middleware"
)

// drain mimics a JSON handler: it consumes the body and reports a
// MaxBytesError the way the handlers do.
var drain = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, err := io.ReadAll(r.Body)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusNoContent)
})

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64

	tests := []struct {
		name          string
		size          int
		contentLength int64
		want          int
		envelope      bool
	}{
		{"under limit", 40, 40, http.StatusNoContent, false},
		{"exactly at limit", limit, limit, http.StatusNoContent, false},
		{"declared length over limit", 65, 65, http.StatusRequestEntityTooLarge, true},
		{"chunked body over limit", 500, -1, http.StatusRequestEntityTooLarge, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.NewReader(strings.Repeat("{", tt.size))
			req := httptest.NewRequest(http.MethodPost, "/trips/x/activities", body)
			req.ContentLength = tt.contentLength
			rec := httptest.NewRecorder()

			middleware.NewMaxBodySizeHandler(limit)(drain).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.envelope {
				assert.JSONEq(t,
					`{"error":{"code":"payload_too_large","message":"request body too large"}}`,
					rec.Body.String())
			}
		})
	}
}
