package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseUserID(t *testing.T) {
	tests := []struct {
		name       string
		pathValue  string
		wantID     string
		wantOK     bool
		wantStatus int
	}{
		{"valid id", "u1", "u1", true, http.StatusOK},
		{"trims whitespace", "  u1  ", "u1", true, http.StatusOK},
		{"empty id", "", "", false, http.StatusBadRequest},
		{"whitespace only", "   ", "", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("uid", tt.pathValue)
			rec := httptest.NewRecorder()

			id, ok := ParseUserID(rec, req, zap.NewNop())
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, tt.wantStatus, rec.Code)
				assert.Contains(t, rec.Body.String(), "invalid_user_id")
			}
		})
	}
}
