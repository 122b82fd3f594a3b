package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"roga/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
	}{
		{services.ErrMissingQuestion, http.StatusBadRequest},
		{services.ErrInvalidPersona, http.StatusBadRequest},
		{fmt.Errorf("%w: must be between 1 and 10", services.ErrInvalidRounds), http.StatusBadRequest},
		{services.ErrRoundExceeded, http.StatusBadRequest},
		{services.ErrNoTurns, http.StatusBadRequest},
		{services.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("scoring failed: %w", errors.New("quota")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			assert.Len(t, c.Errors, 1)
		})
	}
}
