//go:build unit

package httperr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-reservation/internal/handler/httperr"
	"shop-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{name: "not found", err: errs.NotFound("reservation"), expectedStatus: http.StatusNotFound, expectedMsg: "reservation not found"},
		{name: "validation", err: errs.Validation("party_size must be at least 1"), expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "party_size must be at least 1"},
		{name: "conflict", err: errs.Conflict("slot is no longer available"), expectedStatus: http.StatusConflict, expectedMsg: "slot is no longer available"},
		{name: "invalid state", err: errs.InvalidStatef("cannot cancel a %s reservation", "completed"), expectedStatus: http.StatusConflict, expectedMsg: "cannot cancel a completed reservation"},
		{name: "forbidden", err: errs.Forbidden("shop admin only"), expectedStatus: http.StatusForbidden, expectedMsg: "shop admin only"},
		{name: "wrapped kind keeps the leaf message", err: errs.Wrap(errs.NotFound("service"), "load booking context"), expectedStatus: http.StatusNotFound, expectedMsg: "service not found"},
		{name: "store failure is hidden", err: errs.Store(errs.New("connection reset"), "insert reservation"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		{name: "unclassified is hidden", err: errs.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			httperr.Abort(c, tc.err)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedStatus, httperr.StatusOf(tc.err))
			assert.True(t, c.IsAborted())
			require.Len(t, c.Errors, 1)
			recorded := c.Errors.Last()
			assert.True(t, recorded.IsType(gin.ErrorTypePublic))
			meta, ok := recorded.Meta.(httperr.Response)
			require.True(t, ok)
			assert.Equal(t, tc.expectedStatus, meta.Status)
			assert.Equal(t, tc.expectedMsg, meta.Error.Message)

			var body httperr.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedMsg, body.Error.Message)
		})
	}
}

func TestBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	httperr.BadRequest(c, errs.New("invalid UUID length: 3"), "Invalid shop ID format")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"Invalid shop ID format"}}`, rec.Body.String())
}
