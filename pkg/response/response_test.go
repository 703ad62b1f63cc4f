package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecove/catalog-service/internal/apperrors"
)

func record(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, err)
	return w
}

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.NotFound("missing"), http.StatusNotFound},
		{apperrors.Conflict("dup"), http.StatusConflict},
		{apperrors.InvalidRequest("bad"), http.StatusBadRequest},
		{apperrors.StateConflict("stale"), http.StatusUnprocessableEntity},
		{apperrors.Ambiguous("which"), http.StatusUnprocessableEntity},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := record(tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestError_CarriesViolations(t *testing.T) {
	err := apperrors.InvalidFields("invalid product request", []apperrors.FieldViolation{
		{Field: "name", Reason: "name is required"},
	})

	w := record(err)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Violations, 1)
	assert.Equal(t, "name", body.Violations[0].Field)
}
