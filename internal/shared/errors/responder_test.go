package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

func missingMapper(err error) (ProblemDetail, bool) {
	if errors.Is(err, errMissing) {
		return ErrNotFound.WithDetail(err.Error()), true
	}
	return ProblemDetail{}, false
}

func respond(t *testing.T, r *ChainedResponder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	r.RespondError(c, err)

	var body ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestChainedResponder_UsesMatchingMapper(t *testing.T) {
	r := NewChainedResponder("", missingMapper)

	w, body := respond(t, r, fmt.Errorf("product 7: %w", errMissing))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	assert.Equal(t, TypeNotFound, body.Type)
	assert.Equal(t, "product 7: missing", body.Detail)
	assert.Equal(t, "/api/v1/cart", body.Instance)
}

func TestChainedResponder_UnmappedErrorIsOpaque(t *testing.T) {
	r := NewChainedResponder("https://shop.example", missingMapper)

	w, body := respond(t, r, errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "https://shop.example"+TypeInternal, body.Type)
	assert.NotContains(t, body.Detail, "10.0.0.3")
}

func TestChainedResponder_PassesThroughProblemDetails(t *testing.T) {
	r := NewChainedResponder("")

	assert.Equal(t, http.StatusConflict, r.Status(fmt.Errorf("wrapped: %w", ErrConflict)))
	assert.Equal(t, http.StatusOK, r.Status(nil))
}

func TestWithExtension_DoesNotMutateTemplate(t *testing.T) {
	p := ErrValidation.WithExtension("field", "quantity")

	assert.Equal(t, "quantity", p.Extensions["field"])
	assert.Nil(t, ErrValidation.Extensions)
}
