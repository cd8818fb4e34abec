package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestLegacyFailNotFoundUsesMessageOnly(t *testing.T) {
	c, w := newContext()
	LegacyFail(c, appErrors.Clone(appErrors.ErrNotFound, "Aluno não encontrado"))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body LegacyError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Aluno não encontrado", body.Error)
}

func TestLegacyFailInternalCarriesCause(t *testing.T) {
	c, w := newContext()
	LegacyFail(c, appErrors.As(appErrors.ErrUpstream, fmt.Errorf("quota exceeded"), "falha ao gerar parecer"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"falha ao gerar parecer: quota exceeded"}`, w.Body.String())
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestErrorEnvelope(t *testing.T) {
	c, w := newContext()
	Error(c, appErrors.ErrForbidden)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":{"code":"FORBIDDEN","message":"forbidden","status":403}}`, w.Body.String())
}
