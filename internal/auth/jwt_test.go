package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	token, err := tm.Generate(42, IdentityInvestor, "小王")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectId)
	assert.Equal(t, IdentityInvestor, claims.Identity)
	assert.Equal(t, "小王", claims.Name)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", 24).Generate(1, IdentityAdmin, "admin")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 24).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", 24).Parse("not-a-token")
	assert.Error(t, err)
}

func newAuthTestRouter(tm *TokenManager, required ...Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/protected", JWTAuthMiddleware(tm))
	if len(required) > 0 {
		group.Use(IdentityRequired(required...))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject_id": SubjectId(c)})
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)
	r := newAuthTestRouter(tm)

	// 缺少请求头
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 格式有误
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 有效 Token
	token, err := tm.Generate(7, IdentityTeam, "火箭队")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject_id":7`)
}

func TestIdentityRequired(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)
	r := newAuthTestRouter(tm, IdentityAdmin)

	investorToken, err := tm.Generate(1, IdentityInvestor, "小王")
	require.NoError(t, err)
	adminToken, err := tm.Generate(0, IdentityAdmin, "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+investorToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
