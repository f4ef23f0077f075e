package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/pkg/logger"
	"localtrade.backend/pkg/wallet"
)

type fakeResolver struct {
	users map[string]*entities.User
	err   error
	seen  []string
}

func (f *fakeResolver) ResolveCaller(_ context.Context, address string) (*entities.User, error) {
	f.seen = append(f.seen, address)
	if f.err != nil {
		return nil, f.err
	}
	if !wallet.IsValidAddress(address) {
		return nil, domainerrors.Unauthorized("Invalid wallet address")
	}
	key := strings.ToLower(address)
	if u, ok := f.users[key]; ok {
		return u, nil
	}
	u := &entities.User{ID: uuid.New(), WalletAddress: key}
	f.users[key] = u
	return u, nil
}

type fakeAdminChecker struct {
	admins map[uuid.UUID]bool
	err    error
}

func (f fakeAdminChecker) IsAdmin(_ context.Context, id uuid.UUID) (bool, error) {
	return f.admins[id], f.err
}

func newResolver() *fakeResolver {
	return &fakeResolver{users: map[string]*entities.User{}}
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWalletAuth_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WalletAuth(newResolver(), false))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/x", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Wallet address header is required"}`, w.Body.String())
}

func TestWalletAuth_AnonymousPlaceholder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := newResolver()
	r := gin.New()
	r.Use(WalletAuth(resolver, true))
	r.GET("/x", func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, user.WalletAddress)
	})

	w := serve(r, http.MethodGet, "/x", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wallet.PlaceholderAddress, w.Body.String())
	assert.Equal(t, []string{wallet.PlaceholderAddress}, resolver.seen)
}

func TestWalletAuth_ResolvesCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WalletAuth(newResolver(), false))
	r.GET("/x", func(c *gin.Context) {
		user, _ := GetCurrentUser(c)
		assert.Equal(t, user.WalletAddress, c.Request.Context().Value(logger.WalletAddressKey))
		c.String(http.StatusOK, user.WalletAddress)
	})

	w := serve(r, http.MethodGet, "/x", map[string]string{WalletAddressHeader: "0xABCDEFabcdef0123456789012345678901234567"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xabcdefabcdef0123456789012345678901234567", w.Body.String())
}

func TestWalletAuth_InvalidAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WalletAuth(newResolver(), true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/x", map[string]string{WalletAddressHeader: "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid wallet address"}`, w.Body.String())
}

func TestWalletAuth_ResolverFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := newResolver()
	resolver.err = errors.New("db down")
	r := gin.New()
	r.Use(WalletAuth(resolver, false))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/x", map[string]string{WalletAddressHeader: wallet.PlaceholderAddress})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := newResolver()
	adminAddr := "0x1111111111111111111111111111111111111111"
	admin, _ := resolver.ResolveCaller(context.Background(), adminAddr)
	checker := fakeAdminChecker{admins: map[uuid.UUID]bool{admin.ID: true}}

	r := gin.New()
	r.GET("/open", RequireAdmin(checker), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	authed := r.Group("/", WalletAuth(resolver, false), RequireAdmin(checker))
	authed.GET("/admin", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/open", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/admin", map[string]string{WalletAddressHeader: "0x2222222222222222222222222222222222222222"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/admin", map[string]string{WalletAddressHeader: adminAddr})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireAdmin_CheckerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	checker := fakeAdminChecker{err: errors.New("db down")}
	r := gin.New()
	r.Use(WalletAuth(newResolver(), false), RequireAdmin(checker))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, http.MethodGet, "/admin", map[string]string{WalletAddressHeader: wallet.PlaceholderAddress})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := newResolver()
	suspendedAddr := "0x3333333333333333333333333333333333333333"
	suspended, _ := resolver.ResolveCaller(context.Background(), suspendedAddr)
	suspended.IsSuspended = true

	r := gin.New()
	r.Use(WalletAuth(resolver, false), RequireActive())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := serve(r, http.MethodPost, "/x", map[string]string{WalletAddressHeader: suspendedAddr})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Account suspended"}`, w.Body.String())

	w = serve(r, http.MethodPost, "/x", map[string]string{WalletAddressHeader: wallet.PlaceholderAddress})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequireActive_NoUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", RequireActive(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := serve(r, http.MethodPost, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
