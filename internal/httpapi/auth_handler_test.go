package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/scheduler/internal/auth"
	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
)

type fakeUserStore struct {
	byUsername map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byUsername: make(map[string]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	if u.ID.IsNil() {
		u.ID = id.New()
	}
	f.byUsername[u.Username] = *u
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, userID id.ID) (*models.User, error) {
	for _, u := range f.byUsername {
		if u.ID == userID {
			cp := u
			return &cp, nil
		}
	}
	return nil, errs.NotFound("fakeUserStore.FindByID", "not found")
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, errs.NotFound("fakeUserStore.FindByUsername", "not found")
	}
	cp := u
	return &cp, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *models.User) error {
	f.byUsername[u.Username] = *u
	return nil
}

func authRouter(svc *auth.Service) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	h := NewAuthHandler(svc)
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", h.Logout)
	return r
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	svc := auth.New(newFakeUserStore())
	r := authRouter(svc)

	rec := doJSON(r, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice", "password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	svc := auth.New(newFakeUserStore())
	r := authRouter(svc)

	rec := doJSON(r, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice", "password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestAuthHandler_Login_RejectsBadPassword(t *testing.T) {
	svc := auth.New(newFakeUserStore())
	r := authRouter(svc)

	doJSON(r, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice", "password": "hunter22",
	}, nil)

	rec := doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_ClearsSession(t *testing.T) {
	svc := auth.New(newFakeUserStore())
	r := authRouter(svc)

	doJSON(r, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice", "password": "hunter22",
	}, nil)
	loginRec := doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice", "password": "hunter22",
	}, nil)
	cookies := loginRec.Result().Cookies()

	rec := doJSON(r, http.MethodPost, "/api/auth/logout", nil, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
}
