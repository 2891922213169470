package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/scheduler/internal/errs"
	"github.com/taskforge/scheduler/internal/id"
	"github.com/taskforge/scheduler/internal/models"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[id.ID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[id.ID]models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsNil() {
		user.ID = id.New()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, userID id.ID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, errs.NotFound("fakeUserStore.FindByID", "user not found")
	}
	return &u, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, errs.NotFound("fakeUserStore.FindByUsername", "user not found")
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = *user
	return nil
}

func TestSignup_CreatesUserWithHashedPassword(t *testing.T) {
	svc := New(newFakeUserStore())
	user, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.Equal(t, DefaultSchedulingZone, user.SchedulingZone)
}

func TestSignup_RejectsShortPassword(t *testing.T) {
	svc := New(newFakeUserStore())
	_, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "short"})
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindValidation, kind)
}

func TestSignup_RejectsEmptyUsername(t *testing.T) {
	svc := New(newFakeUserStore())
	_, err := svc.Signup(context.Background(), SignupInput{Username: "   ", Password: "hunter22"})
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindValidation, kind)
}

func TestSignup_RejectsDuplicateUsername(t *testing.T) {
	users := newFakeUserStore()
	svc := New(users)
	ctx := context.Background()
	_, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupInput{Username: "alice", Password: "different1"})
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindValidation, kind)
}

func TestSignup_RejectsUnknownSchedulingZone(t *testing.T) {
	svc := New(newFakeUserStore())
	_, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "hunter22", SchedulingZone: "Not/AZone"})
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.KindValidation, kind)
}

func TestLogin_SucceedsWithCorrectPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := New(users)
	ctx := context.Background()
	_, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	user, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := New(users)
	ctx := context.Background()
	_, err := svc.Signup(ctx, SignupInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "wrongpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RejectsUnknownUsername(t *testing.T) {
	svc := New(newFakeUserStore())
	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
