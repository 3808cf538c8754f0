package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcruz/gestor/internal/auth"
	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
	"github.com/mfcruz/gestor/internal/store"
)

// In-memory repository: users keyed by email, plus the single session blob.
type memRepo struct {
	users   map[string]*model.User
	hashes  map[string]string
	session *model.User
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:  make(map[string]*model.User),
		hashes: make(map[string]string),
	}
}

func (m *memRepo) CreateUser(_ context.Context, u *model.User, hash string) error {
	m.users[u.Email] = u
	m.hashes[u.Email] = hash

	return nil
}

func (m *memRepo) GetUserByEmail(_ context.Context, email string) (*model.User, string, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, "", auth.ErrNotFound
	}

	return u, m.hashes[email], nil
}

func (m *memRepo) UpdateUser(_ context.Context, u *model.User) error {
	m.users[u.Email] = u
	return nil
}

func (m *memRepo) SaveSession(_ context.Context, u *model.User) error {
	copied := *u
	m.session = &copied

	return nil
}

func (m *memRepo) LoadSession(context.Context) (*model.User, error) { return m.session, nil }

func (m *memRepo) ClearSession(context.Context) error {
	m.session = nil
	return nil
}

func newService(repo auth.Repository) (*auth.Service, *store.Store) {
	st := store.New(state.New())
	return auth.NewService(st, repo, "test-secret", time.Hour), st
}

func register(t *testing.T, svc *auth.Service) *model.User {
	t.Helper()

	u, token, err := svc.Register(context.Background(), auth.RegisterParams{
		Name:         "Engenheira Marta",
		Email:        "marta@example.com",
		TaxID:        "12345678901",
		BusinessType: model.BusinessMEI,
		FiscalRegime: model.RegimeMEI,
		Password:     "s3nha-forte",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	return u
}

func TestService_RegisterAndLogin(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	u := register(t, svc)
	assert.NotEmpty(t, u.ID)

	// The session blob is persisted on register.
	require.NotNil(t, repo.session)
	assert.Equal(t, u.ID, repo.session.ID)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, repo.session)

	_, _, err := svc.Login(context.Background(), "marta@example.com", "errada")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "ninguem@example.com", "s3nha-forte")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	logged, token, err := svc.Login(context.Background(), "marta@example.com", "s3nha-forte")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotEmpty(t, token)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, u.ID, current.ID)
}

func TestService_CurrentWithoutSession(t *testing.T) {
	svc, _ := newService(newMemRepo())

	_, err := svc.Current()
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestService_UpdateProfileRequiresSession(t *testing.T) {
	svc, _ := newService(newMemRepo())

	name := "Outro Nome"

	_, err := svc.UpdateProfile(context.Background(), auth.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	_, err = svc.UpdateFiscalInfo(context.Background(), model.BusinessEPP, model.RegimeSimplesNacional)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestService_UpdateFiscalInfo(t *testing.T) {
	repo := newMemRepo()
	svc, st := newService(repo)

	register(t, svc)

	u, err := svc.UpdateFiscalInfo(context.Background(), model.BusinessEPP, model.RegimeSimplesNacional)
	require.NoError(t, err)
	assert.Equal(t, model.BusinessEPP, u.BusinessType)

	snap := st.Snapshot()
	require.NotNil(t, snap.Auth.User)
	assert.Equal(t, model.RegimeSimplesNacional, snap.Auth.User.FiscalRegime)

	// The persisted session follows the update.
	require.NotNil(t, repo.session)
	assert.Equal(t, model.BusinessEPP, repo.session.BusinessType)
}

func TestService_RestoreSession(t *testing.T) {
	repo := newMemRepo()
	repo.session = &model.User{ID: "u1", Name: "Marta"}

	svc, _ := newService(repo)

	require.NoError(t, svc.RestoreSession(context.Background()))

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "u1", current.ID)
}

func TestService_Tokens(t *testing.T) {
	svc, _ := newService(newMemRepo())

	u := model.User{ID: "u1"}

	token, err := svc.IssueToken(u)
	require.NoError(t, err)

	id, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	_, err = svc.VerifyToken(token + "tampered")
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	// A token signed with a different secret is rejected.
	stranger := auth.NewService(store.New(state.New()), newMemRepo(), "other-secret", time.Hour)
	foreign, err := stranger.IssueToken(u)
	require.NoError(t, err)

	_, err = svc.VerifyToken(foreign)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}
