package identity

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"s2x/internal/app/api/remote"
	"s2x/internal/app/model"
	"s2x/internal/app/repository"
	"s2x/internal/app/testutil"
)

func TestEnsure_CreatesAndPersists(t *testing.T) {
	svc := testutil.NewFakeService(t)
	store := repository.NewMemoryStore()
	b := New(remote.NewClient(remote.Config{BaseURL: svc.URL()}, nil), store, nil)
	ctx := context.Background()

	prefs, err := b.Ensure(ctx, model.Preferences{Tab: model.DefaultTab}, false)
	require.NoError(t, err)
	require.True(t, prefs.Bootstrapped())
	assert.Equal(t, "user-1", prefs.User.ID)
	assert.Equal(t, "project-1", prefs.Project.ID)

	body := svc.RequestsTo(http.MethodPost, "/users")[0].Body
	assert.True(t, strings.HasPrefix(body["email"].(string), "guest+"))
	assert.Equal(t, GuestName, body["name"])
	assert.NotEmpty(t, body["pwd_hash"])
	assert.Equal(t, "user-1", svc.RequestsTo(http.MethodPost, "/projects")[0].Body["owner_id"])

	loaded := repository.LoadPreferences(ctx, store, model.Preferences{}, nil)
	assert.True(t, loaded.Bootstrapped())
	assert.Equal(t, ProjectName, loaded.Project.Name)
}

func TestEnsure_ReusesExisting(t *testing.T) {
	svc := testutil.NewFakeService(t)
	b := New(remote.NewClient(remote.Config{BaseURL: svc.URL()}, nil), repository.NewMemoryStore(), nil)

	current := model.Preferences{User: &model.User{ID: "u"}, Project: &model.Project{ID: "p"}}
	got, err := b.Ensure(context.Background(), current, false)
	require.NoError(t, err)
	assert.Equal(t, current, got)
	assert.Empty(t, svc.Requests())

	got, err = b.Ensure(context.Background(), current, true)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.User.ID)
}

type failingRemote struct{}

func (failingRemote) CreateUser(context.Context, model.UserCreate) (*model.User, error) {
	return &model.User{ID: "u"}, nil
}

func (failingRemote) CreateProject(context.Context, model.ProjectCreate) (*model.Project, error) {
	return nil, &remote.RemoteError{Method: "POST", Path: "/projects", Status: 500}
}

func TestEnsure_FailureLeavesPreferencesUntouched(t *testing.T) {
	store := repository.NewMemoryStore()
	b := New(failingRemote{}, store, nil)

	current := model.Preferences{Tab: "home"}
	got, err := b.Ensure(context.Background(), current, false)
	require.Error(t, err)
	assert.Equal(t, current, got)

	values, _ := store.LoadValues(context.Background())
	assert.Empty(t, values)
}
