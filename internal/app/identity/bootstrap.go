package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"s2x/internal/app/logging"
	"s2x/internal/app/model"
	"s2x/internal/app/repository"
)

const (
	GuestName   = "Guest"
	ProjectName = "My transcriptions"
)

// Remote creates the owning identity and its project.
type Remote interface {
	CreateUser(ctx context.Context, req model.UserCreate) (*model.User, error)
	CreateProject(ctx context.Context, req model.ProjectCreate) (*model.Project, error)
}

// Bootstrapper makes sure a user and project exist before submission.
type Bootstrapper struct {
	remote Remote
	prefs  repository.PreferenceStore
	logger *zap.Logger
}

func New(remote Remote, prefs repository.PreferenceStore, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{remote: remote, prefs: prefs, logger: logging.OrNop(logger)}
}

// Ensure returns current unchanged when it already holds a user and project
// (unless force is set). Otherwise it registers a guest user and a project,
// persists both and returns the updated preferences. On failure nothing is
// persisted.
func (b *Bootstrapper) Ensure(ctx context.Context, current model.Preferences, force bool) (model.Preferences, error) {
	if current.Bootstrapped() && !force {
		return current, nil
	}

	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return current, fmt.Errorf("generate password: %w", err)
	}

	user, err := b.remote.CreateUser(ctx, model.UserCreate{
		Email:   fmt.Sprintf("guest+%s@example.com", uuid.NewString()),
		Name:    GuestName,
		PwdHash: hex.EncodeToString(secret),
		Role:    "user",
	})
	if err != nil {
		return current, fmt.Errorf("create user: %w", err)
	}

	project, err := b.remote.CreateProject(ctx, model.ProjectCreate{OwnerID: user.ID, Name: ProjectName})
	if err != nil {
		return current, fmt.Errorf("create project: %w", err)
	}

	next := current
	next.User = user
	next.Project = project
	if err := repository.SavePreferences(ctx, b.prefs, next); err != nil {
		return current, fmt.Errorf("persist identity: %w", err)
	}

	b.logger.Info("bootstrapped identity",
		zap.String("user_id", user.ID),
		zap.String("project_id", project.ID))
	return next, nil
}
