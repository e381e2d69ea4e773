package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	apperrors "s2x/internal/app/errors"
	"s2x/internal/app/logging"
	"s2x/internal/app/model"
)

// Preference keys, one JSON value each.
const (
	KeyTab      = "s2x.tab"
	KeyAPIBase  = "s2x.apiBase"
	KeyUser     = "s2x.user"
	KeyProject  = "s2x.project"
	KeyAudioURL = "s2x.audioUrl"
)

// LoadPreferences reads every preference key and decodes it over defaults.
// A value that fails to decode keeps its default; a failing store yields
// the defaults unchanged.
func LoadPreferences(ctx context.Context, store PreferenceStore, defaults model.Preferences, logger *zap.Logger) model.Preferences {
	logger = logging.OrNop(logger)
	prefs := defaults

	values, err := store.LoadValues(ctx)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", zap.Error(err))
		return prefs
	}

	decode := func(key string, dst any) bool {
		raw, ok := values[key]
		if !ok {
			return false
		}
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			logger.Warn("preference reset to default",
				zap.String("key", key),
				zap.Error(apperrors.Wrap(apperrors.ErrPersistenceCorrupt, err.Error())))
			return false
		}
		return true
	}

	var s string
	if decode(KeyTab, &s) && s != "" {
		prefs.Tab = s
	}
	s = ""
	if decode(KeyAPIBase, &s) && s != "" {
		prefs.APIBase = s
	}
	s = ""
	if decode(KeyAudioURL, &s) {
		prefs.AudioURL = s
	}

	var user model.User
	if decode(KeyUser, &user) && user.ID != "" {
		prefs.User = &user
	}
	var project model.Project
	if decode(KeyProject, &project) && project.ID != "" {
		prefs.Project = &project
	}
	return prefs
}

// SavePreferences writes every preference key.
func SavePreferences(ctx context.Context, store PreferenceStore, prefs model.Preferences) error {
	values := make(map[string]string, 5)
	put := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return apperrors.Wrapf(err, "encode preference %s", key)
		}
		values[key] = string(data)
		return nil
	}

	for key, v := range map[string]any{
		KeyTab:      prefs.Tab,
		KeyAPIBase:  prefs.APIBase,
		KeyUser:     prefs.User,
		KeyProject:  prefs.Project,
		KeyAudioURL: prefs.AudioURL,
	} {
		if err := put(key, v); err != nil {
			return err
		}
	}
	return store.SaveValues(ctx, values)
}
