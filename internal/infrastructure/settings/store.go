package settings

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/platform/logging"
)

const DefaultRefreshInterval = 30 * time.Second

// Settings is everything the service remembers across restarts: how often to
// refresh and which leagues the user follows.
type Settings struct {
	RefreshIntervalSeconds int      `json:"refresh_interval_seconds"`
	EnabledLeagues         []string `json:"enabled_leagues"`
}

func (s Settings) RefreshInterval() time.Duration {
	if s.RefreshIntervalSeconds <= 0 {
		return DefaultRefreshInterval
	}
	return time.Duration(s.RefreshIntervalSeconds) * time.Second
}

// DefaultSettings follows every league in the catalog at the default cadence.
func DefaultSettings() Settings {
	leagues := catalog.Leagues()
	ids := make([]string, 0, len(leagues))
	for _, league := range leagues {
		ids = append(ids, league.ID())
	}
	return Settings{
		RefreshIntervalSeconds: int(DefaultRefreshInterval / time.Second),
		EnabledLeagues:         ids,
	}
}

// Store persists settings as a JSON file. Writes go through a temp file and
// rename so a crash mid-write never leaves a torn file behind.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *logging.Logger
}

func NewStore(path string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{path: path, logger: logger}
}

// Load reads persisted settings. A missing file is not an error: first run
// gets the defaults. A corrupt file is reported so the caller can decide
// whether to continue with defaults.
func (s *Store) Load(ctx context.Context) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.InfoContext(ctx, "no settings file, using defaults", "path", s.path)
			return DefaultSettings(), nil
		}
		return DefaultSettings(), crerr.Wrapf(err, "read settings %s", s.path)
	}

	var loaded Settings
	if err := sonic.Unmarshal(raw, &loaded); err != nil {
		return DefaultSettings(), crerr.Wrapf(err, "decode settings %s", s.path)
	}

	if loaded.RefreshIntervalSeconds <= 0 {
		loaded.RefreshIntervalSeconds = int(DefaultRefreshInterval / time.Second)
	}
	if loaded.EnabledLeagues == nil {
		loaded.EnabledLeagues = DefaultSettings().EnabledLeagues
	}
	return loaded, nil
}

// Save atomically replaces the settings file.
func (s *Store) Save(ctx context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, settings)
}

// Update applies mutate to the current settings and persists the result in
// one critical section. A missing or corrupt file starts from defaults.
func (s *Store) Update(ctx context.Context, mutate func(Settings) Settings) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := DefaultSettings()
	if raw, err := os.ReadFile(s.path); err == nil {
		var loaded Settings
		if decodeErr := sonic.Unmarshal(raw, &loaded); decodeErr == nil {
			if loaded.RefreshIntervalSeconds > 0 {
				current.RefreshIntervalSeconds = loaded.RefreshIntervalSeconds
			}
			if loaded.EnabledLeagues != nil {
				current.EnabledLeagues = loaded.EnabledLeagues
			}
		}
	}

	next := mutate(current)
	if err := s.saveLocked(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

func (s *Store) saveLocked(ctx context.Context, settings Settings) error {
	raw, err := sonic.MarshalIndent(settings, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode settings")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create settings dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return crerr.Wrap(err, "create temp settings file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return crerr.Wrap(err, "write temp settings file")
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrap(err, "close temp settings file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return crerr.Wrapf(err, "replace settings %s", s.path)
	}

	s.logger.DebugContext(ctx, "settings saved", "path", s.path)
	return nil
}
