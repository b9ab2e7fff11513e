package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-lookup/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Configuration keys, in dot notation.
const (
	KeyURL         = "sharepoint.url"
	KeyUsername    = "sharepoint.username"
	KeyPassword    = "sharepoint.password"
	KeyDomain      = "sharepoint.domain"
	KeySubsite     = "sharepoint.subsite"
	KeyAccessToken = "sharepoint.access_token"
	KeyExactMatch  = "search.exact_match"
	KeyConcurrency = "search.concurrency"
)

// envOverrides maps configuration keys to environment variables that
// take precedence over the file.
var envOverrides = map[string]string{
	KeyURL:         "SPLOOKUP_URL",
	KeyUsername:    "SPLOOKUP_USERNAME",
	KeyPassword:    "SPLOOKUP_PASSWORD",
	KeyDomain:      "SPLOOKUP_DOMAIN",
	KeySubsite:     "SPLOOKUP_SUBSITE",
	KeyAccessToken: "SPLOOKUP_ACCESS_TOKEN",
}

// ConfigStore is a file-based configuration store using TOML.
// Configuration is stored in config.toml within the splookup config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.splookup/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".splookup")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return NewConfigStoreAt(filepath.Join(configDir, "config.toml"))
}

// NewConfigStoreAt creates a config store backed by the file at path.
// A missing file is treated as empty configuration.
func NewConfigStoreAt(path string) (*ConfigStore, error) {
	s := &ConfigStore{
		filePath: path,
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
// Environment overrides take precedence over the file.
func (s *ConfigStore) GetString(key string) string {
	if env, ok := envOverrides[key]; ok {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}

	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// Options returns the connection options described by the configuration.
func (s *ConfigStore) Options() domain.ConnectionOptions {
	return domain.ConnectionOptions{
		URL:         domain.OptionValue{Value: s.GetString(KeyURL)},
		Username:    domain.OptionValue{Value: s.GetString(KeyUsername)},
		Password:    domain.OptionValue{Value: s.GetString(KeyPassword)},
		Domain:      domain.OptionValue{Value: s.GetString(KeyDomain)},
		Subsite:     domain.OptionValue{Value: s.GetString(KeySubsite)},
		AccessToken: domain.OptionValue{Value: s.GetString(KeyAccessToken)},
		ExactMatch:  s.GetBool(KeyExactMatch),
	}
}

// Concurrency returns the configured fan-out limit (0 = default).
func (s *ConfigStore) Concurrency() int {
	return s.GetInt(KeyConcurrency)
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(unflattenMap(s.data))
	if err != nil {
		return err
	}

	// Write with restricted permissions, the file holds credentials
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start empty
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	// Flatten nested maps into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	return nil
}

// Reload re-reads the configuration file.
func (s *ConfigStore) Reload() error {
	return s.Load()
}

// Watch reloads the configuration whenever the file is written and then
// calls onChange. It blocks until ctx is cancelled. The parent directory
// is watched so editors that replace the file are handled.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Load(); err != nil {
				logger.Warn("Config reload failed: %v", err)
				continue
			}
			logger.Info("Config reloaded from %s", s.filePath)
			if onChange != nil {
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error: %v", err)
		}
	}
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// unflattenMap converts dot-notation keys back into nested tables.
func unflattenMap(m map[string]any) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		parts := strings.Split(key, ".")
		table := result
		for _, part := range parts[:len(parts)-1] {
			next, ok := table[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				table[part] = next
			}
			table = next
		}
		table[parts[len(parts)-1]] = value
	}

	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
