package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const FileName = "auth.json"

// Providers lists the hosted providers that accept a stored API key.
var Providers = []string{"gemini", "anthropic", "openai"}

var ErrNoKey = errors.New("no API key stored")

// Store keeps provider API keys in a JSON file beside the config file.
type Store struct {
	path string
	now  func() time.Time
}

type Entry struct {
	Key     string    `json:"key"`
	SavedAt time.Time `json:"saved_at"`
}

// NewStore returns the store kept in dir, normally the directory holding
// the active config file.
func NewStore(dir string) *Store {
	return &Store{
		path: filepath.Join(dir, FileName),
		now:  time.Now,
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(provider string) (string, error) {
	entries, err := s.load()
	if err != nil {
		return "", err
	}

	entry, ok := entries[normalize(provider)]
	if !ok || entry.Key == "" {
		return "", fmt.Errorf("%w for %s", ErrNoKey, provider)
	}
	return entry.Key, nil
}

// Set stores key for provider, replacing any previous key.
func (s *Store) Set(provider, key string) error {
	name := normalize(provider)
	key = strings.TrimSpace(key)
	if name == "" {
		return errors.New("provider name is required")
	}
	if key == "" {
		return errors.New("API key cannot be empty")
	}

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[name] = Entry{Key: key, SavedAt: s.now().UTC()}
	return s.save(entries)
}

func (s *Store) Delete(provider string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}

	name := normalize(provider)
	if _, ok := entries[name]; !ok {
		return fmt.Errorf("%w for %s", ErrNoKey, provider)
	}
	delete(entries, name)
	return s.save(entries)
}

// Names returns the providers with a stored key, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Entry(provider string) (Entry, bool) {
	entries, err := s.load()
	if err != nil {
		return Entry{}, false
	}
	e, ok := entries[normalize(provider)]
	return e, ok
}

func (s *Store) load() (map[string]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Entry), nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	entries := make(map[string]Entry)
	if len(strings.TrimSpace(string(data))) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse auth file %s: %w", s.path, err)
	}
	return entries, nil
}

// save writes a temp file in the same directory and renames it over the
// auth file.
func (s *Store) save(entries map[string]Entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create auth directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}

func normalize(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:6] + "..." + strings.Repeat("*", 4)
}
