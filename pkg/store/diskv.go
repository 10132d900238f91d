package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/sidekick/pkg/journal"
)

const (
	// Namespace is the directory under the base path holding the journal.
	Namespace = "sidekick-storage"

	stateKey = "state.json"
	tempDir  = ".tmp"
)

// Persistence loads and saves the whole journal state.
type Persistence interface {
	Load(ctx context.Context) (*journal.State, error)
	Save(ctx context.Context, state *journal.State) error
	Watch(ctx context.Context) (<-chan Event, error)
	BasePath() string
}

// Load creates a Persistence backed by diskv using the provided config. A nil
// config is read with LoadConfig.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		TempDir:           filepath.Join(basePath, tempDir),
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) BasePath() string {
	return p.basePath
}

// Load reads the stored state. A journal that was never saved comes back as
// a fresh default state.
func (p *persistence) Load(_ context.Context) (*journal.State, error) {
	if !p.d.Has(stateKey) {
		return journal.NewState(), nil
	}
	// Another process may have rewritten the file; skip the cache.
	rc, err := p.d.ReadStream(stateKey, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return journal.NewState(), nil
		}
		return nil, fmt.Errorf("store: read state: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read state: %w", err)
	}
	if len(data) == 0 {
		return journal.NewState(), nil
	}

	// Keys missing from the document keep their defaults.
	state := journal.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("store: decode state: %w", err)
	}
	state.Normalize()
	return state, nil
}

// Save overwrites the stored state.
func (p *persistence) Save(_ context.Context, state *journal.State) error {
	if state == nil {
		return errors.New("store: nil state")
	}
	if state.Version == 0 {
		state.Version = journal.CurrentVersion
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(p.basePath, tempDir), 0o755); err != nil {
		return fmt.Errorf("store: ensure temp dir: %w", err)
	}
	if err := p.d.Write(stateKey, data); err != nil {
		return fmt.Errorf("store: write state: %w", err)
	}
	return nil
}

func (p *persistence) namespaceDir() string {
	return filepath.Join(p.basePath, Namespace)
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{Namespace},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
