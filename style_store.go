package gocarousel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// DefaultStyleKey is the key the composer saves its default style under.
const DefaultStyleKey = "gerador3_default_style"

// ErrNoDefaultStyle is returned by StyleStore.Load when nothing is saved
// under the key.
var ErrNoDefaultStyle = errors.New("no default style saved")

// StyleStore persists StyleSpec snapshots by key.
type StyleStore interface {
	Save(ctx context.Context, key string, s StyleSpec) error
	Load(ctx context.Context, key string) (StyleSpec, error)
	Delete(ctx context.Context, key string) error
}

var styleKeyRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

func checkStyleKey(key string) error {
	if !styleKeyRe.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid style key %q", key)
	}
	return nil
}

// FileStyleStore keeps one JSON file per key in a directory. Writes go to a
// temp file that is renamed into place.
type FileStyleStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStyleStore returns a store rooted at dir.
func NewFileStyleStore(dir string) *FileStyleStore {
	return &FileStyleStore{dir: dir}
}

func (s *FileStyleStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Save implements StyleStore.
func (s *FileStyleStore) Save(ctx context.Context, key string, st StyleSpec) error {
	if err := checkStyleKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode style: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("save style %q: %w", key, err)
	}
	logger().Debug("style saved", "key", key, "store", "file")
	return nil
}

// Load implements StyleStore.
func (s *FileStyleStore) Load(ctx context.Context, key string) (StyleSpec, error) {
	if err := checkStyleKey(key); err != nil {
		return StyleSpec{}, err
	}
	if err := ctx.Err(); err != nil {
		return StyleSpec{}, err
	}
	s.mu.Lock()
	data, err := os.ReadFile(s.path(key))
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StyleSpec{}, ErrNoDefaultStyle
		}
		return StyleSpec{}, err
	}
	var st StyleSpec
	if err := json.Unmarshal(data, &st); err != nil {
		return StyleSpec{}, fmt.Errorf("decode style %q: %w", key, err)
	}
	return st, nil
}

// Delete implements StyleStore. Deleting a missing key is not an error.
func (s *FileStyleStore) Delete(ctx context.Context, key string) error {
	if err := checkStyleKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
