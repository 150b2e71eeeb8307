// Package session issues and persists the anonymous identity that gates
// phrase submission.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// FileName is the session file written inside the config directory.
const FileName = "session.yaml"

// Gate holds the current anonymous identity.
// The zero identity means logged out.
type Gate struct {
	mu       sync.RWMutex
	dir      string
	identity types.Identity
	logger   *zap.Logger

	newID func() (uuid.UUID, error)
	now   func() time.Time
}

// NewGate creates a logged-out gate that persists to dir/session.yaml.
// An empty dir keeps the identity in memory only.
func NewGate(dir string, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		dir:    dir,
		logger: logger.Named("session"),
		newID:  uuid.NewV7,
		now:    time.Now,
	}
}

func (g *Gate) path() string {
	return filepath.Join(g.dir, FileName)
}

// Load restores a persisted identity. A missing session file leaves the gate
// logged out and is not an error.
func (g *Gate) Load() error {
	if g.dir == "" {
		return nil
	}
	data, err := os.ReadFile(g.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var id types.Identity
	if err := yaml.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("parse session: %w", err)
	}

	g.mu.Lock()
	g.identity = id
	g.mu.Unlock()
	if !id.IsZero() {
		g.logger.Debug("session restored", zap.String("id", id.ID))
	}
	return nil
}

// Login issues a new anonymous identity and persists it. When already logged
// in the current identity is returned unchanged. On failure the gate stays
// logged out and the error matches ErrAuthFailure.
func (g *Gate) Login(ctx context.Context) (types.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.identity.IsZero() {
		return g.identity, nil
	}
	if err := ctx.Err(); err != nil {
		return types.Identity{}, fmt.Errorf("%w: %w", types.ErrAuthFailure, err)
	}

	id, err := g.newID()
	if err != nil {
		return types.Identity{}, fmt.Errorf("%w: generate id: %w", types.ErrAuthFailure, err)
	}
	identity := types.Identity{ID: id.String(), CreatedAt: g.now().UTC()}

	if g.dir != "" {
		if err := g.save(identity); err != nil {
			return types.Identity{}, fmt.Errorf("%w: %w", types.ErrAuthFailure, err)
		}
	}

	g.identity = identity
	g.logger.Info("logged in", zap.String("id", identity.ID))
	return identity, nil
}

// save writes the session file with the temp-file, rename pattern.
func (g *Gate) save(identity types.Identity) (err error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := yaml.Marshal(&identity)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(g.dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if err = os.Rename(tmp.Name(), g.path()); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}
	return nil
}

// Logout forgets the identity and removes the session file. Idempotent.
func (g *Gate) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dir != "" {
		if err := os.Remove(g.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
	}
	if !g.identity.IsZero() {
		g.logger.Info("logged out", zap.String("id", g.identity.ID))
	}
	g.identity = types.Identity{}
	return nil
}

// IsLoggedIn reports whether an identity is present.
func (g *Gate) IsLoggedIn() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return !g.identity.IsZero()
}

// CurrentIdentity returns the identity and whether one is present.
func (g *Gate) CurrentIdentity() (types.Identity, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.identity, !g.identity.IsZero()
}

// Matches reports whether id is the current identity's id.
func (g *Gate) Matches(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return id != "" && id == g.identity.ID
}
