// Package identity keeps the anonymous local user: a random identifier that
// stands in for authentication, plus a display profile.
package identity

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/storage"
)

// StorageKey is the key the profile is persisted under
const StorageKey = "user_profile"

// DefaultUsername is shown until the user picks a name
const DefaultUsername = "Pengguna"

// MaxAvatarBytes is the largest avatar image accepted
const MaxAvatarBytes = 2 * 1024 * 1024

var (
	// ErrAvatarTooLarge is returned for images over MaxAvatarBytes
	ErrAvatarTooLarge = errors.New("avatar too large")
	// ErrAvatarNotImage is returned for files that are not images
	ErrAvatarNotImage = errors.New("avatar is not an image")
)

// Profile is the local user's record. Identifier never changes once created.
type Profile struct {
	Identifier string  `json:"identifier"`
	Username   string  `json:"username"`
	Bio        string  `json:"bio"`
	Avatar     *string `json:"avatar"`
}

// Patch holds the profile fields to change; nil fields are left alone
type Patch struct {
	Username *string
	Bio      *string
	Avatar   *string
}

// Store wraps the persisted profile record
type Store struct {
	mu      sync.Mutex
	backend storage.Store
	newID   func() string
	// generated holds an identifier created by this process so a failed
	// write does not produce a different one on the next call
	generated string
}

// NewStore creates a profile store over backend
func NewStore(backend storage.Store) *Store {
	return &Store{
		backend: backend,
		newID:   uuid.NewString,
	}
}

// load returns the persisted record merged over defaults. Missing or
// malformed data yields the defaults.
func (s *Store) load() Profile {
	p := Profile{Username: DefaultUsername}

	raw, ok, err := s.backend.Get(StorageKey)
	if err != nil {
		logger.Warn("Failed to read profile", "error", err)
		return p
	}
	if !ok || raw == "" {
		return p
	}

	var stored Profile
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("Ignoring malformed profile", "error", err)
		return p
	}

	p.Identifier = stored.Identifier
	if strings.TrimSpace(stored.Username) != "" {
		p.Username = stored.Username
	}
	p.Bio = stored.Bio
	p.Avatar = stored.Avatar
	return p
}

func (s *Store) save(p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.backend.Set(StorageKey, string(data))
}

// identifier returns the identifier this process created, creating it on
// first use. Callers hold mu.
func (s *Store) identifier() string {
	if s.generated == "" {
		s.generated = s.newID()
	}
	return s.generated
}

// ensureIdentifier fills in and persists an identifier when p has none. A
// persistence failure is logged and the same identifier is used until a
// write succeeds.
func (s *Store) ensureIdentifier(p *Profile) {
	if p.Identifier != "" {
		return
	}
	p.Identifier = s.identifier()
	if err := s.save(*p); err != nil {
		logger.Error("Failed to persist user identifier", "error", err)
	}
}

// Identifier returns the local user identifier, creating it on first use
func (s *Store) Identifier() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load()
	s.ensureIdentifier(&p)
	return p.Identifier
}

// Profile returns the full profile, creating the identifier on first use
func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load()
	s.ensureIdentifier(&p)
	return p
}

// SaveProfile applies patch and persists the result. Strings are trimmed and
// a blank username falls back to DefaultUsername. Only a storage failure
// returns an error.
func (s *Store) SaveProfile(patch Patch) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.load()
	if p.Identifier == "" {
		p.Identifier = s.identifier()
	}

	if patch.Username != nil {
		p.Username = strings.TrimSpace(*patch.Username)
		if p.Username == "" {
			p.Username = DefaultUsername
		}
	}
	if patch.Bio != nil {
		p.Bio = strings.TrimSpace(*patch.Bio)
	}
	if patch.Avatar != nil {
		if *patch.Avatar == "" {
			p.Avatar = nil
		} else {
			avatar := *patch.Avatar
			p.Avatar = &avatar
		}
	}

	if err := s.save(p); err != nil {
		return Profile{}, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.Debug("Profile saved", "username", p.Username)
	return p, nil
}

// UpdateAvatar replaces only the avatar. An empty dataURI clears it.
func (s *Store) UpdateAvatar(dataURI string) (Profile, error) {
	return s.SaveProfile(Patch{Avatar: &dataURI})
}

// AvatarFromFile reads an image file and encodes it as a data URI
func AvatarFromFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > MaxAvatarBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrAvatarTooLarge, info.Size(), MaxAvatarBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s", ErrAvatarNotImage, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
