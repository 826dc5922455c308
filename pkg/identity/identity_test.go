package identity

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/resep/pkg/storage"
)

func ptr(s string) *string { return &s }

func TestIdentifierIsStable(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := NewStore(backend)

	first := s.Identifier()
	_, err := uuid.Parse(first)
	require.NoError(t, err, "identifier should be a uuid")

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Identifier())
	}

	// A second store over the same storage sees the same identity
	assert.Equal(t, first, NewStore(backend).Identifier())
	assert.Equal(t, first, s.Profile().Identifier)
}

func TestIdentifiersDifferAcrossDevices(t *testing.T) {
	a := NewStore(storage.NewMemoryStore()).Identifier()
	b := NewStore(storage.NewMemoryStore()).Identifier()

	assert.NotEqual(t, a, b)
}

func TestProfileDefaults(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())

	p := s.Profile()

	assert.NotEmpty(t, p.Identifier)
	assert.Equal(t, DefaultUsername, p.Username)
	assert.Empty(t, p.Bio)
	assert.Nil(t, p.Avatar)
}

func TestProfileMergesPartialRecord(t *testing.T) {
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Set(StorageKey, `{"identifier":"dev-1","bio":"suka pedas"}`))

	p := NewStore(backend).Profile()

	assert.Equal(t, Profile{Identifier: "dev-1", Username: DefaultUsername, Bio: "suka pedas"}, p)
}

func TestMalformedProfileFallsBackToDefaults(t *testing.T) {
	backend := storage.NewMemoryStore()
	require.NoError(t, backend.Set(StorageKey, `{broken`))
	s := NewStore(backend)

	p := s.Profile()

	assert.Equal(t, DefaultUsername, p.Username)
	assert.NotEmpty(t, p.Identifier)
	assert.Equal(t, p.Identifier, s.Identifier(), "regenerated identifier is persisted")
}

func TestSaveProfileTrimsAndDefaults(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())
	id := s.Identifier()

	p, err := s.SaveProfile(Patch{Username: ptr("  alice  "), Bio: ptr("  masak tiap hari ")})
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "masak tiap hari", p.Bio)
	assert.Equal(t, id, p.Identifier)

	p, err = s.SaveProfile(Patch{Username: ptr("   ")})
	require.NoError(t, err)
	assert.Equal(t, DefaultUsername, p.Username)
	assert.Equal(t, "masak tiap hari", p.Bio, "untouched fields are kept")

	assert.Equal(t, p, s.Profile())
}

func TestSaveProfileNeverChangesIdentifier(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := NewStore(backend)
	id := s.Identifier()

	_, err := s.SaveProfile(Patch{Username: ptr("bob")})
	require.NoError(t, err)

	raw, _, _ := backend.Get(StorageKey)
	var stored Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, id, stored.Identifier)
}

func TestSaveProfileCreatesIdentifierWhenMissing(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())

	p, err := s.SaveProfile(Patch{Username: ptr("carol")})

	require.NoError(t, err)
	assert.NotEmpty(t, p.Identifier)
	assert.Equal(t, p.Identifier, s.Identifier())
}

func TestSaveProfileStorageFailure(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := NewStore(backend)
	backend.FailWrites(errors.New("disk full"))

	_, err := s.SaveProfile(Patch{Username: ptr("dave")})

	assert.Error(t, err)
}

func TestIdentifierSurvivesStorageFailure(t *testing.T) {
	backend := storage.NewMemoryStore()
	backend.FailWrites(errors.New("disk full"))
	s := NewStore(backend)

	first := s.Identifier()
	require.NotEmpty(t, first)
	assert.Equal(t, first, s.Identifier())
	assert.Equal(t, first, s.Profile().Identifier)

	// once writes work again the same identifier is persisted
	backend.FailWrites(nil)
	assert.Equal(t, first, s.Identifier())
	assert.Equal(t, first, NewStore(backend).Identifier())
}

func TestUpdateAvatarOnlyTouchesAvatar(t *testing.T) {
	s := NewStore(storage.NewMemoryStore())
	before, err := s.SaveProfile(Patch{Username: ptr("erin"), Bio: ptr("bio")})
	require.NoError(t, err)

	after, err := s.UpdateAvatar("data:image/png;base64,AAAA")
	require.NoError(t, err)

	require.NotNil(t, after.Avatar)
	assert.Equal(t, "data:image/png;base64,AAAA", *after.Avatar)
	assert.Equal(t, before.Identifier, after.Identifier)
	assert.Equal(t, before.Username, after.Username)
	assert.Equal(t, before.Bio, after.Bio)

	cleared, err := s.UpdateAvatar("")
	require.NoError(t, err)
	assert.Nil(t, cleared.Avatar)
}

func TestAvatarFromFile(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "avatar.png")
	require.NoError(t, os.WriteFile(png, append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...), 0600))
	uri, err := AvatarFromFile(png)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), uri)

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("hello"), 0600))
	_, err = AvatarFromFile(text)
	assert.ErrorIs(t, err, ErrAvatarNotImage)

	big := filepath.Join(dir, "big.png")
	require.NoError(t, os.WriteFile(big, make([]byte, MaxAvatarBytes+1), 0600))
	_, err = AvatarFromFile(big)
	assert.ErrorIs(t, err, ErrAvatarTooLarge)

	_, err = AvatarFromFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
