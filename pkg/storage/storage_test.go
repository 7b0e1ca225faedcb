package storage_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hbnb/pkg/core"
	"github.com/aretw0/hbnb/pkg/models"
	"github.com/aretw0/hbnb/pkg/storage"
)

func newStorage(t *testing.T, name string, mutate ...func(*storage.Config)) *storage.FileStorage {
	t.Helper()
	cfg := storage.Config{Path: filepath.Join(t.TempDir(), name), Atomic: true}
	for _, m := range mutate {
		m(&cfg)
	}
	return storage.NewFileStorage(cfg)
}

func readFile(t *testing.T, path string) map[string]map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestNewAndAll(t *testing.T) {
	s := newStorage(t, "file.json")

	u := models.NewUser(s)
	c := models.NewCity(s)

	all := s.All()
	require.Len(t, all, 2)
	assert.Same(t, u, all["User."+u.ID])
	assert.Same(t, c, all["City."+c.ID])

	for key, r := range all {
		assert.Equal(t, storage.KeyOf(r), key)
	}

	t.Run("All Is Live", func(t *testing.T) {
		delete(s.All(), "City."+c.ID)
		assert.Equal(t, 0, s.Count("City"))
	})

	t.Run("Duplicate Key Is Last Write Wins", func(t *testing.T) {
		other := &models.User{}
		other.ID = u.ID
		other.Email = "second@example.com"
		s.New(other)

		require.Equal(t, 1, s.Count("User"))
		assert.Same(t, other, s.All()["User."+u.ID])
	})
}

func TestGet(t *testing.T) {
	s := newStorage(t, "file.json")
	st := models.NewState(s)

	got, err := s.Get("State", st.ID)
	require.NoError(t, err)
	assert.Same(t, st, got)

	_, err = s.Get("State", "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = s.Get("Country", st.ID)
	assert.ErrorIs(t, err, core.ErrUnknownRecordType)
}

func TestFilterAndCount(t *testing.T) {
	s := newStorage(t, "file.json")
	for i := 0; i < 3; i++ {
		models.NewUser(s)
	}
	models.NewCity(s)

	users := s.Filter("User")
	require.Len(t, users, 3)
	for i := 1; i < len(users); i++ {
		assert.Less(t, storage.KeyOf(users[i-1]), storage.KeyOf(users[i]), "filter must be sorted by key")
	}

	assert.Equal(t, 3, s.Count("User"))
	assert.Equal(t, 1, s.Count("City"))
	assert.Equal(t, 0, s.Count("Review"))
	assert.Equal(t, 4, s.Count(""))
	assert.Empty(t, s.Filter("Use"), "prefix must match whole type names")
}

func TestSave(t *testing.T) {
	t.Run("Writes One Entry Per Record", func(t *testing.T) {
		s := newStorage(t, "file.json")
		u := models.NewUser(s)
		require.NoError(t, u.Save(s))

		file := readFile(t, s.Path())
		require.Len(t, file, 1)
		entry, ok := file["User."+u.ID]
		require.True(t, ok, "missing User.%s in %v", u.ID, file)

		for _, f := range []string{"email", "password", "first_name", "last_name"} {
			assert.Equal(t, "", entry[f], f)
		}
		assert.Equal(t, u.ID, entry["id"])
		assert.Equal(t, "User", entry["__class__"])
		assert.Equal(t, models.FormatTime(u.CreatedAt), entry["created_at"])
		assert.Equal(t, models.FormatTime(u.UpdatedAt), entry["updated_at"])
	})

	t.Run("Flushes Every Record", func(t *testing.T) {
		s := newStorage(t, "file.json")
		a := models.NewAmenity(s)
		models.NewAmenity(s)
		require.NoError(t, a.Save(s))

		assert.Len(t, readFile(t, s.Path()), 2)
	})

	t.Run("Direct Write", func(t *testing.T) {
		s := newStorage(t, "file.json", func(c *storage.Config) { c.Atomic = false })
		models.NewReview(s)
		require.NoError(t, s.Save())
		assert.Len(t, readFile(t, s.Path()), 1)
	})

	t.Run("Write Failure Is Returned", func(t *testing.T) {
		s := storage.NewFileStorage(storage.Config{Path: filepath.Join(t.TempDir(), "missing", "file.json")})
		models.NewUser(s)
		assert.Error(t, s.Save())
	})

	t.Run("Read Only", func(t *testing.T) {
		s := newStorage(t, "file.json", func(c *storage.Config) { c.ReadOnly = true })
		models.NewUser(s)
		assert.ErrorIs(t, s.Save(), core.ErrReadOnly)
		_, err := os.Stat(s.Path())
		assert.True(t, os.IsNotExist(err), "read-only save must not create the file")
	})
}

func TestReload(t *testing.T) {
	t.Run("Missing File Is Empty", func(t *testing.T) {
		s := newStorage(t, "file.json")
		require.NoError(t, s.Reload())
		assert.Empty(t, s.All())
	})

	t.Run("Save Then Reload In A Fresh Storage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.json")
		first := storage.NewFileStorage(storage.Config{Path: path})

		u := models.NewUser(first)
		u.Email = "a@b.com"
		p := models.NewPlace(first)
		p.MaxGuest = 5
		p.Longitude = -0.5
		p.Extra = map[string]any{"color": "blue"}
		models.NewBaseModel(first)
		require.NoError(t, first.Save())

		second := storage.NewFileStorage(storage.Config{Path: path})
		require.NoError(t, second.Reload())

		require.Len(t, second.All(), 3)
		for key, r := range first.All() {
			got, ok := second.All()[key]
			require.True(t, ok, "missing %s", key)
			assert.Equal(t, models.ToDict(r), models.ToDict(got))
		}

		gotPlace := second.All()["Place."+p.ID].(*models.Place)
		assert.Equal(t, 5, gotPlace.MaxGuest)
		assert.Equal(t, "blue", gotPlace.Extra["color"])
		assert.True(t, gotPlace.CreatedAt.Equal(p.CreatedAt))
	})

	t.Run("Type From Key Prefix", func(t *testing.T) {
		s := newStorage(t, "file.json")
		writeRaw(t, s.Path(), `{"City.c1": {"id": "c1", "name": "Lyon",
			"created_at": "2017-09-28T21:05:54.119427", "updated_at": "2017-09-28T21:05:54.119427"}}`)

		require.NoError(t, s.Reload())
		c, ok := s.All()["City.c1"].(*models.City)
		require.True(t, ok)
		assert.Equal(t, "Lyon", c.Name)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		s := newStorage(t, "file.json")
		writeRaw(t, s.Path(), `{"Castle.k1": {"id": "k1", "__class__": "Castle",
			"created_at": "2017-09-28T21:05:54.119427", "updated_at": "2017-09-28T21:05:54.119427"}}`)

		assert.ErrorIs(t, s.Reload(), core.ErrUnknownRecordType)
	})

	t.Run("Key Mismatch", func(t *testing.T) {
		s := newStorage(t, "file.json")
		writeRaw(t, s.Path(), `{"User.u1": {"id": "u2", "__class__": "User",
			"created_at": "2017-09-28T21:05:54.119427", "updated_at": "2017-09-28T21:05:54.119427"}}`)

		assert.ErrorIs(t, s.Reload(), core.ErrKeyMismatch)
	})

	t.Run("Tag Disagrees With Key", func(t *testing.T) {
		s := newStorage(t, "file.json")
		writeRaw(t, s.Path(), `{"User.u1": {"id": "u1", "__class__": "City",
			"created_at": "2017-09-28T21:05:54.119427", "updated_at": "2017-09-28T21:05:54.119427"}}`)

		assert.ErrorIs(t, s.Reload(), core.ErrKeyMismatch)
	})

	t.Run("Missing Id", func(t *testing.T) {
		s := newStorage(t, "file.json")
		writeRaw(t, s.Path(), `{"User.": {"__class__": "User",
			"created_at": "2017-09-28T21:05:54.119427", "updated_at": "2017-09-28T21:05:54.119427"}}`)

		assert.ErrorIs(t, s.Reload(), core.ErrKeyMismatch)
	})

	t.Run("Malformed Timestamp Aborts Whole Reload", func(t *testing.T) {
		s := newStorage(t, "file.json")
		kept := models.NewState(s)

		writeRaw(t, s.Path(), `{
			"User.u1": {"id": "u1", "created_at": "2017-09-28T21:05:54.119427", "updated_at": "2017-09-28T21:05:54.119427"},
			"User.u2": {"id": "u2", "created_at": "2017-09-28", "updated_at": "2017-09-28T21:05:54.119427"}}`)

		assert.ErrorIs(t, s.Reload(), core.ErrMalformedTimestamp)
		require.Len(t, s.All(), 1, "failed reload must keep current contents")
		assert.Same(t, kept, s.All()["State."+kept.ID])
	})

	t.Run("Invalid Document", func(t *testing.T) {
		s := newStorage(t, "file.json")
		writeRaw(t, s.Path(), `{"User.u1": "not an object"}`)
		assert.Error(t, s.Reload())

		writeRaw(t, s.Path(), `{ invalid json`)
		assert.Error(t, s.Reload())
	})

	t.Run("Replaces Previous Contents", func(t *testing.T) {
		s := newStorage(t, "file.json")
		writeRaw(t, s.Path(), `{}`)
		models.NewUser(s)
		live := s.All()

		require.NoError(t, s.Reload())
		assert.Empty(t, live, "reload refills the same live map")
	})
}

func TestStrictNumbers(t *testing.T) {
	s := newStorage(t, "file.json", func(c *storage.Config) { c.Strict = true })
	writeRaw(t, s.Path(), `{"Place.p1": {"id": "p1", "__class__": "Place",
		"number_rooms": 3, "latitude": 45.5, "views": 12345678901234567890,
		"created_at": "2017-09-28T21:05:54.119427", "updated_at": "2017-09-28T21:05:54.119427"}}`)

	require.NoError(t, s.Reload())
	p := s.All()["Place.p1"].(*models.Place)
	assert.Equal(t, 3, p.NumberRooms)
	assert.Equal(t, 45.5, p.Latitude)
	assert.Equal(t, json.Number("12345678901234567890"), p.Extra["views"])

	require.NoError(t, s.Save())
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"views":12345678901234567890`)
}

func TestYAMLBackingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.yaml")
	first := storage.NewFileStorage(storage.Config{Path: path})
	require.Equal(t, "yaml", first.Codec().Name())

	r := models.NewReview(first)
	r.Text = "great stay"
	require.NoError(t, first.Save())

	second := storage.NewFileStorage(storage.Config{Path: path})
	require.NoError(t, second.Reload())

	got, err := second.Get("Review", r.ID)
	require.NoError(t, err)
	assert.Equal(t, "great stay", got.(*models.Review).Text)
	assert.True(t, got.Base().UpdatedAt.Equal(r.UpdatedAt))
}

func TestState(t *testing.T) {
	s := newStorage(t, "file.json")
	models.NewUser(s)
	models.NewUser(s)
	models.NewCity(s)
	require.NoError(t, s.Save())

	state, ok := s.State().(storage.StorageState)
	require.True(t, ok)
	assert.Equal(t, 3, state.Records)
	assert.Equal(t, map[string]int{"User": 2, "City": 1}, state.Types)
	assert.Equal(t, "json", state.Codec)
	assert.NotNil(t, state.LastSave)
	assert.Nil(t, state.LastReload)
	assert.Equal(t, "storage", s.ComponentType())
}

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
