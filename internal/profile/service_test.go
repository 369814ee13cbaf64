package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdash/internal/problemgen"
	"github.com/abhisek/mathdash/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// flakyKV wraps a Memory store. broken fails every call; failSave and
// failDelete fail only that operation.
type flakyKV struct {
	*store.Memory
	broken     bool
	failSave   bool
	failDelete bool
}

var errDiskGone = errors.New("disk gone")

func (f *flakyKV) Load(ctx context.Context, key string) ([]byte, error) {
	if f.broken {
		return nil, errDiskGone
	}
	return f.Memory.Load(ctx, key)
}

func (f *flakyKV) Save(ctx context.Context, key string, value []byte) error {
	if f.broken || f.failSave {
		return errDiskGone
	}
	return f.Memory.Save(ctx, key, value)
}

func (f *flakyKV) Delete(ctx context.Context, key string) error {
	if f.broken || f.failDelete {
		return errDiskGone
	}
	return f.Memory.Delete(ctx, key)
}

func newTestService(t *testing.T) (*Service, *fakeClock, *flakyKV) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	kv := &flakyKV{Memory: store.NewMemory()}
	return NewService(kv, WithClock(clock.Now)), clock, kv
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		message string
	}{
		{"too short", "ab", true, "Username must be between 3 and 15 characters."},
		{"minimum", "abc", false, ""},
		{"maximum", "abcdefghij12345", false, ""},
		{"too long", "abcdefghij123456", true, "Username must be between 3 and 15 characters."},
		{"symbols", "ann!", true, "Username can only contain letters and numbers."},
		{"inner space", "an n", true, "Username can only contain letters and numbers."},
		{"non ascii", "zoë", true, "Username can only contain letters and numbers."},
		{"blank", "   ", true, "Please enter a username."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			err := svc.CreateUser(context.Background(), tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidUsername)
			assert.Equal(t, tt.message, Message(err))
		})
	}
}

func TestCreateUser_TrimsAndPersists(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "  Ann  "))

	rec, err := svc.Record(ctx)
	require.NoError(t, err)
	require.Contains(t, rec.Users, "Ann")
	assert.Equal(t, 0, rec.Users["Ann"].HighScore)
	assert.Equal(t, clock.t.UnixMilli(), rec.Users["Ann"].LastPlayed)
	assert.Nil(t, rec.CurrentUser)
}

func TestCreateUser_Duplicate(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	assert.ErrorIs(t, svc.CreateUser(ctx, "Ann"), ErrDuplicateUser)

	// Usernames are case sensitive.
	assert.NoError(t, svc.CreateUser(ctx, "ann"))

	// Archived names stay taken.
	require.NoError(t, svc.CreateUser(ctx, "Bob"))
	clock.Advance(8 * 24 * time.Hour)
	require.ErrorIs(t, svc.Login(ctx, "Bob"), ErrArchivedDueToInactivity)
	assert.ErrorIs(t, svc.CreateUser(ctx, "Bob"), ErrDuplicateUser)
}

func TestLogin(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	clock.Advance(time.Hour)
	require.NoError(t, svc.Login(ctx, "Ann"))

	name, p, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)
	assert.Equal(t, clock.t.UnixMilli(), p.LastPlayed)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.Login(context.Background(), "Ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, "Username not found. Please create a new user.", Message(err))
}

func TestLogin_InactivityBoundary(t *testing.T) {
	tests := []struct {
		name        string
		idle        time.Duration
		wantArchive bool
	}{
		{"exactly seven days", 7 * 24 * time.Hour, false},
		{"one millisecond over", 7*24*time.Hour + time.Millisecond, true},
		{"a month", 30 * 24 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clock, _ := newTestService(t)
			ctx := context.Background()
			require.NoError(t, svc.CreateUser(ctx, "Ann"))

			clock.Advance(tt.idle)
			err := svc.Login(ctx, "Ann")

			rec, rerr := svc.Record(ctx)
			require.NoError(t, rerr)

			if !tt.wantArchive {
				require.NoError(t, err)
				assert.Contains(t, rec.Users, "Ann")
				return
			}

			require.ErrorIs(t, err, ErrArchivedDueToInactivity)
			assert.NotContains(t, rec.Users, "Ann")
			require.Contains(t, rec.ArchivedUsers, "Ann")
			archived := rec.ArchivedUsers["Ann"]
			require.NotNil(t, archived.ArchiveDate)
			assert.Equal(t, clock.t.UnixMilli(), *archived.ArchiveDate)
			assert.Nil(t, rec.CurrentUser)

			// Subsequent attempts report the archived state.
			assert.ErrorIs(t, svc.Login(ctx, "Ann"), ErrUserArchived)
		})
	}
}

func TestLogin_ArchivedCheckedFirst(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	// A hand-edited blob with the name in both maps still reports archived.
	blob := `{"users":{"Ann":{"highScore":3,"lastPlayed":0}},"archivedUsers":{"Ann":{"highScore":3,"lastPlayed":0,"archiveDate":1}},"currentUser":null}`
	require.NoError(t, kv.Save(ctx, DefaultKey, []byte(blob)))

	assert.ErrorIs(t, svc.Login(ctx, "Ann"), ErrUserArchived)
}

func TestLogout(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	require.NoError(t, svc.Login(ctx, "Ann"))
	require.NoError(t, svc.SelectMode(ctx, problemgen.CategoryFraction))

	require.NoError(t, svc.Logout(ctx))

	_, _, err := svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = svc.Mode(ctx)
	assert.ErrorIs(t, err, ErrNoModeSelected)

	rec, err := svc.Record(ctx)
	require.NoError(t, err)
	assert.Contains(t, rec.Users, "Ann")
}

func TestCurrentUser_Dangling(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	require.NoError(t, kv.Save(ctx, DefaultKey, []byte(`{"users":{},"archivedUsers":{},"currentUser":"Ann"}`)))
	_, _, err := svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestCommitScore(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.CreateUser(ctx, "Ann"))

	raised, err := svc.CommitScore(ctx, "Ann", 10)
	require.NoError(t, err)
	assert.True(t, raised)

	raised, err = svc.CommitScore(ctx, "Ann", 10)
	require.NoError(t, err)
	assert.False(t, raised, "equal score is not a new high score")

	raised, err = svc.CommitScore(ctx, "Ann", 4)
	require.NoError(t, err)
	assert.False(t, raised)

	rec, err := svc.Record(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Users["Ann"].HighScore)

	_, err = svc.CommitScore(ctx, "Ghost", 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMode(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	_, err := svc.Mode(ctx)
	require.ErrorIs(t, err, ErrNoModeSelected)

	require.NoError(t, svc.SelectMode(ctx, problemgen.CategoryMix))
	cat, err := svc.Mode(ctx)
	require.NoError(t, err)
	assert.Equal(t, problemgen.CategoryMix, cat)

	// The mode is stored as the bare identifier.
	raw, err := kv.Load(ctx, ModeKey)
	require.NoError(t, err)
	assert.Equal(t, "mix", string(raw))

	assert.Error(t, svc.SelectMode(ctx, problemgen.Category("chess")))

	require.NoError(t, kv.Save(ctx, ModeKey, []byte("chess")))
	_, err = svc.Mode(ctx)
	assert.ErrorIs(t, err, ErrNoModeSelected)
}

func TestStorageUnavailable_LeavesStateUntouched(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	before, err := kv.Memory.Load(ctx, DefaultKey)
	require.NoError(t, err)

	kv.broken = true
	err = svc.CreateUser(ctx, "Bob")
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, errDiskGone)

	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "load", serr.Op)

	_, err = svc.CommitScore(ctx, "Ann", 5)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, svc.Login(ctx, "Ann"), ErrStorageUnavailable)
	assert.ErrorIs(t, svc.Logout(ctx), ErrStorageUnavailable)

	kv.broken = false
	after, err := kv.Memory.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestStorageRejectsWrites_LeavesStateUntouched(t *testing.T) {
	svc, clock, kv := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	before, err := kv.Memory.Load(ctx, DefaultKey)
	require.NoError(t, err)

	assertUnchanged := func(t *testing.T) {
		t.Helper()
		after, err := kv.Memory.Load(ctx, DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	}

	kv.failSave = true

	t.Run("create user", func(t *testing.T) {
		err := svc.CreateUser(ctx, "Bob")
		require.ErrorIs(t, err, ErrStorageUnavailable)
		var serr *StorageError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "save", serr.Op)
		assertUnchanged(t)
	})

	t.Run("login", func(t *testing.T) {
		assert.ErrorIs(t, svc.Login(ctx, "Ann"), ErrStorageUnavailable)
		assertUnchanged(t)
	})

	t.Run("commit score", func(t *testing.T) {
		improved, err := svc.CommitScore(ctx, "Ann", 5)
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.False(t, improved)
		assertUnchanged(t)
	})

	t.Run("login after inactivity", func(t *testing.T) {
		clock.Advance(8 * 24 * time.Hour)
		err := svc.Login(ctx, "Ann")
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.NotErrorIs(t, err, ErrArchivedDueToInactivity)
		assertUnchanged(t)
	})
}

func TestLogout_ClearModeFails(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	require.NoError(t, svc.Login(ctx, "Ann"))
	require.NoError(t, svc.SelectMode(ctx, problemgen.CategoryMix))

	kv.failDelete = true
	assert.ErrorIs(t, svc.Logout(ctx), ErrStorageUnavailable)

	name, _, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)
	mode, err := svc.Mode(ctx)
	require.NoError(t, err)
	assert.Equal(t, problemgen.CategoryMix, mode)

	kv.failDelete = false
	require.NoError(t, svc.Logout(ctx))
	_, _, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNoActiveSession)
	_, err = svc.Mode(ctx)
	assert.ErrorIs(t, err, ErrNoModeSelected)
}

func TestLogout_SaveFailsKeepsUser(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	require.NoError(t, svc.Login(ctx, "Ann"))

	kv.failSave = true
	assert.ErrorIs(t, svc.Logout(ctx), ErrStorageUnavailable)

	name, _, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)
}

func TestReset_DeleteFailsKeepsRecord(t *testing.T) {
	svc, _, kv := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	require.NoError(t, svc.SelectMode(ctx, problemgen.CategoryAngle))

	kv.failDelete = true
	assert.ErrorIs(t, svc.Reset(ctx), ErrStorageUnavailable)

	entries, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ann", entries[0].Name)
}

func TestCorruptRecord(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", `{"users":`},
		{"users missing", `{"currentUser":null}`},
		{"negative score", `{"users":{"Ann":{"highScore":-1,"lastPlayed":0}}}`},
		{"string score", `{"users":{"Ann":{"highScore":"7","lastPlayed":0}}}`},
		{"current user number", `{"users":{},"currentUser":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, kv := newTestService(t)
			ctx := context.Background()
			require.NoError(t, kv.Save(ctx, DefaultKey, []byte(tt.blob)))

			_, err := svc.Record(ctx)
			require.ErrorIs(t, err, ErrCorruptRecord)
			assert.ErrorIs(t, err, ErrStorageUnavailable)

			// Nothing is written over a corrupt blob.
			assert.Error(t, svc.CreateUser(ctx, "Ann"))
			raw, err := kv.Load(ctx, DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, tt.blob, string(raw))
		})
	}
}

func TestRecordBlobShape(t *testing.T) {
	svc, clock, kv := newTestService(t)
	ctx := context.Background()
	clock.t = time.UnixMilli(1700000000000)

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	require.NoError(t, svc.Login(ctx, "Ann"))

	raw, err := kv.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"users":{"Ann":{"highScore":0,"lastPlayed":1700000000000}},"archivedUsers":{},"currentUser":"Ann"}`,
		string(raw))
}

func TestUsers(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Zed", "Ann", "Old"} {
		require.NoError(t, svc.CreateUser(ctx, name))
	}
	clock.Advance(8 * 24 * time.Hour)
	require.ErrorIs(t, svc.Login(ctx, "Old"), ErrArchivedDueToInactivity)

	entries, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Ann", entries[0].Name)
	assert.Equal(t, "Zed", entries[1].Name)
	assert.Equal(t, "Old", entries[2].Name)
	assert.True(t, entries[2].Archived)
	assert.False(t, entries[2].Profile.ArchivedAt().IsZero())
}

func TestReset(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	require.NoError(t, svc.SelectMode(ctx, problemgen.CategoryAngle))
	require.NoError(t, svc.Reset(ctx))

	rec, err := svc.Record(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.Users)
	_, err = svc.Mode(ctx)
	assert.ErrorIs(t, err, ErrNoModeSelected)
}

func TestWithKey(t *testing.T) {
	kv := store.NewMemory()
	svc := NewService(kv, WithKey("alt_key"))
	ctx := context.Background()

	require.NoError(t, svc.CreateUser(ctx, "Ann"))
	_, err := kv.Load(ctx, "alt_key")
	assert.NoError(t, err)
	_, err = kv.Load(ctx, DefaultKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
