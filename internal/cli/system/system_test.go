package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/levelup/internal/cli/clitest"
	"github.com/julianstephens/levelup/internal/keyring"
	"github.com/julianstephens/levelup/internal/storage/sqlite"
)

func sqliteEnv(t *testing.T) (*clitest.Env, *sqlite.Store) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "levelup.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	env := clitest.NewWithStore(t, store)
	env.Seed(t)
	return env, store
}

func TestInitSeedsCatalog(t *testing.T) {
	store := sqlite.New(filepath.Join(t.TempDir(), "fresh", "levelup.db"))
	t.Cleanup(func() { store.Close() })
	env := clitest.NewWithStore(t, store)

	require.NoError(t, (&InitCmd{}).Run(env.Context))
	assert.Contains(t, env.Output(), "Seeded")

	templates, err := store.GetTemplates(t.Context())
	require.NoError(t, err)
	assert.Len(t, templates, env.Catalog.Len())
}

func TestInitForceRecreatesDatabase(t *testing.T) {
	env, store := sqliteEnv(t)
	env.Onboard(t, "alice", "steady", nil, nil)

	require.NoError(t, (&InitCmd{Force: true}).Run(env.Context))
	assert.Contains(t, env.Output(), "Deleted existing database")

	_, err := store.GetProfile(t.Context(), "alice")
	assert.Error(t, err)
}

func TestInitForceRequiresSQLite(t *testing.T) {
	env := clitest.New(t)
	assert.Error(t, (&InitCmd{Force: true}).Run(env.Context))
}

func TestMigrate(t *testing.T) {
	env, _ := sqliteEnv(t)
	require.NoError(t, (&MigrateCmd{}).Run(env.Context))
	assert.Contains(t, env.Output(), "up to date")

	mem := clitest.New(t)
	require.NoError(t, (&MigrateCmd{}).Run(mem.Context))
	assert.Contains(t, mem.Output(), "Nothing to migrate")
}

func TestDoctorHealthy(t *testing.T) {
	env, _ := sqliteEnv(t)
	_, err := env.Backups.Create()
	require.NoError(t, err)

	require.NoError(t, (&DoctorCmd{}).Run(env.Context))
	out := env.Output()
	assert.Contains(t, out, "✓ Schema version: OK")
	assert.Contains(t, out, "✓ Backups present: OK")
	assert.Contains(t, out, "All diagnostics passed!")
}

func TestDoctorMissingBackupsIsWarning(t *testing.T) {
	env, _ := sqliteEnv(t)
	require.NoError(t, (&DoctorCmd{}).Run(env.Context))
	assert.Contains(t, env.Output(), "⚠ Backups present: WARNING")
}

func TestDoctorOutdatedSchema(t *testing.T) {
	env, store := sqliteEnv(t)
	_, err := store.GetDB().Exec("DELETE FROM schema_version")
	require.NoError(t, err)

	err = (&DoctorCmd{}).Run(env.Context)
	assert.Error(t, err)
	assert.Contains(t, env.Output(), "❌ Schema version: FAIL")
}

func TestDoctorMissingTemplates(t *testing.T) {
	env, store := sqliteEnv(t)
	_, err := store.GetDB().Exec("DELETE FROM habit_templates")
	require.NoError(t, err)

	assert.Error(t, (&DoctorCmd{}).Run(env.Context))
	assert.Contains(t, env.Output(), "❌ Habit catalog seeded: FAIL")
}

func TestDebugSeedCrushing(t *testing.T) {
	env := clitest.New(t)
	env.Onboard(t, "sam", "hardcore", []string{"eat-healthier", "get-fit"}, []string{"habit_1", "habit_17"})

	require.NoError(t, (&DebugSeedCmd{User: "sam", Pattern: "crushing"}).Run(env.Context))
	out := env.Output()
	assert.Contains(t, out, "Seeded 10 crushing completions for sam")
	assert.Contains(t, out, "Level up")
}

func TestDebugSeedUnknownUser(t *testing.T) {
	env := clitest.New(t)
	assert.Error(t, (&DebugSeedCmd{User: "ghost", Pattern: "crushing"}).Run(env.Context))
}

func TestDebugEstimate(t *testing.T) {
	env := clitest.New(t)
	env.Crushing(t, "sam")

	require.NoError(t, (&DebugEstimateCmd{User: "sam"}).Run(env.Context))
	assert.Contains(t, env.Output(), `"willpower": 96`)
}

func TestDebugDBPath(t *testing.T) {
	env := clitest.New(t)
	require.NoError(t, (&DebugDBPathCmd{}).Run(env.Context))
	assert.Contains(t, env.Output(), `"path": "memory"`)
}

func TestConfigConnection(t *testing.T) {
	gokeyring.MockInit()
	env := clitest.New(t)

	err := (&ConfigSetConnectionCmd{ConnectionString: "/tmp/levelup.db"}).Run(env.Context)
	assert.Error(t, err)

	require.NoError(t, (&ConfigSetConnectionCmd{ConnectionString: "postgres://bob:secret@db:5432/levelup"}).Run(env.Context))
	assert.Contains(t, env.Output(), "password")

	require.NoError(t, (&ConfigShowConnectionCmd{}).Run(env.Context))
	assert.Contains(t, env.Output(), "postgres://bob:****@db:5432/levelup")

	require.NoError(t, (&ConfigClearConnectionCmd{}).Run(env.Context))
	_, err = keyring.Connection.Get()
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	assert.Error(t, (&ConfigClearConnectionCmd{}).Run(env.Context))
	assert.Error(t, (&ConfigShowConnectionCmd{}).Run(env.Context))
}

func TestClockTimezoneCheck(t *testing.T) {
	env := clitest.New(t)
	t.Setenv("TZ", "Not/AZone")
	assert.Error(t, checkClockTimezone(t.Context(), env.Context))

	require.NoError(t, os.Unsetenv("TZ"))
	assert.NoError(t, checkClockTimezone(t.Context(), env.Context))
}
