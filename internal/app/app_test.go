package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/widget"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	require.NoError(t, cfg.Finalize())
	return cfg
}

func TestOpen_WritesBothLocationsAndSchedules(t *testing.T) {
	cfg := testConfig(t)
	var logs bytes.Buffer
	a, err := Open(cfg, Options{
		LogOutput: &logs,
		Prompt:    func(context.Context) (bool, error) { return true, nil },
		Location:  time.UTC,
	})
	require.NoError(t, err)
	defer a.Close()

	require.True(t, a.Scheduler.RequestAuthorization(context.Background()))

	due := time.Now().Add(time.Hour).UTC()
	it, err := a.Store.Add("Pay rent", model.WithDueDate(due))
	require.NoError(t, err)

	pending, err := a.Center.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, it.ID.String(), pending[0].ID)
	assert.Equal(t, "Pay rent", pending[0].Body)

	src := widget.OpenShared(cfg.SharedPath)
	defer src.Close()
	shown := widget.Load(src)
	require.Len(t, shown, 1)
	assert.Equal(t, it.ID, shown[0].ID)

	a.Store.Toggle(it.ID)
	pending, err = a.Center.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Empty(t, widget.Load(src))
}

func TestOpen_ReopenKeepsItemsAndColours(t *testing.T) {
	cfg := testConfig(t)
	a, err := Open(cfg, Options{LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	_, err = a.Store.Add("Buy milk")
	require.NoError(t, err)
	require.NoError(t, a.Store.SetCardColor("rose"))
	require.NoError(t, a.Close())

	b, err := Open(cfg, Options{LogOutput: &bytes.Buffer{}})
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, 1, b.Store.Len())
	assert.Equal(t, "rose", b.Store.CardColor().Name)
	assert.Equal(t, "Buy milk", b.Store.FilteredAndSorted(todo.DefaultQuery())[0].Title)
}

func TestOpen_BadLocale(t *testing.T) {
	cfg := testConfig(t)
	cfg.Locale = "not a locale!"
	_, err := Open(cfg, Options{LogOutput: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestOpen_UnauthorizedSkipsReminder(t *testing.T) {
	cfg := testConfig(t)
	var logs bytes.Buffer
	a, err := Open(cfg, Options{LogOutput: &logs})
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Store.Add("Call mom", model.WithDueDate(time.Now().Add(time.Hour)))
	require.NoError(t, err)

	pending, err := a.Center.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Contains(t, logs.String(), "not authorized")
	assert.FileExists(t, filepath.Join(cfg.DataDir, config.DefaultSharedFile))
}

func TestOpen_FreshDataDir(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "fresh", ".tada")
	require.NoError(t, cfg.Finalize())

	a, err := Open(cfg, Options{LogOutput: &bytes.Buffer{}, Location: time.UTC})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 0, a.Store.Len())
	_, err = a.Store.Add("Buy milk")
	require.NoError(t, err)
	assert.FileExists(t, cfg.SharedPath)
	assert.FileExists(t, cfg.LocalPath)
}

func TestOpen_CorruptLocalFileStartsEmpty(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.LocalPath), 0o755))
	require.NoError(t, os.WriteFile(cfg.LocalPath, []byte("{not json"), 0o644))

	var logs bytes.Buffer
	a, err := Open(cfg, Options{LogOutput: &logs, Location: time.UTC})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 0, a.Store.Len())
	assert.Contains(t, logs.String(), "undecodable")

	_, err = a.Store.Add("Buy milk")
	require.NoError(t, err)
	assert.Equal(t, 1, a.Store.Len())
}
