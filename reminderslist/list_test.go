package reminderslist

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/repository"
	"github.com/poiesic/georemind/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMonitor struct {
	loading   []bool
	snackBars []string
}

func (m *recordingMonitor) LoadingChanged(loading bool) { m.loading = append(m.loading, loading) }
func (m *recordingMonitor) SnackBar(message string)     { m.snackBars = append(m.snackBars, message) }

type failingSource struct {
	err error
}

func (f *failingSource) GetReminders(ctx context.Context) core.Result[[]*core.Reminder] {
	return core.FailureFrom[[]*core.Reminder](f.err)
}

func newTestRepository(t *testing.T) *repository.Repository {
	t.Helper()
	store, backend, err := badger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
		backend.Close()
	})
	repo, err := repository.New(store)
	require.NoError(t, err)
	return repo
}

func TestNew_RequiresRepository(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestLoadReminders_EmptyShowsNoData(t *testing.T) {
	list, err := New(newTestRepository(t))
	require.NoError(t, err)

	list.LoadReminders(context.Background())
	assert.Empty(t, list.Items())
	assert.True(t, list.ShowNoData())
}

func TestLoadReminders_LoadingIndicators(t *testing.T) {
	monitor := &recordingMonitor{}
	list, err := New(newTestRepository(t), WithMonitor(monitor))
	require.NoError(t, err)

	list.LoadReminders(context.Background())
	assert.Equal(t, []bool{true, false}, monitor.loading)
	assert.False(t, list.Loading())
}

func TestLoadReminders_ErrorShowsSnackBar(t *testing.T) {
	monitor := &recordingMonitor{}
	list, err := New(&failingSource{err: errors.New("Error loading data")}, WithMonitor(monitor))
	require.NoError(t, err)

	list.LoadReminders(context.Background())
	assert.Equal(t, []string{"Error loading data"}, monitor.snackBars)
	assert.True(t, list.ShowNoData())
}

func TestLoadReminders_UpdatesList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, repo.SaveReminder(ctx, &core.Reminder{
			ID:          id,
			Title:       "Reminder " + id,
			Description: "Description " + id,
			Location:    "Location " + id,
			Latitude:    core.Float(1),
			Longitude:   core.Float(1),
		}))
	}

	list, err := New(repo)
	require.NoError(t, err)
	list.LoadReminders(ctx)

	items := list.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "Reminder 3", items[2].Title)
	assert.False(t, list.ShowNoData())
}
