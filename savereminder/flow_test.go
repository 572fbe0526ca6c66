package savereminder

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/georemind/core"
	"github.com/poiesic/georemind/geofence"
	"github.com/poiesic/georemind/repository"
	"github.com/poiesic/georemind/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	registered []*core.Reminder
	err        error
}

func (f *fakeRegistrar) Register(ctx context.Context, reminder *core.Reminder) error {
	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, reminder)
	return nil
}

type activatingRegistrar struct {
	fakeRegistrar
	repo      *repository.Repository
	activated []string
	stored    []bool
}

func (a *activatingRegistrar) Activate(ctx context.Context, requestIDs ...string) error {
	for _, id := range requestIDs {
		a.activated = append(a.activated, id)
		a.stored = append(a.stored, a.repo.GetReminder(ctx, id).IsSuccess())
	}
	return nil
}

type failingSaver struct {
	err error
}

func (f *failingSaver) SaveReminder(ctx context.Context, reminder *core.Reminder) error {
	return f.err
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

func validItem() *core.ReminderDataItem {
	return core.NewReminderDataItem("title", "description", "location", core.Float(0), core.Float(0))
}

func newTestFlow(t *testing.T, registrar Registrar) (*Flow, *repository.Repository, *Recorder) {
	t.Helper()
	repo := newTestRepository(t)
	recorder := &Recorder{}
	flow, err := NewFlow(repo, registrar, WithMonitor(recorder))
	require.NoError(t, err)
	return flow, repo, recorder
}

func TestNewFlow_Validation(t *testing.T) {
	_, err := NewFlow(nil, &fakeRegistrar{})
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewFlow(&failingSaver{}, nil)
	assert.ErrorIs(t, err, ErrRegistrarRequired)

	flow, err := NewFlow(&failingSaver{}, &fakeRegistrar{})
	require.NoError(t, err)
	assert.Equal(t, StateEditing, flow.State())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		location string
		valid    bool
		key      string
	}{
		{"no title", "", "location", false, core.MsgEnterTitle},
		{"no location", "title", "", false, core.MsgSelectLocation},
		{"neither uses title first", "", "", false, core.MsgEnterTitle},
		{"all required data", "title", "location", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, _, recorder := newTestFlow(t, &fakeRegistrar{})
			item := core.NewReminderDataItem(tt.title, "description", tt.location, core.Float(0), core.Float(0))

			assert.Equal(t, tt.valid, flow.Validate(item))
			if tt.valid {
				assert.Empty(t, recorder.SnackBars())
				assert.Equal(t, StateValid, flow.State())
			} else {
				assert.Equal(t, []string{tt.key}, recorder.SnackBars())
				assert.Equal(t, StateInvalid, flow.State())
			}
		})
	}
}

func TestValidate_NilItem(t *testing.T) {
	flow, _, recorder := newTestFlow(t, &fakeRegistrar{})
	assert.False(t, flow.Validate(nil))
	assert.Equal(t, []string{core.MsgEnterTitle}, recorder.SnackBars())
}

func TestSave_RegistersThenPersists(t *testing.T) {
	registrar := &fakeRegistrar{}
	flow, repo, recorder := newTestFlow(t, registrar)
	item := validItem()

	require.NoError(t, flow.Save(context.Background(), item))

	require.Len(t, registrar.registered, 1)
	assert.Equal(t, item.ID, registrar.registered[0].ID)

	saved, ok := repo.GetReminder(context.Background(), item.ID).Data()
	require.True(t, ok)
	assert.Equal(t, item.ID, saved.ID)
	assert.Equal(t, item.Title, saved.Title)
	assert.Equal(t, item.Description, saved.Description)
	assert.Equal(t, item.Location, saved.Location)
	assert.Equal(t, *item.Latitude, *saved.Latitude)
	assert.Equal(t, *item.Longitude, *saved.Longitude)

	assert.Equal(t, []bool{true, false}, recorder.Loading())
	assert.Equal(t, []string{core.MsgReminderSaved}, recorder.Toasts())
	assert.Equal(t, StateDone, flow.State())

	var states []State
	for _, tr := range recorder.Transitions() {
		states = append(states, tr.To)
	}
	assert.Equal(t, []State{StateValidating, StateValid, StateRegisteringGeofence, StatePersisting, StateDone}, states)
}

func TestSave_RegistrationFailureLeavesStoreUntouched(t *testing.T) {
	registrar := &fakeRegistrar{err: &geofence.StatusError{Code: geofence.TooManyGeofences}}
	flow, repo, recorder := newTestFlow(t, registrar)
	item := validItem()

	err := flow.Save(context.Background(), item)
	assert.ErrorIs(t, err, geofence.ErrRegistration)
	var statusErr *geofence.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, geofence.TooManyGeofences, statusErr.Code)

	assert.False(t, repo.GetReminder(context.Background(), item.ID).IsSuccess())
	all, ok := repo.GetReminders(context.Background()).Data()
	require.True(t, ok)
	assert.Empty(t, all)

	assert.Equal(t, StateRegistrationFailed, flow.State())
	assert.Equal(t, []string{core.MsgErrorAddingGeofence}, recorder.Toasts())
	assert.Equal(t, []bool{true, false}, recorder.Loading())
}

func TestSave_WithRegistrarAndLocalService(t *testing.T) {
	svc := geofence.NewLocalService(geofence.WithMaxGeofences(1))
	target := geofenceTarget{}
	registrar, err := geofence.NewRegistrar(svc, target)
	require.NoError(t, err)
	flow, repo, _ := newTestFlow(t, registrar)
	ctx := context.Background()

	first := validItem()
	require.NoError(t, flow.Save(ctx, first))

	second := validItem()
	err = flow.Save(ctx, second)
	assert.ErrorIs(t, err, geofence.ErrRegistration)

	all, ok := repo.GetReminders(ctx).Data()
	require.True(t, ok)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
}

func TestSave_MissingCoordinatesFailsRegistration(t *testing.T) {
	registrar, err := geofence.NewRegistrar(geofence.NewLocalService(), geofenceTarget{})
	require.NoError(t, err)
	flow, repo, _ := newTestFlow(t, registrar)

	item := core.NewReminderDataItem("title", "", "somewhere", nil, nil)
	err = flow.Save(context.Background(), item)
	assert.ErrorIs(t, err, geofence.ErrMissingCoordinates)
	assert.False(t, repo.GetReminder(context.Background(), item.ID).IsSuccess())
}

func TestSave_InvalidItemSkipsRegistration(t *testing.T) {
	registrar := &fakeRegistrar{}
	flow, _, recorder := newTestFlow(t, registrar)

	item := core.NewReminderDataItem("", "d", "l", core.Float(1), core.Float(1))
	err := flow.Save(context.Background(), item)
	assert.ErrorIs(t, err, core.ErrMissingTitle)
	assert.Empty(t, registrar.registered)
	assert.Empty(t, recorder.Loading())
	assert.Equal(t, StateInvalid, flow.State())
}

func TestSave_PersistFailure(t *testing.T) {
	boom := errors.New("storage closed")
	recorder := &Recorder{}
	flow, err := NewFlow(&failingSaver{err: boom}, &fakeRegistrar{}, WithMonitor(recorder))
	require.NoError(t, err)

	assert.ErrorIs(t, flow.Save(context.Background(), validItem()), boom)
	assert.Equal(t, StatePersistFailed, flow.State())
	assert.Equal(t, []string{"storage closed"}, recorder.Errors())
	assert.Empty(t, recorder.Toasts())
	assert.Equal(t, []bool{true, false}, recorder.Loading())
}

func TestValidateAndSaveReminder(t *testing.T) {
	registrar := &fakeRegistrar{}
	flow, repo, recorder := newTestFlow(t, registrar)
	item := validItem()

	assert.True(t, flow.ValidateAndSaveReminder(context.Background(), item))
	assert.Empty(t, registrar.registered)

	result := repo.GetReminder(context.Background(), item.ID)
	require.True(t, result.IsSuccess())
	assert.Equal(t, []bool{true, false}, recorder.Loading())
	assert.Equal(t, []string{core.MsgReminderSaved}, recorder.Toasts())
}

func TestValidateAndSaveReminder_Invalid(t *testing.T) {
	flow, repo, recorder := newTestFlow(t, &fakeRegistrar{})
	item := core.NewReminderDataItem("title", "", "", nil, nil)

	assert.False(t, flow.ValidateAndSaveReminder(context.Background(), item))
	assert.Equal(t, []string{core.MsgSelectLocation}, recorder.SnackBars())
	assert.False(t, repo.GetReminder(context.Background(), item.ID).IsSuccess())
}

func TestValidateAndSaveReminder_Upsert(t *testing.T) {
	flow, repo, _ := newTestFlow(t, &fakeRegistrar{})
	ctx := context.Background()
	item := validItem()

	require.True(t, flow.ValidateAndSaveReminder(ctx, item))
	item.Title = "changed"
	require.True(t, flow.ValidateAndSaveReminder(ctx, item))

	all, ok := repo.GetReminders(ctx).Data()
	require.True(t, ok)
	require.Len(t, all, 1)
	assert.Equal(t, "changed", all[0].Title)
}

func TestSelectLocation(t *testing.T) {
	flow, _, recorder := newTestFlow(t, &fakeRegistrar{})

	assert.ErrorIs(t, flow.SelectLocation(nil), core.ErrNoPointSelected)
	assert.Equal(t, []string{core.MsgSelectPOI}, recorder.SnackBars())
	assert.Empty(t, flow.NewItem("x", "y").Location)

	poi := &core.PointOfInterest{Name: "Golden Gate Park", Latitude: 37.7694, Longitude: -122.4862}
	require.NoError(t, flow.SelectLocation(poi))

	item := flow.NewItem("Picnic", "bring a blanket")
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Golden Gate Park", item.Location)
	assert.Equal(t, 37.7694, *item.Latitude)
	assert.Equal(t, -122.4862, *item.Longitude)
	assert.True(t, flow.Validate(item))

	flow.Clear()
	assert.Equal(t, StateEditing, flow.State())
	assert.Empty(t, flow.NewItem("x", "y").Location)
}

type geofenceTarget struct{}

func (geofenceTarget) TargetID() string { return "test" }

func (geofenceTarget) Deliver(ctx context.Context, event geofence.Event) error { return nil }

func TestSave_ActivatesAfterPersist(t *testing.T) {
	repo := newTestRepository(t)
	registrar := &activatingRegistrar{repo: repo}
	flow, err := NewFlow(repo, registrar)
	require.NoError(t, err)
	item := validItem()

	require.NoError(t, flow.Save(context.Background(), item))
	assert.Equal(t, []string{item.ID}, registrar.activated)
	assert.Equal(t, []bool{true}, registrar.stored)
}

func TestSave_PersistFailureSkipsActivation(t *testing.T) {
	registrar := &activatingRegistrar{repo: newTestRepository(t)}
	flow, err := NewFlow(&failingSaver{err: errors.New("storage closed")}, registrar)
	require.NoError(t, err)

	assert.Error(t, flow.Save(context.Background(), validItem()))
	assert.Len(t, registrar.registered, 1)
	assert.Empty(t, registrar.activated)
}
