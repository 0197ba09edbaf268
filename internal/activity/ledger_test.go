package activity

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/socialx/socialx-go/internal/common"
	"github.com/socialx/socialx-go/internal/events"
)

func collect(bus *events.Bus) *[]events.Event {
	var got []events.Event
	bus.Subscribe(func(e events.Event) { got = append(got, e) })
	return &got
}

func TestBegin_PublishesPendingEntry(t *testing.T) {
	bus := events.NewBus()
	got := collect(bus)
	l := NewLedger(bus)

	id := uuid.New()
	require.NoError(t, l.Begin(events.KindGetCurrentProfile, id))

	e, ok := l.Get(id)
	require.True(t, ok)
	require.Equal(t, StatusPending, e.Status)

	require.Len(t, *got, 1)
	require.Equal(t, events.TypeActivityBegin, (*got)[0].Type)
	require.Equal(t, id, (*got)[0].ActivityID)
}

func TestBegin_DuplicateID(t *testing.T) {
	l := NewLedger(events.NewBus())
	id := uuid.New()

	require.NoError(t, l.Begin(events.KindAddFriend, id))
	require.ErrorIs(t, l.Begin(events.KindAddFriend, id), common.ErrActivityExists)
}

func TestFailThenEnd_TransitionOrder(t *testing.T) {
	bus := events.NewBus()
	got := collect(bus)
	l := NewLedger(bus)

	id := uuid.New()
	require.NoError(t, l.Begin(events.KindUpdateProfile, id))
	require.NoError(t, l.Fail(events.KindUpdateProfile, id, "boom"))
	l.End(id)

	e, _ := l.Get(id)
	require.Equal(t, StatusFailed, e.Status)
	require.Equal(t, "boom", e.Error)

	require.Len(t, *got, 3)
	require.Equal(t, events.TypeActivityBegin, (*got)[0].Type)
	require.Equal(t, events.TypeActivityFail, (*got)[1].Type)
	require.Equal(t, "boom", (*got)[1].Error)
	require.Equal(t, events.TypeActivityEnd, (*got)[2].Type)
}

func TestEnd_MarksDone(t *testing.T) {
	l := NewLedger(events.NewBus())
	id := uuid.New()

	require.NoError(t, l.Begin(events.KindGetCurrentProfile, id))
	l.End(id)

	e, _ := l.Get(id)
	require.Equal(t, StatusDone, e.Status)
}

func TestEnd_Idempotent(t *testing.T) {
	bus := events.NewBus()
	got := collect(bus)
	l := NewLedger(bus)

	id := uuid.New()
	require.NoError(t, l.Begin(events.KindGetCurrentProfile, id))
	l.End(id)
	l.End(id)

	// begin + one end, the second End is a no-op
	require.Len(t, *got, 2)
}

func TestTerminalState_RejectsFurtherTransitions(t *testing.T) {
	l := NewLedger(events.NewBus())
	id := uuid.New()

	require.NoError(t, l.Begin(events.KindSearchProfilesByFullName, id))
	l.End(id)

	require.ErrorIs(t, l.Fail(events.KindSearchProfilesByFullName, id, "late"), common.ErrActivityFinished)

	e, _ := l.Get(id)
	require.Equal(t, StatusDone, e.Status)
	require.Empty(t, e.Error)
}

func TestFail_UnknownID(t *testing.T) {
	l := NewLedger(events.NewBus())
	require.ErrorIs(t, l.Fail(events.KindAddFriend, uuid.New(), "x"), common.ErrNotFound)
}

func TestConcurrentOperations_DoNotCollide(t *testing.T) {
	l := NewLedger(events.NewBus())

	const n = 50
	ids := make([]uuid.UUID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		ids[i] = uuid.New()
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			require.NoError(t, l.Begin(events.KindGetProfileByUsername, id))
			l.End(id)
		}(ids[i])
	}
	wg.Wait()

	for _, id := range ids {
		e, ok := l.Get(id)
		require.True(t, ok)
		require.Equal(t, StatusDone, e.Status)
	}
	require.Len(t, l.Snapshot(), n)
}
