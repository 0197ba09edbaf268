package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInOrder(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(func(e Event) { got = append(got, e) })

	bus.Publish(Intent(KindAddFriend, "bob"))
	bus.Publish(Synced(KindGetCurrentProfile, nil))

	require.Len(t, got, 2)
	require.Equal(t, TypeIntent, got[0].Type)
	require.Equal(t, "bob", got[0].Payload)
	require.Equal(t, TypeSynced, got[1].Type)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	var count int
	unsub := bus.Subscribe(func(Event) { count++ })

	bus.Publish(Intent(KindAddFriend, nil))
	unsub()
	bus.Publish(Intent(KindAddFriend, nil))

	require.Equal(t, 1, count)

	// second call is harmless
	unsub()
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	var a, b int
	bus.Subscribe(func(Event) { a++ })
	bus.Subscribe(func(Event) { b++ })

	bus.Publish(Intent(KindRemoveFriend, nil))

	require.Equal(t, 1, a)
	require.Equal(t, 1, b)
}

func TestBus_UnsubscribeFromCallback(t *testing.T) {
	bus := NewBus()

	var count int
	var unsub func()
	unsub = bus.Subscribe(func(Event) {
		count++
		unsub()
	})

	bus.Publish(Intent(KindAcceptFriend, nil))
	bus.Publish(Intent(KindAcceptFriend, nil))

	require.Equal(t, 1, count)
}
