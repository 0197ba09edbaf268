// Package events carries the client's event stream: operation intents,
// activity transitions, and synced results. The UI/state layer subscribes
// here instead of receiving return values from operations.
package events

import "github.com/google/uuid"

// Kind identifies a user-facing operation.
type Kind string

const (
	KindGetProfilesByPosts       Kind = "getProfilesByPosts"
	KindSearchProfilesByFullName Kind = "searchProfilesByFullName"
	KindFindFriendsSuggestions   Kind = "findFriendsSuggestions"
	KindGetProfileByUsername     Kind = "getProfileByUsername"
	KindGetCurrentProfile        Kind = "getCurrentProfile"
	KindUpdateProfile            Kind = "updateProfile"
	KindAddFriend                Kind = "addFriend"
	KindRemoveFriend             Kind = "removeFriend"
	KindAcceptFriend             Kind = "acceptFriend"
)

// Type classifies an event on the stream.
type Type string

const (
	TypeIntent        Type = "intent"
	TypeActivityBegin Type = "activityBegin"
	TypeActivityFail  Type = "activityFail"
	TypeActivityEnd   Type = "activityEnd"
	TypeSynced        Type = "synced"
)

// Event is a single broadcast item. Payload carries the operation input
// for intents and the normalized result for synced events; Error is set
// only on activityFail.
type Event struct {
	Type       Type
	Kind       Kind
	ActivityID uuid.UUID
	Payload    any
	Error      string
}

// Intent builds the event dispatched before an operation starts.
func Intent(kind Kind, payload any) Event {
	return Event{Type: TypeIntent, Kind: kind, Payload: payload}
}

// Synced builds the event dispatched with an operation's normalized result.
func Synced(kind Kind, payload any) Event {
	return Event{Type: TypeSynced, Kind: kind, Payload: payload}
}

// ActivityBegin builds the event for a new pending activity entry.
func ActivityBegin(kind Kind, id uuid.UUID) Event {
	return Event{Type: TypeActivityBegin, Kind: kind, ActivityID: id}
}

// ActivityFail builds the event for a failed activity entry.
func ActivityFail(kind Kind, id uuid.UUID, msg string) Event {
	return Event{Type: TypeActivityFail, Kind: kind, ActivityID: id, Error: msg}
}

// ActivityEnd builds the event for a finished activity entry.
func ActivityEnd(id uuid.UUID) Event {
	return Event{Type: TypeActivityEnd, ActivityID: id}
}
