package dataapi

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/socialx/socialx-go/internal/common"
	"github.com/socialx/socialx-go/internal/models"
	"github.com/socialx/socialx-go/internal/session"
	"github.com/socialx/socialx-go/internal/store/memory"
)

func seedProfile(t *testing.T, st *memory.Store, p models.Profile) {
	t.Helper()
	require.NoError(t, st.Put(context.Background(), ProfileByUsername(p.Alias), p))
}

func setupAPI(t *testing.T) (*ProfilesAPI, *memory.Store) {
	t.Helper()
	st := memory.New()
	sess := session.NewStatic(session.Identity{Alias: "alice", Pub: "pub-a"})
	seedProfile(t, st, models.Profile{Alias: "alice", Pub: "pub-a", FullName: "Alice Doe"})
	seedProfile(t, st, models.Profile{Alias: "bob", Pub: "pub-b", FullName: "Bob Ray"})
	seedProfile(t, st, models.Profile{Alias: "carol", Pub: "pub-c", FullName: "Carol Doe"})
	return NewProfilesAPI(st, sess), st
}

func TestGetProfileByUsername(t *testing.T) {
	api, _ := setupAPI(t)

	p, err := api.GetProfileByUsername(context.Background(), "bob")
	require.NoError(t, err)
	require.Equal(t, "Bob Ray", p.FullName)

	_, err = api.GetProfileByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetCurrentProfile(t *testing.T) {
	api, _ := setupAPI(t)

	p, err := api.GetCurrentProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", p.Alias)
}

func TestGetUserProfilesByPosts_DedupesAndSkipsMissing(t *testing.T) {
	api, _ := setupAPI(t)

	posts := []models.Post{
		{ID: "p1", OwnerAlias: "bob"},
		{ID: "p2", OwnerAlias: "bob"},
		{ID: "p3", OwnerAlias: "ghost"},
		{ID: "p4", OwnerAlias: "carol"},
	}
	profiles, err := api.GetUserProfilesByPosts(context.Background(), posts)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, "bob", profiles[0].Alias)
	require.Equal(t, "carol", profiles[1].Alias)
}

func TestSearchByFullName(t *testing.T) {
	api, _ := setupAPI(t)

	profiles, err := api.SearchByFullName(context.Background(), "doe", 0)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	profiles, err = api.SearchByFullName(context.Background(), "doe", 1)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	profiles, err = api.SearchByFullName(context.Background(), "zzz", 0)
	require.NoError(t, err)
	require.Empty(t, profiles)
}

func TestFindFriendsSuggestions_ExcludesSelfAndFriends(t *testing.T) {
	st := memory.New()
	sess := session.NewStatic(session.Identity{Alias: "alice", Pub: "pub-a"})
	seedProfile(t, st, models.Profile{
		Alias: "alice", Pub: "pub-a",
		Friends: []models.FriendRef{{Alias: "bob", Status: models.FriendStatusAccepted}},
	})
	seedProfile(t, st, models.Profile{Alias: "bob"})
	seedProfile(t, st, models.Profile{Alias: "carol"})
	seedProfile(t, st, models.Profile{Alias: "dave"})
	api := NewProfilesAPI(st, sess)

	profiles, err := api.FindFriendsSuggestions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, "carol", profiles[0].Alias)
	require.Equal(t, "dave", profiles[1].Alias)
}

func TestFindFriendsSuggestions_Cap(t *testing.T) {
	st := memory.New()
	sess := session.NewStatic(session.Identity{Alias: "alice"})
	seedProfile(t, st, models.Profile{Alias: "alice"})
	for i := 0; i < 15; i++ {
		seedProfile(t, st, models.Profile{Alias: fmt.Sprintf("user%02d", i)})
	}
	api := NewProfilesAPI(st, sess)

	profiles, err := api.FindFriendsSuggestions(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, profiles, 10)
}

func TestUpdateProfile_ReplacesFieldsKeepsFriends(t *testing.T) {
	st := memory.New()
	sess := session.NewStatic(session.Identity{Alias: "alice"})
	seedProfile(t, st, models.Profile{
		Alias: "alice", Pub: "pub-a", Avatar: "QmOld",
		Friends: []models.FriendRef{{Alias: "bob", Status: models.FriendStatusAccepted}},
	})
	api := NewProfilesAPI(st, sess)

	hash := "QmNew"
	require.NoError(t, api.UpdateProfile(context.Background(), ProfileUpdate{
		Email:    "alice@example.com",
		FullName: "Alice D.",
		Avatar:   &hash,
	}))

	p, err := api.GetCurrentProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", p.Email)
	require.Equal(t, "QmNew", p.Avatar)
	require.Equal(t, "pub-a", p.Pub)
	require.Len(t, p.Friends, 1)
}

func TestUpdateProfile_NilAvatarLeavesStoredValue(t *testing.T) {
	st := memory.New()
	sess := session.NewStatic(session.Identity{Alias: "alice"})
	seedProfile(t, st, models.Profile{Alias: "alice", Avatar: "QmKeep"})
	api := NewProfilesAPI(st, sess)

	require.NoError(t, api.UpdateProfile(context.Background(), ProfileUpdate{FullName: "Alice"}))

	p, err := api.GetCurrentProfile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "QmKeep", p.Avatar)
}

func TestAddFriend_WritesBothEdges(t *testing.T) {
	api, _ := setupAPI(t)
	ctx := context.Background()

	require.NoError(t, api.AddFriend(ctx, "bob"))

	alice, err := api.GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, []models.FriendRef{{Alias: "bob", Pub: "pub-b", Status: models.FriendStatusPending}}, alice.Friends)

	bob, err := api.GetProfileByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, []models.FriendRef{{Alias: "alice", Pub: "pub-a", Status: models.FriendStatusPending}}, bob.Friends)
}

func TestAcceptFriend_FlipsToAccepted(t *testing.T) {
	api, _ := setupAPI(t)
	ctx := context.Background()

	require.NoError(t, api.AddFriend(ctx, "bob"))
	require.NoError(t, api.AcceptFriend(ctx, "bob"))

	alice, err := api.GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, models.FriendStatusAccepted, alice.Friends[0].Status)

	bob, err := api.GetProfileByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, models.FriendStatusAccepted, bob.Friends[0].Status)
}

func TestAcceptFriend_NoPendingRequest(t *testing.T) {
	api, _ := setupAPI(t)
	require.ErrorIs(t, api.AcceptFriend(context.Background(), "bob"), common.ErrNotFound)
}

func TestRemoveFriend_DeletesBothEdges(t *testing.T) {
	api, _ := setupAPI(t)
	ctx := context.Background()

	require.NoError(t, api.AddFriend(ctx, "bob"))
	require.NoError(t, api.RemoveFriend(ctx, "bob"))

	alice, err := api.GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, alice.Friends)

	bob, err := api.GetProfileByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Empty(t, bob.Friends)
}
