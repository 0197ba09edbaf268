package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvatarURL(t *testing.T) {
	tests := []struct {
		name   string
		avatar string
		want   string
	}{
		{"empty", "", ""},
		{"hash gets gateway prefix", "QmAvatar", "http://gw.example/ipfs/QmAvatar"},
		{"full url passes through", "https://cdn.example.com/pic.jpg", "https://cdn.example.com/pic.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{Avatar: tt.avatar}
			require.Equal(t, tt.want, p.AvatarURL("http://gw.example/ipfs/"))
		})
	}
}

func TestFriendAliases(t *testing.T) {
	p := Profile{Friends: []FriendRef{
		{Alias: "bob", Status: FriendStatusAccepted},
		{Alias: "carol", Status: FriendStatusPending},
		{Alias: "dave", Status: FriendStatusAccepted},
	}}
	require.Equal(t, []string{"bob", "dave"}, p.FriendAliases())
}
