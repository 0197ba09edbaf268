// Package models defines the profile and post types shared across the
// SocialX client layers.
package models

import "strings"

// FriendStatus classifies a friend edge.
type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
)

// FriendRef is a reference to another profile held on a friends edge.
type FriendRef struct {
	Alias  string       `json:"alias"`
	Pub    string       `json:"pub"`
	Status FriendStatus `json:"status"`
}

// Profile is a user profile record as stored in the graph.
// Avatar holds a content hash once an image has been uploaded, or a full
// http(s) URL when the image lives outside the gateway.
type Profile struct {
	Alias         string      `json:"alias"`
	Pub           string      `json:"pub"`
	Email         string      `json:"email"`
	FullName      string      `json:"fullName"`
	Avatar        string      `json:"avatar"`
	AboutMeText   string      `json:"aboutMeText"`
	MiningEnabled bool        `json:"miningEnabled"`
	Friends       []FriendRef `json:"friends"`
}

// AvatarURL resolves the avatar field to a displayable URL. Content hashes
// are prefixed with the gateway base URL; full URLs pass through unchanged.
func (p *Profile) AvatarURL(gatewayBase string) string {
	if p.Avatar == "" {
		return ""
	}
	if strings.HasPrefix(p.Avatar, "http") {
		return p.Avatar
	}
	return gatewayBase + p.Avatar
}

// FriendAliases returns the aliases of all accepted friends.
func (p *Profile) FriendAliases() []string {
	out := make([]string, 0, len(p.Friends))
	for _, f := range p.Friends {
		if f.Status == FriendStatusAccepted {
			out = append(out, f.Alias)
		}
	}
	return out
}
