package models

// Post is the minimal post view the profile operations need: enough to
// resolve the owning profile and the post's location in the graph.
type Post struct {
	ID         string `json:"id"`
	OwnerAlias string `json:"ownerAlias"`
	Path       string `json:"path"`
}

// UpdateProfileInput carries the mutable profile fields for an update.
// Avatar may be a local file path (triggers an upload), a full URL
// (passed over), or empty (field left as is).
type UpdateProfileInput struct {
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	Avatar        string `json:"avatar"`
	AboutMeText   string `json:"aboutMeText"`
	MiningEnabled bool   `json:"miningEnabled"`
}
