package dataapi

import (
	"github.com/socialx/socialx-go/internal/session"
	"github.com/socialx/socialx-go/internal/store"
)

// Free helpers address entities by explicit reference. Construction is
// pure and deterministic: the same inputs always yield the same path.

// PostMetaByID addresses a post's metadata record.
func PostMetaByID(postID string) store.Path {
	return store.Join(TablePostMetaByID, postID)
}

// PostMetasByUsername addresses the post-meta collection of a user.
func PostMetasByUsername(username string) store.Path {
	return store.Join(TablePostMetasByUser, username)
}

// PostByPath addresses a post record by its pre-built sub-path.
func PostByPath(postPath store.Path) store.Path {
	return store.Path(TablePosts).JoinPath(postPath)
}

// PostsByDate addresses the public partition of a date bucket.
func PostsByDate(datePath store.Path) store.Path {
	return store.Path(TablePosts).JoinPath(datePath).JoinPath(store.Path(EnumPublic))
}

// LikesByPostPath addresses the likes edge of a post.
func LikesByPostPath(postPath store.Path) store.Path {
	return store.Path(TablePosts).JoinPath(postPath).JoinPath(store.Path(EnumLikes))
}

// ProfileByUsername addresses a profile record.
func ProfileByUsername(username string) store.Path {
	return store.Join(TableProfiles, username)
}

// Paths resolves the addresses that depend on the caller's own identity.
type Paths struct {
	session session.Session
}

func NewPaths(s session.Session) *Paths {
	return &Paths{session: s}
}

func (p *Paths) alias() string {
	ident, _ := p.session.Current()
	return ident.Alias
}

// PostMetasByCurrentUser addresses the caller's post-meta collection.
func (p *Paths) PostMetasByCurrentUser() store.Path {
	return store.Join(TablePostMetasByUser, p.alias())
}

// PostMetasByPostIDOfCurrentAccount addresses one of the caller's
// post-meta records.
func (p *Paths) PostMetasByPostIDOfCurrentAccount(postID string) store.Path {
	return store.Join(TablePostMetasByUser, p.alias(), postID)
}

// PostLikesByCurrentUser addresses the caller's like edge on a post.
func (p *Paths) PostLikesByCurrentUser(postPath store.Path) store.Path {
	return LikesByPostPath(postPath).Child(p.alias())
}

// CurrentProfile addresses the caller's own profile record.
func (p *Paths) CurrentProfile() store.Path {
	return store.Join(TableProfiles, p.alias())
}
