package dataapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/socialx/socialx-go/internal/common"
	"github.com/socialx/socialx-go/internal/models"
	"github.com/socialx/socialx-go/internal/session"
	"github.com/socialx/socialx-go/internal/store"
)

// ProfilesAPI performs the remote profile reads and writes. Every method
// is a plain round trip (or a short fixed sequence of them) against the
// graph store; orchestration, activity tracking, and the auth gate live
// a layer above.
type ProfilesAPI struct {
	store   store.Store
	paths   *Paths
	session session.Session
}

func NewProfilesAPI(st store.Store, sess session.Session) *ProfilesAPI {
	return &ProfilesAPI{store: st, paths: NewPaths(sess), session: sess}
}

func (a *ProfilesAPI) getProfile(ctx context.Context, path store.Path) (*models.Profile, error) {
	raw, err := a.store.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("malformed profile record at %q: %w", path, err)
	}
	return &p, nil
}

// GetProfileByUsername fetches a single profile.
func (a *ProfilesAPI) GetProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	p, err := a.getProfile(ctx, ProfileByUsername(username))
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", username, err)
	}
	return p, nil
}

// GetCurrentProfile fetches the caller's own profile.
func (a *ProfilesAPI) GetCurrentProfile(ctx context.Context) (*models.Profile, error) {
	p, err := a.getProfile(ctx, a.paths.CurrentProfile())
	if err != nil {
		return nil, fmt.Errorf("current profile: %w", err)
	}
	return p, nil
}

// GetUserProfilesByPosts fetches the profiles owning the given posts,
// deduplicated. Posts whose owner no longer has a profile are skipped.
func (a *ProfilesAPI) GetUserProfilesByPosts(ctx context.Context, posts []models.Post) ([]models.Profile, error) {
	seen := make(map[string]struct{}, len(posts))
	out := make([]models.Profile, 0, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.OwnerAlias]; ok {
			continue
		}
		seen[post.OwnerAlias] = struct{}{}

		p, err := a.getProfile(ctx, ProfileByUsername(post.OwnerAlias))
		if errors.Is(err, common.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (a *ProfilesAPI) allProfiles(ctx context.Context) ([]models.Profile, error) {
	children, err := a.store.Map(ctx, store.Path(TableProfiles))
	if err != nil {
		return nil, fmt.Errorf("profiles scan: %w", err)
	}
	out := make([]models.Profile, 0, len(children))
	for alias, raw := range children {
		var p models.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("malformed profile record %q: %w", alias, err)
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(x, y models.Profile) int {
		return strings.Compare(x.Alias, y.Alias)
	})
	return out, nil
}

// SearchByFullName returns profiles whose full name contains term,
// case-insensitively, capped at maxResults when positive.
func (a *ProfilesAPI) SearchByFullName(ctx context.Context, term string, maxResults int) ([]models.Profile, error) {
	all, err := a.allProfiles(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	out := make([]models.Profile, 0)
	for _, p := range all {
		if !strings.Contains(strings.ToLower(p.FullName), term) {
			continue
		}
		out = append(out, p)
		if maxResults > 0 && len(out) == maxResults {
			break
		}
	}
	return out, nil
}

// FindFriendsSuggestions returns up to maxResults profiles the caller is
// not yet connected to.
func (a *ProfilesAPI) FindFriendsSuggestions(ctx context.Context, maxResults int) ([]models.Profile, error) {
	ident, _ := a.session.Current()

	current, err := a.GetCurrentProfile(ctx)
	if err != nil {
		return nil, err
	}
	connected := make(map[string]struct{}, len(current.Friends))
	for _, f := range current.Friends {
		connected[f.Alias] = struct{}{}
	}

	all, err := a.allProfiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Profile, 0)
	for _, p := range all {
		if p.Alias == ident.Alias {
			continue
		}
		if _, ok := connected[p.Alias]; ok {
			continue
		}
		out = append(out, p)
		if maxResults > 0 && len(out) == maxResults {
			break
		}
	}
	return out, nil
}

// ProfileUpdate carries the fields of a profile update. A nil Avatar
// omits the field, leaving the stored value untouched.
type ProfileUpdate struct {
	Email         string
	FullName      string
	AboutMeText   string
	MiningEnabled bool
	Avatar        *string
}

// UpdateProfile rewrites the caller's profile record with the given
// fields. The write replaces the whole record; friends and keys are
// carried over from the stored profile.
func (a *ProfilesAPI) UpdateProfile(ctx context.Context, u ProfileUpdate) error {
	current, err := a.GetCurrentProfile(ctx)
	if err != nil {
		return err
	}

	current.Email = u.Email
	current.FullName = u.FullName
	current.AboutMeText = u.AboutMeText
	current.MiningEnabled = u.MiningEnabled
	if u.Avatar != nil {
		current.Avatar = *u.Avatar
	}

	if err := a.store.Put(ctx, a.paths.CurrentProfile(), current); err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}

func upsertFriend(refs []models.FriendRef, ref models.FriendRef) []models.FriendRef {
	for i, f := range refs {
		if f.Alias == ref.Alias {
			refs[i] = ref
			return refs
		}
	}
	return append(refs, ref)
}

func removeFriendRef(refs []models.FriendRef, alias string) []models.FriendRef {
	return slices.DeleteFunc(refs, func(f models.FriendRef) bool {
		return f.Alias == alias
	})
}

func (a *ProfilesAPI) putBoth(ctx context.Context, current, friend *models.Profile) error {
	if err := a.store.Put(ctx, a.paths.CurrentProfile(), current); err != nil {
		return fmt.Errorf("friend edge write: %w", err)
	}
	if err := a.store.Put(ctx, ProfileByUsername(friend.Alias), friend); err != nil {
		return fmt.Errorf("friend edge write: %w", err)
	}
	return nil
}

// AddFriend records a pending friend edge on both profiles.
func (a *ProfilesAPI) AddFriend(ctx context.Context, friendAlias string) error {
	ident, _ := a.session.Current()

	current, err := a.GetCurrentProfile(ctx)
	if err != nil {
		return err
	}
	friend, err := a.GetProfileByUsername(ctx, friendAlias)
	if err != nil {
		return err
	}

	current.Friends = upsertFriend(current.Friends, models.FriendRef{
		Alias: friend.Alias, Pub: friend.Pub, Status: models.FriendStatusPending,
	})
	friend.Friends = upsertFriend(friend.Friends, models.FriendRef{
		Alias: ident.Alias, Pub: current.Pub, Status: models.FriendStatusPending,
	})
	return a.putBoth(ctx, current, friend)
}

// RemoveFriend deletes the friend edge on both profiles.
func (a *ProfilesAPI) RemoveFriend(ctx context.Context, friendAlias string) error {
	ident, _ := a.session.Current()

	current, err := a.GetCurrentProfile(ctx)
	if err != nil {
		return err
	}
	friend, err := a.GetProfileByUsername(ctx, friendAlias)
	if err != nil {
		return err
	}

	current.Friends = removeFriendRef(current.Friends, friendAlias)
	friend.Friends = removeFriendRef(friend.Friends, ident.Alias)
	return a.putBoth(ctx, current, friend)
}

// AcceptFriend flips a pending friend edge to accepted on both profiles.
func (a *ProfilesAPI) AcceptFriend(ctx context.Context, friendAlias string) error {
	ident, _ := a.session.Current()

	current, err := a.GetCurrentProfile(ctx)
	if err != nil {
		return err
	}
	friend, err := a.GetProfileByUsername(ctx, friendAlias)
	if err != nil {
		return err
	}

	if !slices.ContainsFunc(current.Friends, func(f models.FriendRef) bool {
		return f.Alias == friendAlias
	}) {
		return fmt.Errorf("friend request from %q: %w", friendAlias, common.ErrNotFound)
	}

	current.Friends = upsertFriend(current.Friends, models.FriendRef{
		Alias: friend.Alias, Pub: friend.Pub, Status: models.FriendStatusAccepted,
	})
	friend.Friends = upsertFriend(friend.Friends, models.FriendRef{
		Alias: ident.Alias, Pub: current.Pub, Status: models.FriendStatusAccepted,
	})
	return a.putBoth(ctx, current, friend)
}
