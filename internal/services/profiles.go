// Package services contains the orchestrated user-facing operations.
// Every operation follows the same shape: check the session, dispatch an
// intent event, open an activity entry, perform the remote call, dispatch
// the synced result or record the failure, and always close the entry.
package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/socialx/socialx-go/internal/activity"
	"github.com/socialx/socialx-go/internal/dataapi"
	"github.com/socialx/socialx-go/internal/events"
	"github.com/socialx/socialx-go/internal/logging"
	"github.com/socialx/socialx-go/internal/models"
	"github.com/socialx/socialx-go/internal/session"
	"github.com/socialx/socialx-go/internal/transfer"
	"github.com/socialx/socialx-go/internal/uploads"
)

// suggestionLimit is what the remote suggestion query always asks for,
// regardless of the caller-supplied maximum.
const suggestionLimit = 10

// SearchInput is the input of SearchProfilesByFullName.
type SearchInput struct {
	Term       string
	MaxResults int
}

// SuggestionsInput is the input of FindFriendsSuggestions.
type SuggestionsInput struct {
	MaxResults int
}

// ProfileService is the set of orchestrated profile operations.
//
// Methods deliberately return nothing: failures never cross the operation
// boundary. Outcomes are observable through the activity ledger and the
// event bus, and a failed operation leaves the cached view unchanged.
// When nobody is signed in every method is a silent no-op — no events,
// no ledger entry, no remote call.
type ProfileService interface {
	GetProfilesByPosts(ctx context.Context, posts []models.Post)
	SearchProfilesByFullName(ctx context.Context, input SearchInput)
	FindFriendsSuggestions(ctx context.Context, input SuggestionsInput)
	GetProfileByUsername(ctx context.Context, username string)
	GetCurrentProfile(ctx context.Context)
	UpdateCurrentProfile(ctx context.Context, input models.UpdateProfileInput)
	AddFriend(ctx context.Context, friendAlias string)
	RemoveFriend(ctx context.Context, friendAlias string)
	AcceptFriend(ctx context.Context, friendAlias string)
}

type profileService struct {
	api      *dataapi.ProfilesAPI
	transfer transfer.Transfer
	uploads  *uploads.Tracker
	ledger   *activity.Ledger
	bus      *events.Bus
	session  session.Session
	log      logging.Logger
}

// NewProfileService wires the orchestrator to its capabilities.
func NewProfileService(
	api *dataapi.ProfilesAPI,
	tr transfer.Transfer,
	tracker *uploads.Tracker,
	ledger *activity.Ledger,
	bus *events.Bus,
	sess session.Session,
	log logging.Logger,
) ProfileService {
	return &profileService{
		api:      api,
		transfer: tr,
		uploads:  tracker,
		ledger:   ledger,
		bus:      bus,
		session:  sess,
		log:      log,
	}
}

// do runs one operation through the shared skeleton. call is invoked only
// when the caller is signed in and the activity entry is open; its error,
// if any, becomes the entry's failure message. The entry is always closed.
func (s *profileService) do(ctx context.Context, kind events.Kind, intent any, call func(context.Context) error) {
	ident, ok := s.session.Current()
	if !ok || ident.Alias == "" {
		s.log.Debug(ctx, "operation dropped, not signed in", "kind", kind)
		return
	}

	id := uuid.New()
	s.bus.Publish(events.Intent(kind, intent))
	if err := s.ledger.Begin(kind, id); err != nil {
		s.log.Error(ctx, "could not open activity entry", "kind", kind, "error", err)
		return
	}
	defer s.ledger.End(id)

	if err := call(ctx); err != nil {
		s.log.Error(ctx, "operation failed", "kind", kind, "error", err)
		_ = s.ledger.Fail(kind, id, err.Error())
	}
}

func (s *profileService) GetProfilesByPosts(ctx context.Context, posts []models.Post) {
	s.do(ctx, events.KindGetProfilesByPosts, posts, func(ctx context.Context) error {
		profiles, err := s.api.GetUserProfilesByPosts(ctx, posts)
		if err != nil {
			return err
		}
		s.bus.Publish(events.Synced(events.KindGetProfilesByPosts, profiles))
		return nil
	})
}

func (s *profileService) SearchProfilesByFullName(ctx context.Context, input SearchInput) {
	s.do(ctx, events.KindSearchProfilesByFullName, input, func(ctx context.Context) error {
		profiles, err := s.api.SearchByFullName(ctx, input.Term, input.MaxResults)
		if err != nil {
			return err
		}
		s.bus.Publish(events.Synced(events.KindSearchProfilesByFullName, profiles))
		return nil
	})
}

func (s *profileService) FindFriendsSuggestions(ctx context.Context, input SuggestionsInput) {
	s.do(ctx, events.KindFindFriendsSuggestions, input, func(ctx context.Context) error {
		profiles, err := s.api.FindFriendsSuggestions(ctx, suggestionLimit)
		if err != nil {
			return err
		}
		s.bus.Publish(events.Synced(events.KindFindFriendsSuggestions, profiles))
		return nil
	})
}

func (s *profileService) GetProfileByUsername(ctx context.Context, username string) {
	s.do(ctx, events.KindGetProfileByUsername, username, func(ctx context.Context) error {
		profile, err := s.api.GetProfileByUsername(ctx, username)
		if err != nil {
			return err
		}
		s.bus.Publish(events.Synced(events.KindGetProfileByUsername, profile))
		return nil
	})
}

func (s *profileService) GetCurrentProfile(ctx context.Context) {
	s.do(ctx, events.KindGetCurrentProfile, nil, func(ctx context.Context) error {
		profile, err := s.api.GetCurrentProfile(ctx)
		if err != nil {
			return err
		}
		s.bus.Publish(events.Synced(events.KindGetCurrentProfile, profile))
		return nil
	})
}

// UpdateCurrentProfile is the compound operation. A local avatar path is
// pushed through the upload protocol first and its content hash replaces
// the avatar field; an avatar that is already a URL is stripped from the
// outgoing payload. The remote update is never issued before the upload
// record is terminal. Any branch that succeeds re-fetches the current
// profile as a full snapshot.
func (s *profileService) UpdateCurrentProfile(ctx context.Context, input models.UpdateProfileInput) {
	s.do(ctx, events.KindUpdateProfile, input, func(ctx context.Context) error {
		update := dataapi.ProfileUpdate{
			Email:         input.Email,
			FullName:      input.FullName,
			AboutMeText:   input.AboutMeText,
			MiningEnabled: input.MiningEnabled,
		}

		switch {
		case input.Avatar != "" && !strings.Contains(input.Avatar, "http"):
			hash, err := uploads.Run(ctx, s.transfer, s.uploads, input.Avatar)
			if err != nil {
				return err
			}
			update.Avatar = &hash
		case input.Avatar != "":
			// already hosted remotely, do not overwrite with a URL
			update.Avatar = nil
		default:
			empty := ""
			update.Avatar = &empty
		}

		if err := s.api.UpdateProfile(ctx, update); err != nil {
			return err
		}

		s.GetCurrentProfile(ctx)
		return nil
	})
}

// refreshAfter wraps the friend-edge mutations: on success the current
// profile is re-fetched as a whole snapshot instead of patching locally.
func (s *profileService) refreshAfter(ctx context.Context, kind events.Kind, friendAlias string, mutate func(context.Context, string) error) {
	s.do(ctx, kind, friendAlias, func(ctx context.Context) error {
		if err := mutate(ctx, friendAlias); err != nil {
			return err
		}
		s.GetCurrentProfile(ctx)
		return nil
	})
}

func (s *profileService) AddFriend(ctx context.Context, friendAlias string) {
	s.refreshAfter(ctx, events.KindAddFriend, friendAlias, s.api.AddFriend)
}

func (s *profileService) RemoveFriend(ctx context.Context, friendAlias string) {
	s.refreshAfter(ctx, events.KindRemoveFriend, friendAlias, s.api.RemoveFriend)
}

func (s *profileService) AcceptFriend(ctx context.Context, friendAlias string) {
	s.refreshAfter(ctx, events.KindAcceptFriend, friendAlias, s.api.AcceptFriend)
}
