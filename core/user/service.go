package user

import (
	"context"
	"errors"

	"github.com/festify/console/core"
	"github.com/festify/console/core/timeline"
)

var ErrNotFound = errors.New("user not found")

type (
	Repository interface {
		QueryUsers(ctx context.Context) ([]User, error)
		GetUser(ctx context.Context, id string) (User, error)
		// ResetProgress overwrites the user's progress with p and removes the avatar.
		ResetProgress(ctx context.Context, id string, p Progress) error
	}

	ServiceInterface interface {
		QueryAll(ctx context.Context) ([]Summary, error)
		Wipe(ctx context.Context, id string) error
		NotificationTokens(ctx context.Context) ([]string, error)
	}

	Service struct {
		repo      Repository
		timelines timeline.Repository
		blobs     core.BlobStore
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, timelines timeline.Repository, blobs core.BlobStore) *Service {
	return &Service{repo: repo, timelines: timelines, blobs: blobs}
}

// QueryAll lists every user with the name of the holiday they are currently at.
// Each season's timeline is read at most once; an unknown position yields an empty name.
func (svc *Service) QueryAll(ctx context.Context) ([]Summary, error) {
	users, err := svc.repo.QueryUsers(ctx)
	if err != nil {
		return nil, core.NewInternalError(err, "Failed to get users")
	}

	timelines := make(map[core.Season]timeline.Timeline, len(core.Seasons))
	summaries := make([]Summary, 0, len(users))
	for _, usr := range users {
		season := usr.CurrentLesson.Season
		tl, ok := timelines[season]
		if !ok && season.Valid() {
			tl, err = timeline.Fetch(ctx, svc.timelines, season)
			if err != nil && core.ErrorCodeOf(err) != core.CodeNotFound {
				return nil, err
			}
			timelines[season] = tl
		}
		summaries = append(summaries, Summary{
			ID:            usr.ID,
			Username:      usr.Username,
			XP:            usr.XP,
			Avatar:        usr.Avatar,
			CurrentLesson: tl.LessonName(usr.CurrentLesson.Index),
		})
	}
	return summaries, nil
}

// Wipe deletes the user's avatar and resets their progress to FreshProgress.
func (svc *Service) Wipe(ctx context.Context, id string) error {
	if id == "" {
		return core.NewBadRequestError("User id is required")
	}
	usr, err := svc.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return core.NewNotFoundError("User not found")
		}
		return core.NewInternalError(err, "Failed to find user")
	}

	if usr.Avatar != "" {
		if err := svc.blobs.Delete(ctx, usr.Avatar); err != nil {
			return core.NewInternalError(err, "Failed to delete image from storage")
		}
	}

	if err := svc.repo.ResetProgress(ctx, id, FreshProgress()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return core.NewNotFoundError("User not found")
		}
		return core.NewInternalError(err, "Failed to wipe user data")
	}
	return nil
}

// NotificationTokens returns the push token of every user that has one.
func (svc *Service) NotificationTokens(ctx context.Context) ([]string, error) {
	users, err := svc.repo.QueryUsers(ctx)
	if err != nil {
		return nil, core.NewInternalError(err, "Failed to get users")
	}
	tokens := make([]string, 0, len(users))
	for _, usr := range users {
		if usr.NotificationToken != "" {
			tokens = append(tokens, usr.NotificationToken)
		}
	}
	return tokens, nil
}
