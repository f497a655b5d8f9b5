package timeline

import (
	"context"
	"errors"
	"path"

	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

var ErrNotFound = errors.New("timeline not found")

type (
	Repository interface {
		GetTimeline(ctx context.Context, season core.Season) (Timeline, error)
		CreateTimeline(ctx context.Context, season core.Season) error
		// AppendHoliday adds h at the end of the holidays array without reading it first.
		AppendHoliday(ctx context.Context, season core.Season, h Holiday) error
		// SaveHolidays rewrites the whole holidays array.
		SaveHolidays(ctx context.Context, season core.Season, holidays []Holiday) error
	}

	ServiceInterface interface {
		Get(ctx context.Context, season core.Season) (Timeline, error)
		UpdateHoliday(ctx context.Context, season core.Season, index int, uh UpdateHoliday) error
		Seed(ctx context.Context) ([]core.Season, error)
	}

	Service struct {
		repo     Repository
		blobs    core.BlobStore
		validate *validator.Validate
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, blobs core.BlobStore, validate *validator.Validate) *Service {
	return &Service{repo: repo, blobs: blobs, validate: validate}
}

// ImageDir is the blob directory holding the thumbnails and content images of a season's lessons.
func ImageDir(season core.Season) string {
	return path.Join("images", "lessons", season.String())
}

// Fetch reads a season's timeline and maps repository errors onto the error taxonomy.
func Fetch(ctx context.Context, repo Repository, season core.Season) (Timeline, error) {
	if !season.Valid() {
		return Timeline{}, core.NewBadRequestError("Invalid season")
	}
	tl, err := repo.GetTimeline(ctx, season)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Timeline{}, core.NewNotFoundError("Timeline not found")
		}
		return Timeline{}, core.NewInternalError(err, "Failed to find timeline")
	}
	return tl, nil
}

// Save rewrites a season's holidays and maps repository errors onto the error taxonomy.
func Save(ctx context.Context, repo Repository, season core.Season, holidays []Holiday) error {
	if err := repo.SaveHolidays(ctx, season, holidays); err != nil {
		if errors.Is(err, ErrNotFound) {
			return core.NewNotFoundError("Timeline not found")
		}
		return core.NewInternalError(err, "Failed to update holidays in timeline")
	}
	return nil
}

func (svc *Service) Get(ctx context.Context, season core.Season) (Timeline, error) {
	return Fetch(ctx, svc.repo, season)
}

// UpdateHoliday edits the holiday at index in place and rewrites the holidays array read in this call.
// A replaced thumbnail is deleted from blob storage before the new one is uploaded,
// once the new payload is known to decode.
func (svc *Service) UpdateHoliday(ctx context.Context, season core.Season, index int, uh UpdateHoliday) error {
	uh.Clean()
	if err := uh.Validate(svc.validate); err != nil {
		return err
	}

	tl, err := Fetch(ctx, svc.repo, season)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(tl.Holidays) {
		return core.NewNotFoundError("Holiday not found")
	}

	holiday := tl.Holidays[index]
	if uh.CelebratedOn != "" {
		holiday.CelebratedOn = uh.CelebratedOn
	}
	if uh.Thumbnail != "" && uh.Thumbnail != holiday.Thumbnail {
		if err := svc.blobs.Check(uh.Thumbnail); err != nil {
			return core.NewUploadError(err)
		}
		if holiday.Thumbnail != "" {
			if err := svc.blobs.Delete(ctx, holiday.Thumbnail); err != nil {
				return core.NewInternalError(err, "Failed to delete image from storage")
			}
		}
		url, err := svc.blobs.Upload(ctx, ImageDir(season), uh.Thumbnail)
		if err != nil {
			return core.NewUploadError(err)
		}
		holiday.Thumbnail = url
	}
	tl.Holidays[index] = holiday

	return Save(ctx, svc.repo, season, tl.Holidays)
}

// Seed creates an empty timeline for every season that has none and returns the seasons it created.
func (svc *Service) Seed(ctx context.Context) ([]core.Season, error) {
	created := make([]core.Season, 0, len(core.Seasons))
	for _, season := range core.Seasons {
		_, err := svc.repo.GetTimeline(ctx, season)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return created, core.NewInternalError(err, "Failed to find timeline")
		}
		if err := svc.repo.CreateTimeline(ctx, season); err != nil {
			return created, core.NewInternalError(err, "Failed to create timeline")
		}
		created = append(created, season)
	}
	return created, nil
}
