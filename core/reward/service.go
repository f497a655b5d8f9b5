package reward

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

var ErrNotFound = errors.New("reward not found")

// ImageDir is the blob directory of reward thumbnails.
const ImageDir = "images/rewards"

type (
	Repository interface {
		GetReward(ctx context.Context, id string) (Reward, error)
		CreateReward(ctx context.Context, r Reward) (Reward, error)
		UpdateReward(ctx context.Context, r Reward) error
		DeleteReward(ctx context.Context, id string) error
	}

	// LessonUnlinker clears the reward pointer of whichever lesson holds it.
	LessonUnlinker interface {
		UnlinkReward(ctx context.Context, rewardID string) error
	}

	ServiceInterface interface {
		GetByID(ctx context.Context, id string) (Reward, error)
		Create(ctx context.Context, nr NewReward) (Reward, error)
		Update(ctx context.Context, id string, ur UpdateReward) (Reward, error)
		Delete(ctx context.Context, id string) error
		Discard(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		lessons  LessonUnlinker
		blobs    core.BlobStore
		validate *validator.Validate
		logger   core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(
	repo Repository,
	lessons LessonUnlinker,
	blobs core.BlobStore,
	validate *validator.Validate,
	logger core.Logger,
) *Service {
	return &Service{
		repo:     repo,
		lessons:  lessons,
		blobs:    blobs,
		validate: validate,
		logger:   logger,
	}
}

func (svc *Service) get(ctx context.Context, id string) (Reward, error) {
	r, err := svc.repo.GetReward(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Reward{}, core.NewNotFoundError("Reward not found")
		}
		return Reward{}, core.NewInternalError(err, "Failed to find reward")
	}
	return r, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Reward, error) {
	if id == "" {
		return Reward{}, core.NewBadRequestError("Reward id is required")
	}
	return svc.get(ctx, id)
}

// Create uploads the thumbnail, then inserts the reward document.
func (svc *Service) Create(ctx context.Context, nr NewReward) (Reward, error) {
	nr.Clean()
	if err := nr.Validate(svc.validate); err != nil {
		return Reward{}, err
	}

	url, err := svc.blobs.Upload(ctx, ImageDir, nr.Thumbnail)
	if err != nil {
		return Reward{}, core.NewUploadError(err)
	}

	r, err := svc.repo.CreateReward(ctx, Reward{Name: nr.Name, Thumbnail: url})
	if err != nil {
		if url != nr.Thumbnail {
			svc.discardBlob(ctx, url)
		}
		return Reward{}, core.NewInternalError(err, "Failed to create reward")
	}
	return r, nil
}

// Update writes the new fields. A replaced thumbnail is uploaded first and the old blob
// is deleted only once the document points to the new one.
func (svc *Service) Update(ctx context.Context, id string, ur UpdateReward) (Reward, error) {
	ur.Clean()
	if err := ur.Validate(svc.validate); err != nil {
		return Reward{}, err
	}

	r, err := svc.GetByID(ctx, id)
	if err != nil {
		return Reward{}, err
	}

	var replaced string
	if ur.Name != "" {
		r.Name = ur.Name
	}
	if ur.Thumbnail != "" && ur.Thumbnail != r.Thumbnail {
		url, err := svc.blobs.Upload(ctx, ImageDir, ur.Thumbnail)
		if err != nil {
			return Reward{}, core.NewUploadError(err)
		}
		if url != r.Thumbnail {
			replaced = r.Thumbnail
		}
		r.Thumbnail = url
	}

	if err := svc.repo.UpdateReward(ctx, r); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Reward{}, core.NewNotFoundError("Reward not found")
		}
		return Reward{}, core.NewInternalError(err, "Failed to update reward")
	}

	if replaced != "" {
		if err := svc.blobs.Delete(ctx, replaced); err != nil {
			return Reward{}, core.NewInternalError(err, "Failed to delete image from storage")
		}
	}
	return r, nil
}

// Delete removes the thumbnail, then the document, then the pointer held by its lesson.
func (svc *Service) Delete(ctx context.Context, id string) error {
	r, err := svc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := svc.purge(ctx, r); err != nil {
		return err
	}
	if err := svc.lessons.UnlinkReward(ctx, r.ID); err != nil {
		return core.NewInternalError(err, "Failed to remove reward from lesson")
	}
	return nil
}

// Discard removes the thumbnail and the document of a reward, if it still exists.
// It leaves lesson pointers alone and succeeds when the reward is already gone.
func (svc *Service) Discard(ctx context.Context, id string) error {
	r, err := svc.repo.GetReward(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return core.NewInternalError(err, "Failed to find reward")
	}
	return svc.purge(ctx, r)
}

func (svc *Service) purge(ctx context.Context, r Reward) error {
	if r.Thumbnail != "" {
		if err := svc.blobs.Delete(ctx, r.Thumbnail); err != nil {
			return core.NewInternalError(err, "Failed to delete image from storage")
		}
	}
	if err := svc.repo.DeleteReward(ctx, r.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return core.NewInternalError(err, "Failed to delete reward")
	}
	return nil
}

func (svc *Service) discardBlob(ctx context.Context, url string) {
	if err := svc.blobs.Delete(ctx, url); err != nil {
		svc.logger.Warn(fmt.Sprintf("orphaned reward thumbnail %s: %v", url, err), err)
	}
}
