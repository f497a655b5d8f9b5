package lesson

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/festify/console/core"
	"github.com/festify/console/core/reward"
	"github.com/festify/console/core/timeline"
)

var ErrNotFound = errors.New("lesson not found")

// maxConcurrentUploads bounds the image uploads of one content update.
const maxConcurrentUploads = 4

type (
	Repository interface {
		reward.LessonUnlinker

		QueryLessons(ctx context.Context, season core.Season) ([]Lesson, error)
		GetLesson(ctx context.Context, season core.Season, id string) (Lesson, error)
		CountLessons(ctx context.Context, season core.Season) (int, error)
		// CreateLesson inserts l under a new id and returns it with its id set.
		CreateLesson(ctx context.Context, season core.Season, l Lesson) (Lesson, error)
		UpdateGeneralInfo(ctx context.Context, season core.Season, id string, gi GeneralInfo) error
		UpdateContent(ctx context.Context, season core.Season, id string, c Content) error
		UpdateQuestions(ctx context.Context, season core.Season, id string, questions []Question) error
		// SetReward points the lesson to rewardID; an empty rewardID clears the pointer.
		SetReward(ctx context.Context, season core.Season, id, rewardID string) error
		DeleteLesson(ctx context.Context, season core.Season, id string) error
	}

	pendingImage struct {
		page  Page
		index int
		block ImageBlock
	}

	ServiceInterface interface {
		QueryBySeason(ctx context.Context, season core.Season) ([]Summary, error)
		GetByID(ctx context.Context, season core.Season, id string) (Detail, error)
		Count(ctx context.Context, season core.Season) (int, error)
		Create(ctx context.Context, season core.Season, nl NewLesson) (Lesson, error)
		UpdateGeneralInfo(ctx context.Context, season core.Season, id string, gi GeneralInfo) error
		UpdateContent(ctx context.Context, season core.Season, id string, c Content) (Content, error)
		UpdateQuestions(ctx context.Context, season core.Season, id string, questions []Question) error
		CreateReward(ctx context.Context, season core.Season, id string, nr reward.NewReward) (reward.Reward, error)
		DeleteReward(ctx context.Context, season core.Season, id, rewardID string) error
		Delete(ctx context.Context, season core.Season, id string) error
	}

	// Service keeps a lesson, its timeline holiday, its reward and their blobs in agreement.
	// Steps of one operation run in order; nothing is rolled back, and every step is safe to retry.
	Service struct {
		repo      Repository
		timelines timeline.Repository
		rewards   reward.ServiceInterface
		blobs     core.BlobStore
		validate  *validator.Validate
		logger    core.Logger
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(
	repo Repository,
	timelines timeline.Repository,
	rewards reward.ServiceInterface,
	blobs core.BlobStore,
	validate *validator.Validate,
	logger core.Logger,
) *Service {
	return &Service{
		repo:      repo,
		timelines: timelines,
		rewards:   rewards,
		blobs:     blobs,
		validate:  validate,
		logger:    logger,
	}
}

func checkSeason(season core.Season) error {
	if !season.Valid() {
		return core.NewBadRequestError("Invalid season")
	}
	return nil
}

func wrapWriteErr(err error, msg string) error {
	if errors.Is(err, ErrNotFound) {
		return core.NewNotFoundError("Lesson not found")
	}
	return core.NewInternalError(err, msg)
}

func (svc *Service) get(ctx context.Context, season core.Season, id string) (Lesson, error) {
	if err := checkSeason(season); err != nil {
		return Lesson{}, err
	}
	if id == "" {
		return Lesson{}, core.NewBadRequestError("Lesson id is required")
	}
	l, err := svc.repo.GetLesson(ctx, season, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Lesson{}, core.NewNotFoundError("Lesson not found")
		}
		return Lesson{}, core.NewInternalError(err, "Failed to find the lesson")
	}
	return l, nil
}

func (svc *Service) QueryBySeason(ctx context.Context, season core.Season) ([]Summary, error) {
	if err := checkSeason(season); err != nil {
		return nil, err
	}
	lessons, err := svc.repo.QueryLessons(ctx, season)
	if err != nil {
		return nil, core.NewInternalError(err, "Failed to get lessons")
	}
	summaries := make([]Summary, 0, len(lessons))
	for _, l := range lessons {
		summaries = append(summaries, l.Summary())
	}
	return summaries, nil
}

// GetByID returns the lesson with its reward. A dangling reward pointer resolves to no reward.
func (svc *Service) GetByID(ctx context.Context, season core.Season, id string) (Detail, error) {
	l, err := svc.get(ctx, season, id)
	if err != nil {
		return Detail{}, err
	}
	detail := Detail{Lesson: l}
	if l.RewardID != "" {
		r, err := svc.rewards.GetByID(ctx, l.RewardID)
		switch {
		case err == nil:
			detail.Reward = &r
		case core.ErrorCodeOf(err) == core.CodeNotFound:
			svc.logger.Warn(fmt.Sprintf("lesson %s/%s points to missing reward %s", season, id, l.RewardID))
		default:
			return Detail{}, err
		}
	}
	return detail, nil
}

func (svc *Service) Count(ctx context.Context, season core.Season) (int, error) {
	if err := checkSeason(season); err != nil {
		return 0, err
	}
	n, err := svc.repo.CountLessons(ctx, season)
	if err != nil {
		return 0, core.NewInternalError(err, "Failed to count lessons")
	}
	return n, nil
}

// Create uploads the thumbnail, inserts the lesson, then appends its holiday to the season's timeline.
func (svc *Service) Create(ctx context.Context, season core.Season, nl NewLesson) (Lesson, error) {
	if err := checkSeason(season); err != nil {
		return Lesson{}, err
	}
	nl.Clean()
	if err := nl.Validate(svc.validate); err != nil {
		return Lesson{}, err
	}
	if _, err := timeline.Fetch(ctx, svc.timelines, season); err != nil {
		return Lesson{}, err
	}

	url, err := svc.blobs.Upload(ctx, timeline.ImageDir(season), nl.Thumbnail)
	if err != nil {
		return Lesson{}, core.NewUploadError(err)
	}

	l, err := svc.repo.CreateLesson(ctx, season, Lesson{
		Season:        season,
		HolidayName:   nl.HolidayName,
		XPReward:      nl.XPReward,
		LastForSeason: nl.LastForSeason,
		Content:       Content{},
		Questions:     []Question{},
	})
	if err != nil {
		if url != nl.Thumbnail {
			if dErr := svc.blobs.Delete(ctx, url); dErr != nil {
				svc.logger.Warn(fmt.Sprintf("orphaned lesson thumbnail %s: %v", url, dErr), dErr)
			}
		}
		return Lesson{}, core.NewInternalError(err, "Failed to create lesson")
	}

	h := timeline.Holiday{
		CelebratedOn: nl.CelebratedOn,
		Name:         nl.HolidayName,
		Thumbnail:    url,
		LessonID:     l.ID,
	}
	if err := svc.timelines.AppendHoliday(ctx, season, h); err != nil {
		svc.logger.Error(fmt.Sprintf("lesson %s/%s created without a holiday: %v", season, l.ID, err), err)
		return Lesson{}, core.NewInternalError(err, "Failed to add holiday to timeline")
	}
	return l, nil
}

// UpdateGeneralInfo patches the lesson, then renames its holiday in the timeline.
func (svc *Service) UpdateGeneralInfo(ctx context.Context, season core.Season, id string, gi GeneralInfo) error {
	if err := checkSeason(season); err != nil {
		return err
	}
	gi.Clean()
	if err := gi.Validate(svc.validate); err != nil {
		return err
	}

	if err := svc.repo.UpdateGeneralInfo(ctx, season, id, gi); err != nil {
		return wrapWriteErr(err, "Failed to update lesson")
	}

	tl, err := timeline.Fetch(ctx, svc.timelines, season)
	if err != nil {
		return err
	}
	i := timeline.IndexOfLesson(tl.Holidays, id)
	if i < 0 {
		return core.NewNotFoundError("Holiday not found")
	}
	tl.Holidays[i].Name = gi.HolidayName

	if err := timeline.Save(ctx, svc.timelines, season, tl.Holidays); err != nil {
		svc.logger.Error(fmt.Sprintf("lesson %s/%s renamed but its holiday was not: %v", season, id, err), err)
		return core.NewInternalError(err, "Failed to update holiday name in timeline")
	}
	return nil
}

// UpdateContent uploads every new image payload and writes the normalized content once all of them are done.
// The images they replace are deleted after the write, so an aborted update leaves the stored lesson intact.
func (svc *Service) UpdateContent(ctx context.Context, season core.Season, id string, c Content) (Content, error) {
	if _, err := svc.get(ctx, season, id); err != nil {
		return nil, err
	}

	normalized := c.Normalize()
	dir := path.Join(timeline.ImageDir(season), id)

	pending := make([]pendingImage, 0)
	for pid, page := range normalized {
		for i, b := range page {
			switch b := b.(type) {
			case TextBlock:
			case ImageBlock:
				if b.Source == "" {
					return nil, core.NewBadRequestError(fmt.Sprintf("Image is missing on %s", pid))
				}
				page[i] = ImageBlock{Source: b.Source}
				if !svc.blobs.IsDurable(b.Source) {
					if err := svc.blobs.Check(b.Source); err != nil {
						return nil, core.NewUploadError(err)
					}
					pending = append(pending, pendingImage{page: page, index: i, block: b})
				}
			default:
				return nil, core.NewBadRequestError(fmt.Sprintf("Unknown content block on %s", pid))
			}
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)
	for _, img := range pending {
		g.Go(func() error {
			url, err := svc.blobs.Upload(gCtx, dir, img.block.Source)
			if err != nil {
				return core.NewUploadError(err)
			}
			img.page[img.index] = ImageBlock{Source: url}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := svc.repo.UpdateContent(ctx, season, id, normalized); err != nil {
		return nil, wrapWriteErr(err, "Failed to update lesson content")
	}

	inUse := make(map[string]bool)
	for _, url := range normalized.Images() {
		inUse[url] = true
	}
	var replaced errgroup.Group
	for _, img := range pending {
		prev := img.block.Previous
		if prev == "" || inUse[prev] {
			continue
		}
		replaced.Go(func() error {
			return svc.blobs.Delete(ctx, prev)
		})
	}
	if err := replaced.Wait(); err != nil {
		svc.logger.Warn(fmt.Sprintf("lesson %s/%s: replaced image left in storage: %v", season, id, err), err)
	}
	return normalized, nil
}

func (svc *Service) UpdateQuestions(ctx context.Context, season core.Season, id string, questions []Question) error {
	if err := checkSeason(season); err != nil {
		return err
	}
	if questions == nil {
		questions = []Question{}
	}
	for i := range questions {
		questions[i].Title = core.CleanString(questions[i].Title)
	}
	if err := validateQuestions(svc.validate, questions); err != nil {
		return err
	}
	if err := svc.repo.UpdateQuestions(ctx, season, id, questions); err != nil {
		return wrapWriteErr(err, "Failed to update lesson questions")
	}
	return nil
}

// CreateReward creates the reward (thumbnail first), then points the lesson to it.
func (svc *Service) CreateReward(ctx context.Context, season core.Season, id string, nr reward.NewReward) (reward.Reward, error) {
	l, err := svc.get(ctx, season, id)
	if err != nil {
		return reward.Reward{}, err
	}
	if l.RewardID != "" {
		return reward.Reward{}, core.NewBadRequestError("Lesson already has a reward")
	}

	r, err := svc.rewards.Create(ctx, nr)
	if err != nil {
		return reward.Reward{}, err
	}

	if err := svc.repo.SetReward(ctx, season, id, r.ID); err != nil {
		svc.logger.Error(fmt.Sprintf("reward %s created without a lesson: %v", r.ID, err), err)
		return reward.Reward{}, wrapWriteErr(err, "Failed to add reward to lesson")
	}
	return r, nil
}

// DeleteReward deletes the lesson's reward: thumbnail, then document, then the lesson's pointer.
func (svc *Service) DeleteReward(ctx context.Context, season core.Season, id, rewardID string) error {
	l, err := svc.get(ctx, season, id)
	if err != nil {
		return err
	}
	if l.RewardID == "" || (rewardID != "" && rewardID != l.RewardID) {
		return core.NewNotFoundError("Reward not found")
	}

	// Discard succeeds when the document is already gone, leaving only the pointer to clear.
	if err := svc.rewards.Discard(ctx, l.RewardID); err != nil {
		return err
	}
	if err := svc.repo.SetReward(ctx, season, id, ""); err != nil {
		return wrapWriteErr(err, "Failed to remove reward from lesson")
	}
	return nil
}

// Delete removes the lesson's images, its reward, its holiday (thumbnail first) and the lesson itself, last.
// If a step fails the lesson document is left in place so the call can be retried.
func (svc *Service) Delete(ctx context.Context, season core.Season, id string) error {
	l, err := svc.get(ctx, season, id)
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, url := range l.Content.Images() {
		g.Go(func() error {
			return svc.blobs.Delete(ctx, url)
		})
	}
	if err := g.Wait(); err != nil {
		return core.NewInternalError(err, "Failed to delete image from storage")
	}

	if l.RewardID != "" {
		if err := svc.rewards.Discard(ctx, l.RewardID); err != nil {
			return err
		}
	}

	tl, err := timeline.Fetch(ctx, svc.timelines, season)
	if err != nil {
		return err
	}
	if i := timeline.IndexOfLesson(tl.Holidays, id); i >= 0 {
		if thumb := tl.Holidays[i].Thumbnail; thumb != "" {
			if err := svc.blobs.Delete(ctx, thumb); err != nil {
				return core.NewInternalError(err, "Failed to delete image from storage")
			}
		}
		holidays := append(tl.Holidays[:i:i], tl.Holidays[i+1:]...)
		if err := timeline.Save(ctx, svc.timelines, season, holidays); err != nil {
			return err
		}
	}

	if err := svc.repo.DeleteLesson(ctx, season, id); err != nil {
		return wrapWriteErr(err, "Failed to delete lesson")
	}
	return nil
}
