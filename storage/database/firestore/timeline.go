package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/festify/console/core"
	"github.com/festify/console/core/timeline"
)

type (
	holidayRecord struct {
		CelebratedOn string                 `firestore:"celebrated_on" validate:"required"`
		Name         string                 `firestore:"name" validate:"required"`
		Thumbnail    string                 `firestore:"thumbnail"`
		LessonRef    *firestore.DocumentRef `firestore:"lessonRef" validate:"-"`
	}

	timelineRecord struct {
		Holidays []holidayRecord `firestore:"holidays" validate:"dive"`
	}

	TimelineRepository struct {
		client   *firestore.Client
		validate *validator.Validate
	}
)

var _ timeline.Repository = (*TimelineRepository)(nil)

func NewTimelineRepository(client *firestore.Client, validate *validator.Validate) *TimelineRepository {
	return &TimelineRepository{client: client, validate: validate}
}

func (repo *TimelineRepository) doc(season core.Season) *firestore.DocumentRef {
	return repo.client.Collection(timelineCollection).Doc(season.String())
}

func (repo *TimelineRepository) toRecord(season core.Season, h timeline.Holiday) holidayRecord {
	rec := holidayRecord{
		CelebratedOn: h.CelebratedOn,
		Name:         h.Name,
		Thumbnail:    h.Thumbnail,
	}
	if h.LessonID != "" {
		rec.LessonRef = lessonsOf(repo.client, season).Doc(h.LessonID)
	}
	return rec
}

func (repo *TimelineRepository) GetTimeline(ctx context.Context, season core.Season) (timeline.Timeline, error) {
	snap, err := repo.doc(season).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return timeline.Timeline{}, timeline.ErrNotFound
		}
		return timeline.Timeline{}, errors.Wrap(err, "getting timeline")
	}

	var rec timelineRecord
	if err := decode(repo.validate, snap, &rec); err != nil {
		return timeline.Timeline{}, err
	}

	tl := timeline.Timeline{Season: season, Holidays: make([]timeline.Holiday, 0, len(rec.Holidays))}
	for _, h := range rec.Holidays {
		holiday := timeline.Holiday{
			CelebratedOn: h.CelebratedOn,
			Name:         h.Name,
			Thumbnail:    h.Thumbnail,
		}
		if h.LessonRef != nil {
			holiday.LessonID = h.LessonRef.ID
		}
		tl.Holidays = append(tl.Holidays, holiday)
	}
	return tl, nil
}

func (repo *TimelineRepository) CreateTimeline(ctx context.Context, season core.Season) error {
	_, err := repo.doc(season).Create(ctx, timelineRecord{Holidays: []holidayRecord{}})
	if err != nil && !isAlreadyExists(err) {
		return errors.Wrap(err, "creating timeline")
	}
	return nil
}

func (repo *TimelineRepository) AppendHoliday(ctx context.Context, season core.Season, h timeline.Holiday) error {
	_, err := repo.doc(season).Update(ctx, []firestore.Update{
		{Path: "holidays", Value: firestore.ArrayUnion(repo.toRecord(season, h))},
	})
	if err != nil {
		if isNotFound(err) {
			return timeline.ErrNotFound
		}
		return errors.Wrap(err, "appending holiday")
	}
	return nil
}

func (repo *TimelineRepository) SaveHolidays(ctx context.Context, season core.Season, holidays []timeline.Holiday) error {
	recs := make([]holidayRecord, 0, len(holidays))
	for _, h := range holidays {
		recs = append(recs, repo.toRecord(season, h))
	}
	_, err := repo.doc(season).Update(ctx, []firestore.Update{
		{Path: "holidays", Value: recs},
	})
	if err != nil {
		if isNotFound(err) {
			return timeline.ErrNotFound
		}
		return errors.Wrap(err, "saving holidays")
	}
	return nil
}
