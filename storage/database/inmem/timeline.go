package inmemdb

import (
	"context"

	"github.com/festify/console/core"
	"github.com/festify/console/core/timeline"
)

type TimelineRepository struct {
	db *timelineTable
}

var _ timeline.Repository = (*TimelineRepository)(nil)

func NewTimelineRepository(db *DB) *TimelineRepository {
	return &TimelineRepository{db: db.timeline}
}

func (repo *TimelineRepository) GetTimeline(_ context.Context, season core.Season) (timeline.Timeline, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	holidays, ok := repo.db.t[season]
	if !ok {
		return timeline.Timeline{}, timeline.ErrNotFound
	}
	return timeline.Timeline{Season: season, Holidays: copyHolidays(holidays)}, nil
}

func (repo *TimelineRepository) CreateTimeline(_ context.Context, season core.Season) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[season]; !ok {
		repo.db.t[season] = []timeline.Holiday{}
	}
	return nil
}

func (repo *TimelineRepository) AppendHoliday(_ context.Context, season core.Season, h timeline.Holiday) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	holidays, ok := repo.db.t[season]
	if !ok {
		return timeline.ErrNotFound
	}
	for _, existing := range holidays {
		if existing == h { // array union
			return nil
		}
	}
	repo.db.t[season] = append(holidays, h)
	return nil
}

func (repo *TimelineRepository) SaveHolidays(_ context.Context, season core.Season, holidays []timeline.Holiday) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[season]; !ok {
		return timeline.ErrNotFound
	}
	repo.db.t[season] = copyHolidays(holidays)
	return nil
}
