package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/festify/console/core"
	"github.com/festify/console/core/lesson"
)

type LessonRepository struct {
	db *lessonTable
}

var _ lesson.Repository = (*LessonRepository)(nil)

func NewLessonRepository(db *DB) *LessonRepository {
	return &LessonRepository{db: db.lesson}
}

func (repo *LessonRepository) QueryLessons(_ context.Context, season core.Season) ([]lesson.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := make([]*lessonRow, 0, len(repo.db.t[season]))
	for _, row := range repo.db.t[season] {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	lessons := make([]lesson.Lesson, 0, len(rows))
	for _, row := range rows {
		lessons = append(lessons, copyLesson(row.lesson))
	}
	return lessons, nil
}

func (repo *LessonRepository) GetLesson(_ context.Context, season core.Season, id string) (lesson.Lesson, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if row, ok := repo.db.t[season][id]; ok {
		return copyLesson(row.lesson), nil
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (repo *LessonRepository) CountLessons(_ context.Context, season core.Season) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return len(repo.db.t[season]), nil
}

func (repo *LessonRepository) CreateLesson(_ context.Context, season core.Season, l lesson.Lesson) (lesson.Lesson, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.db.t[season] == nil {
		repo.db.t[season] = make(map[string]*lessonRow)
	}
	repo.db.seq++
	l.ID = uuid.NewString()
	l.Season = season
	repo.db.t[season][l.ID] = &lessonRow{seq: repo.db.seq, lesson: copyLesson(l)}
	return l, nil
}

// update applies fn to the stored lesson under the write lock.
func (repo *LessonRepository) update(season core.Season, id string, fn func(l *lesson.Lesson)) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	row, ok := repo.db.t[season][id]
	if !ok {
		return lesson.ErrNotFound
	}
	fn(&row.lesson)
	return nil
}

func (repo *LessonRepository) UpdateGeneralInfo(_ context.Context, season core.Season, id string, gi lesson.GeneralInfo) error {
	return repo.update(season, id, func(l *lesson.Lesson) {
		l.HolidayName = gi.HolidayName
		l.XPReward = gi.XPReward
		l.LastForSeason = gi.LastForSeason
	})
}

func (repo *LessonRepository) UpdateContent(_ context.Context, season core.Season, id string, c lesson.Content) error {
	return repo.update(season, id, func(l *lesson.Lesson) {
		l.Content = copyLesson(lesson.Lesson{Content: c}).Content
	})
}

func (repo *LessonRepository) UpdateQuestions(_ context.Context, season core.Season, id string, questions []lesson.Question) error {
	return repo.update(season, id, func(l *lesson.Lesson) {
		l.Questions = copyLesson(lesson.Lesson{Questions: questions}).Questions
	})
}

func (repo *LessonRepository) SetReward(_ context.Context, season core.Season, id, rewardID string) error {
	return repo.update(season, id, func(l *lesson.Lesson) {
		l.RewardID = rewardID
	})
}

func (repo *LessonRepository) UnlinkReward(_ context.Context, rewardID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, rows := range repo.db.t {
		for _, row := range rows {
			if row.lesson.RewardID == rewardID {
				row.lesson.RewardID = ""
			}
		}
	}
	return nil
}

func (repo *LessonRepository) DeleteLesson(_ context.Context, season core.Season, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[season][id]; !ok {
		return lesson.ErrNotFound
	}
	delete(repo.db.t[season], id)
	return nil
}
