package inmemdb

import (
	"sync"

	"github.com/festify/console/core"
	"github.com/festify/console/core/admin"
	"github.com/festify/console/core/lesson"
	"github.com/festify/console/core/reward"
	"github.com/festify/console/core/timeline"
	"github.com/festify/console/core/user"
)

type (
	// DB is a process-local document store. It backs the local mode and the tests.
	DB struct {
		timeline *timelineTable
		lesson   *lessonTable
		reward   *rewardTable
		user     *userTable
		admin    *adminTable
	}

	timelineTable struct {
		t     map[core.Season][]timeline.Holiday
		mutex sync.RWMutex
	}

	lessonRow struct {
		seq    int
		lesson lesson.Lesson
	}

	lessonTable struct {
		t     map[core.Season]map[string]*lessonRow
		seq   int
		mutex sync.RWMutex
	}

	rewardTable struct {
		t     map[string]*reward.Reward
		mutex sync.RWMutex
	}

	userTable struct {
		t     map[string]*user.User
		mutex sync.RWMutex
	}

	adminTable struct {
		t     map[string]*admin.Admin
		mutex sync.RWMutex
	}
)

func Open() *DB {
	lessons := make(map[core.Season]map[string]*lessonRow, len(core.Seasons))
	for _, s := range core.Seasons {
		lessons[s] = make(map[string]*lessonRow)
	}
	return &DB{
		timeline: &timelineTable{t: make(map[core.Season][]timeline.Holiday)},
		lesson:   &lessonTable{t: lessons},
		reward:   &rewardTable{t: make(map[string]*reward.Reward)},
		user:     &userTable{t: make(map[string]*user.User)},
		admin:    &adminTable{t: make(map[string]*admin.Admin)},
	}
}

func copyHolidays(holidays []timeline.Holiday) []timeline.Holiday {
	cp := make([]timeline.Holiday, len(holidays))
	copy(cp, holidays)
	return cp
}

func copyLesson(l lesson.Lesson) lesson.Lesson {
	content := make(lesson.Content, len(l.Content))
	for k, page := range l.Content {
		cp := make(lesson.Page, len(page))
		copy(cp, page)
		content[k] = cp
	}
	l.Content = content

	questions := make([]lesson.Question, len(l.Questions))
	for i, q := range l.Questions {
		q.Choices = append([]string(nil), q.Choices...)
		questions[i] = q
	}
	l.Questions = questions
	return l
}

func copyUser(u user.User) user.User {
	u.UnlockedSeasons = append([]core.Season{}, u.UnlockedSeasons...)
	u.CollectedRewards = append([]string{}, u.CollectedRewards...)
	u.UnlockedLessons = copySeasonSets(u.UnlockedLessons)
	u.CompletedLessons = copySeasonSets(u.CompletedLessons)
	return u
}

func copySeasonSets(m map[core.Season][]int) map[core.Season][]int {
	if m == nil {
		return nil
	}
	cp := make(map[core.Season][]int, len(m))
	for k, v := range m {
		cp[k] = append([]int{}, v...)
	}
	return cp
}
