package user

import "github.com/festify/console/core"

type (
	// LessonPointer locates a lesson by its position in a season's timeline.
	LessonPointer struct {
		Season core.Season `json:"season"`
		Index  int         `json:"index"`
	}

	// Progress is the game state of a mobile user.
	Progress struct {
		XP               int                   `json:"xp"`
		CurrentLesson    LessonPointer         `json:"current_lesson"`
		UnlockedSeasons  []core.Season         `json:"unlocked_seasons"`
		UnlockedLessons  map[core.Season][]int `json:"unlocked_lessons"`
		CompletedLessons map[core.Season][]int `json:"completed_lesson"`
		CollectedRewards []string              `json:"collected_rewards"`
		LastRewardClaim  int64                 `json:"last_reward_claim"`
	}

	User struct {
		ID                string `json:"id"`
		Username          string `json:"username"`
		Avatar            string `json:"avatar,omitempty"`
		NotificationToken string `json:"-"`
		Progress
	}

	// Summary is a User as listed in the console, with its current lesson named.
	Summary struct {
		ID            string `json:"id"`
		Username      string `json:"username"`
		XP            int    `json:"xp"`
		Avatar        string `json:"avatar,omitempty"`
		CurrentLesson string `json:"current_lesson"`
	}
)

// FreshProgress is the progress of an account that has not played yet.
func FreshProgress() Progress {
	unlocked := make(map[core.Season][]int, len(core.Seasons))
	completed := make(map[core.Season][]int, len(core.Seasons))
	for _, s := range core.Seasons {
		unlocked[s] = []int{0}
		completed[s] = []int{}
	}
	return Progress{
		XP:               0,
		CurrentLesson:    LessonPointer{Season: core.Spring, Index: 0},
		UnlockedSeasons:  []core.Season{core.Spring},
		UnlockedLessons:  unlocked,
		CompletedLessons: completed,
		CollectedRewards: []string{},
		LastRewardClaim:  0,
	}
}
