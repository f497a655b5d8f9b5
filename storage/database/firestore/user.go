package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/festify/console/core"
	"github.com/festify/console/core/user"
)

type (
	lessonPointerRecord struct {
		Season string `firestore:"season" validate:"omitempty,season"`
		Index  int    `firestore:"index" validate:"min=0"`
	}

	userRecord struct {
		Username          string              `firestore:"username" validate:"required"`
		XP                int                 `firestore:"xp" validate:"min=0"`
		Avatar            string              `firestore:"avatar,omitempty"`
		NotificationToken string              `firestore:"notification_token,omitempty"`
		CurrentLesson     lessonPointerRecord `firestore:"current_lesson"`
		UnlockedSeasons   []string            `firestore:"unlocked_seasons" validate:"dive,season"`
		UnlockedLessons   map[string][]int    `firestore:"unlocked_lessons"`
		CompletedLesson   map[string][]int    `firestore:"completed_lesson"`
		CollectedRewards  []interface{}       `firestore:"collected_rewards" validate:"-"`
		LastRewardClaim   int64               `firestore:"last_reward_claim"`
	}

	UserRepository struct {
		client   *firestore.Client
		validate *validator.Validate
	}
)

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(client *firestore.Client, validate *validator.Validate) *UserRepository {
	return &UserRepository{client: client, validate: validate}
}

func seasonSets(m map[string][]int) map[core.Season][]int {
	sets := make(map[core.Season][]int, len(m))
	for k, v := range m {
		sets[core.Season(k)] = v
	}
	return sets
}

func seasonSetsRecord(m map[core.Season][]int) map[string][]int {
	rec := make(map[string][]int, len(m))
	for k, v := range m {
		rec[k.String()] = v
	}
	return rec
}

// rewardIDs accepts both reward references and plain ids.
func rewardIDs(vals []interface{}) []string {
	ids := make([]string, 0, len(vals))
	for _, v := range vals {
		switch v := v.(type) {
		case *firestore.DocumentRef:
			ids = append(ids, v.ID)
		case string:
			ids = append(ids, v)
		}
	}
	return ids
}

func (repo *UserRepository) toUser(snap *firestore.DocumentSnapshot) (user.User, error) {
	var rec userRecord
	if err := decode(repo.validate, snap, &rec); err != nil {
		return user.User{}, err
	}
	seasons := make([]core.Season, 0, len(rec.UnlockedSeasons))
	for _, s := range rec.UnlockedSeasons {
		seasons = append(seasons, core.Season(s))
	}
	return user.User{
		ID:                snap.Ref.ID,
		Username:          rec.Username,
		Avatar:            rec.Avatar,
		NotificationToken: rec.NotificationToken,
		Progress: user.Progress{
			XP:               rec.XP,
			CurrentLesson:    user.LessonPointer{Season: core.Season(rec.CurrentLesson.Season), Index: rec.CurrentLesson.Index},
			UnlockedSeasons:  seasons,
			UnlockedLessons:  seasonSets(rec.UnlockedLessons),
			CompletedLessons: seasonSets(rec.CompletedLesson),
			CollectedRewards: rewardIDs(rec.CollectedRewards),
			LastRewardClaim:  rec.LastRewardClaim,
		},
	}, nil
}

func (repo *UserRepository) QueryUsers(ctx context.Context) ([]user.User, error) {
	snaps, err := repo.client.Collection(userCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(snaps))
	for _, snap := range snaps {
		usr, err := repo.toUser(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, usr)
	}
	return users, nil
}

func (repo *UserRepository) GetUser(ctx context.Context, id string) (user.User, error) {
	snap, err := repo.client.Collection(userCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return repo.toUser(snap)
}

func (repo *UserRepository) ResetProgress(ctx context.Context, id string, p user.Progress) error {
	seasons := make([]string, 0, len(p.UnlockedSeasons))
	for _, s := range p.UnlockedSeasons {
		seasons = append(seasons, s.String())
	}
	_, err := repo.client.Collection(userCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "unlocked_seasons", Value: seasons},
		{Path: "unlocked_lessons", Value: seasonSetsRecord(p.UnlockedLessons)},
		{Path: "completed_lesson", Value: seasonSetsRecord(p.CompletedLessons)},
		{Path: "current_lesson", Value: lessonPointerRecord{Season: p.CurrentLesson.Season.String(), Index: p.CurrentLesson.Index}},
		{Path: "collected_rewards", Value: p.CollectedRewards},
		{Path: "last_reward_claim", Value: p.LastRewardClaim},
		{Path: "xp", Value: p.XP},
		{Path: "avatar", Value: firestore.Delete},
	})
	if err != nil {
		if isNotFound(err) {
			return user.ErrNotFound
		}
		return errors.Wrap(err, "resetting user progress")
	}
	return nil
}
