package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/festify/console/core"
	"github.com/festify/console/core/lesson"
)

type (
	blockRecord struct {
		Type  string `firestore:"type" validate:"oneof=text image"`
		Value string `firestore:"value"`
	}

	questionRecord struct {
		Title   string   `firestore:"title"`
		Answer  int      `firestore:"answer" validate:"min=0"`
		Choices []string `firestore:"choices"`
	}

	lessonRecord struct {
		HolidayName   string                   `firestore:"holiday_name" validate:"required"`
		XPReward      int                      `firestore:"xp_reward" validate:"min=0"`
		LastForSeason bool                     `firestore:"last_for_season"`
		Content       map[string][]blockRecord `firestore:"content" validate:"dive,dive"`
		Questions     []questionRecord         `firestore:"questions" validate:"dive"`
		Reward        *firestore.DocumentRef   `firestore:"reward,omitempty" validate:"-"`
	}

	LessonRepository struct {
		client   *firestore.Client
		validate *validator.Validate
	}
)

var _ lesson.Repository = (*LessonRepository)(nil)

func NewLessonRepository(client *firestore.Client, validate *validator.Validate) *LessonRepository {
	return &LessonRepository{client: client, validate: validate}
}

func lessonsOf(client *firestore.Client, season core.Season) *firestore.CollectionRef {
	return client.Collection(holidayCollection).Doc(season.String()).Collection(lessonCollection)
}

func contentRecord(c lesson.Content) map[string][]blockRecord {
	rec := make(map[string][]blockRecord, len(c))
	for pid, page := range c {
		blocks := make([]blockRecord, 0, len(page))
		for _, b := range page {
			blocks = append(blocks, blockRecord{Type: string(b.Kind()), Value: b.Value()})
		}
		rec[pid] = blocks
	}
	return rec
}

func questionRecords(questions []lesson.Question) []questionRecord {
	recs := make([]questionRecord, 0, len(questions))
	for _, q := range questions {
		recs = append(recs, questionRecord{Title: q.Title, Answer: q.Answer, Choices: q.Choices})
	}
	return recs
}

func (repo *LessonRepository) toLesson(season core.Season, snap *firestore.DocumentSnapshot) (lesson.Lesson, error) {
	var rec lessonRecord
	if err := decode(repo.validate, snap, &rec); err != nil {
		return lesson.Lesson{}, err
	}

	l := lesson.Lesson{
		ID:            snap.Ref.ID,
		Season:        season,
		HolidayName:   rec.HolidayName,
		XPReward:      rec.XPReward,
		LastForSeason: rec.LastForSeason,
		Content:       make(lesson.Content, len(rec.Content)),
		Questions:     make([]lesson.Question, 0, len(rec.Questions)),
	}
	for pid, blocks := range rec.Content {
		page := make(lesson.Page, 0, len(blocks))
		for _, b := range blocks {
			block, err := lesson.NewBlock(lesson.BlockKind(b.Type), b.Value, "")
			if err != nil {
				return lesson.Lesson{}, errors.Wrapf(err, "malformed document %s", snap.Ref.Path)
			}
			page = append(page, block)
		}
		l.Content[pid] = page
	}
	for _, q := range rec.Questions {
		l.Questions = append(l.Questions, lesson.Question{Title: q.Title, Answer: q.Answer, Choices: q.Choices})
	}
	if rec.Reward != nil {
		l.RewardID = rec.Reward.ID
	}
	return l, nil
}

func (repo *LessonRepository) QueryLessons(ctx context.Context, season core.Season) ([]lesson.Lesson, error) {
	snaps, err := lessonsOf(repo.client, season).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}
	lessons := make([]lesson.Lesson, 0, len(snaps))
	for _, snap := range snaps {
		l, err := repo.toLesson(season, snap)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, nil
}

func (repo *LessonRepository) GetLesson(ctx context.Context, season core.Season, id string) (lesson.Lesson, error) {
	snap, err := lessonsOf(repo.client, season).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return lesson.Lesson{}, lesson.ErrNotFound
		}
		return lesson.Lesson{}, errors.Wrap(err, "getting lesson")
	}
	return repo.toLesson(season, snap)
}

func (repo *LessonRepository) CountLessons(ctx context.Context, season core.Season) (int, error) {
	res, err := lessonsOf(repo.client, season).NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "counting lessons")
	}
	v, ok := res["total"].(*firestorepb.Value)
	if !ok {
		return 0, errors.New("counting lessons: unexpected aggregation result")
	}
	return int(v.GetIntegerValue()), nil
}

func (repo *LessonRepository) CreateLesson(ctx context.Context, season core.Season, l lesson.Lesson) (lesson.Lesson, error) {
	ref := lessonsOf(repo.client, season).NewDoc()
	rec := lessonRecord{
		HolidayName:   l.HolidayName,
		XPReward:      l.XPReward,
		LastForSeason: l.LastForSeason,
		Content:       contentRecord(l.Content),
		Questions:     questionRecords(l.Questions),
	}
	if _, err := ref.Create(ctx, rec); err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "creating lesson")
	}
	l.ID = ref.ID
	l.Season = season
	return l, nil
}

func (repo *LessonRepository) update(ctx context.Context, season core.Season, id string, updates []firestore.Update) error {
	if id == "" {
		return lesson.ErrNotFound
	}
	if _, err := lessonsOf(repo.client, season).Doc(id).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return lesson.ErrNotFound
		}
		return errors.Wrap(err, "updating lesson")
	}
	return nil
}

func (repo *LessonRepository) UpdateGeneralInfo(ctx context.Context, season core.Season, id string, gi lesson.GeneralInfo) error {
	return repo.update(ctx, season, id, []firestore.Update{
		{Path: "holiday_name", Value: gi.HolidayName},
		{Path: "xp_reward", Value: gi.XPReward},
		{Path: "last_for_season", Value: gi.LastForSeason},
	})
}

func (repo *LessonRepository) UpdateContent(ctx context.Context, season core.Season, id string, c lesson.Content) error {
	return repo.update(ctx, season, id, []firestore.Update{
		{Path: "content", Value: contentRecord(c)},
	})
}

func (repo *LessonRepository) UpdateQuestions(ctx context.Context, season core.Season, id string, questions []lesson.Question) error {
	return repo.update(ctx, season, id, []firestore.Update{
		{Path: "questions", Value: questionRecords(questions)},
	})
}

func (repo *LessonRepository) SetReward(ctx context.Context, season core.Season, id, rewardID string) error {
	var value interface{} = firestore.Delete
	if rewardID != "" {
		value = repo.client.Collection(rewardCollection).Doc(rewardID)
	}
	return repo.update(ctx, season, id, []firestore.Update{
		{Path: "reward", Value: value},
	})
}

// UnlinkReward clears the pointer of every lesson of any season holding rewardID.
// The collection group query needs the reward field override of firestore.indexes.json.
func (repo *LessonRepository) UnlinkReward(ctx context.Context, rewardID string) error {
	ref := repo.client.Collection(rewardCollection).Doc(rewardID)
	snaps, err := repo.client.CollectionGroup(lessonCollection).Where("reward", "==", ref).Documents(ctx).GetAll()
	if err != nil {
		return errors.Wrap(err, "finding lessons of reward")
	}
	for _, snap := range snaps {
		_, err := snap.Ref.Update(ctx, []firestore.Update{{Path: "reward", Value: firestore.Delete}})
		if err != nil && !isNotFound(err) {
			return errors.Wrap(err, "unlinking reward")
		}
	}
	return nil
}

func (repo *LessonRepository) DeleteLesson(ctx context.Context, season core.Season, id string) error {
	if _, err := lessonsOf(repo.client, season).Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return nil
}
