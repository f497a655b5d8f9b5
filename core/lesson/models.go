package lesson

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
	"github.com/festify/console/core/reward"
)

var (
	answerOutOfRangeTag  = "answer_in_choices"
	answerOutOfRangeText = "{0} must be the index of one of the choices"
)

type (
	Question struct {
		Title   string   `json:"title" validate:"required,max=500"`
		Answer  int      `json:"answer" validate:"min=0"`
		Choices []string `json:"choices" validate:"min=2,max=10,dive,required,max=200"`
	}

	Lesson struct {
		ID            string      `json:"id"`
		Season        core.Season `json:"season"`
		HolidayName   string      `json:"holiday_name"`
		XPReward      int         `json:"xp_reward"`
		LastForSeason bool        `json:"last_for_season"`
		Content       Content     `json:"content"`
		Questions     []Question  `json:"questions"`
		RewardID      string      `json:"reward_id,omitempty"`
	}

	// Detail is a Lesson with its reward resolved.
	Detail struct {
		Lesson
		Reward *reward.Reward `json:"reward"`
	}

	Summary struct {
		ID            string `json:"id"`
		HolidayName   string `json:"holiday_name"`
		XPReward      int    `json:"xp_reward"`
		PageCount     int    `json:"page_count"`
		QuestionCount int    `json:"question_count"`
		HasReward     bool   `json:"has_reward"`
	}

	// NewLesson is the draft of a lesson; its holiday is created along with it.
	NewLesson struct {
		CelebratedOn  string `json:"celebrated_on" validate:"required,max=32"`
		Thumbnail     string `json:"thumbnail" validate:"required"`
		HolidayName   string `json:"holiday_name" validate:"required,max=100"`
		XPReward      int    `json:"xp_reward" validate:"min=0"`
		LastForSeason bool   `json:"last_for_season"`
	}

	GeneralInfo struct {
		HolidayName   string `json:"holiday_name" validate:"required,max=100"`
		XPReward      int    `json:"xp_reward" validate:"min=0"`
		LastForSeason bool   `json:"last_for_season"`
	}

	questionList struct {
		Questions []Question `json:"questions" validate:"dive"`
	}
)

// InitValidators registers the lesson validations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(questionStructValidation, Question{})
	core.RegisterCustomTranslation(validate, translator, answerOutOfRangeTag, answerOutOfRangeText)
}

func questionStructValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if q.Answer >= len(q.Choices) {
		sl.ReportError(q.Answer, "answer", "Answer", answerOutOfRangeTag, "")
	}
}

func (l Lesson) Summary() Summary {
	return Summary{
		ID:            l.ID,
		HolidayName:   l.HolidayName,
		XPReward:      l.XPReward,
		PageCount:     len(l.Content),
		QuestionCount: len(l.Questions),
		HasReward:     l.RewardID != "",
	}
}

func (nl *NewLesson) Clean() {
	nl.CelebratedOn = core.CleanString(nl.CelebratedOn)
	nl.Thumbnail = core.CleanString(nl.Thumbnail)
	nl.HolidayName = core.CleanString(nl.HolidayName)
}

func (nl NewLesson) Validate(validate *validator.Validate) error {
	return validate.Struct(nl)
}

func (gi *GeneralInfo) Clean() {
	gi.HolidayName = core.CleanString(gi.HolidayName)
}

func (gi GeneralInfo) Validate(validate *validator.Validate) error {
	return validate.Struct(gi)
}

func validateQuestions(validate *validator.Validate, questions []Question) error {
	return validate.Struct(questionList{Questions: questions})
}
