package timeline

import (
	"github.com/go-playground/validator/v10"

	"github.com/festify/console/core"
)

type (
	// Holiday is one entry of a season's timeline. LessonID points to the lesson of the same season.
	Holiday struct {
		CelebratedOn string `json:"celebrated_on"`
		Name         string `json:"name"`
		Thumbnail    string `json:"thumbnail"`
		LessonID     string `json:"lesson_id,omitempty"`
	}

	Timeline struct {
		Season   core.Season `json:"season"`
		Holidays []Holiday   `json:"holidays"`
	}

	// UpdateHoliday carries the fields of a Holiday that may be edited directly; empty means unchanged.
	UpdateHoliday struct {
		CelebratedOn string `json:"celebrated_on" validate:"omitempty,max=32"`
		Thumbnail    string `json:"thumbnail"`
	}
)

func (uh *UpdateHoliday) Clean() {
	uh.CelebratedOn = core.CleanString(uh.CelebratedOn)
	uh.Thumbnail = core.CleanString(uh.Thumbnail)
}

func (uh UpdateHoliday) Validate(validate *validator.Validate) error {
	return validate.Struct(uh)
}

func (uh UpdateHoliday) IsEmpty() bool {
	return uh.CelebratedOn == "" && uh.Thumbnail == ""
}

// IndexOfLesson returns the index of the holiday pointing to lessonID, or -1.
func IndexOfLesson(holidays []Holiday, lessonID string) int {
	for i, h := range holidays {
		if h.LessonID == lessonID {
			return i
		}
	}
	return -1
}

// LessonName returns the name of the holiday at index, or "" if there is none.
func (t Timeline) LessonName(index int) string {
	if index < 0 || index >= len(t.Holidays) {
		return ""
	}
	return t.Holidays[index].Name
}
