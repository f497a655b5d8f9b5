package core

type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

// Seasons lists every season in calendar order.
var Seasons = []Season{Spring, Summer, Autumn, Winter}

func (s Season) Valid() bool {
	switch s {
	case Spring, Summer, Autumn, Winter:
		return true
	}
	return false
}

func (s Season) String() string { return string(s) }

// ParseSeason cleans s and returns a BAD_REQUEST error if it is not a known season.
func ParseSeason(s string) (Season, error) {
	season := Season(CleanString(s, true /* lower */))
	if !season.Valid() {
		return "", NewBadRequestError("Invalid season")
	}
	return season, nil
}
