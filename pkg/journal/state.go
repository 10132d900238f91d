package journal

import (
	"tableflip.dev/sidekick/pkg/entry"
)

// CurrentVersion is the schema version written with every state.
const CurrentVersion = 1

// State is everything the journal knows. It is the unit of persistence:
// stores read and write it whole.
//
// Collections are kept newest-first: new records are prepended.
type State struct {
	Version                 int                         `json:"version"`
	Intakes                 []entry.Intake              `json:"intakes"`
	Checkins                []entry.Checkin             `json:"checkins"`
	Meals                   []entry.Meal                `json:"meals"`
	Notes                   []entry.Note                `json:"notes"`
	DayContexts             map[string]entry.DayContext `json:"dayContexts"`
	NotificationSettings    entry.NotificationSettings  `json:"notificationSettings"`
	MetabolismOffsetMinutes int                         `json:"metabolismOffsetMinutes"`
	LastDoseMg              entry.Dose                  `json:"lastDoseMg"`
	LastWithFood            bool                        `json:"lastWithFood"`
}

// NewState returns an empty journal with default settings.
func NewState() *State {
	return &State{
		Version:              CurrentVersion,
		Intakes:              []entry.Intake{},
		Checkins:             []entry.Checkin{},
		Meals:                []entry.Meal{},
		Notes:                []entry.Note{},
		DayContexts:          map[string]entry.DayContext{},
		NotificationSettings: entry.DefaultNotificationSettings(),
		LastDoseMg:           entry.DoseLow,
		LastWithFood:         true,
	}
}

// Normalize fills in anything a hand-edited or older state may lack.
func (s *State) Normalize() {
	if s.Version == 0 {
		s.Version = CurrentVersion
	}
	if s.Intakes == nil {
		s.Intakes = []entry.Intake{}
	}
	if s.Checkins == nil {
		s.Checkins = []entry.Checkin{}
	}
	if s.Meals == nil {
		s.Meals = []entry.Meal{}
	}
	if s.Notes == nil {
		s.Notes = []entry.Note{}
	}
	if s.DayContexts == nil {
		s.DayContexts = map[string]entry.DayContext{}
	}
	if !s.LastDoseMg.Valid() {
		s.LastDoseMg = entry.DoseLow
	}
	s.MetabolismOffsetMinutes = ClampOffset(s.MetabolismOffsetMinutes)
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Intakes = make([]entry.Intake, len(s.Intakes))
	for i, in := range s.Intakes {
		in.NotificationIDs = append([]string(nil), in.NotificationIDs...)
		out.Intakes[i] = in
	}
	out.Checkins = append([]entry.Checkin{}, s.Checkins...)
	out.Meals = append([]entry.Meal{}, s.Meals...)
	out.Notes = append([]entry.Note{}, s.Notes...)
	out.DayContexts = make(map[string]entry.DayContext, len(s.DayContexts))
	for k, v := range s.DayContexts {
		out.DayContexts[k] = v
	}
	return out
}

func (s *State) intakeIndex(id string) int {
	for i := range s.Intakes {
		if s.Intakes[i].ID == id {
			return i
		}
	}
	return -1
}
