package entry

import (
	"fmt"
	"strings"
)

// NotificationSettings toggles the three intake reminders.
type NotificationSettings struct {
	MealReminder    bool `json:"mealReminder"`
	SnackReminder   bool `json:"snackReminder"`
	ReboundReminder bool `json:"reboundReminder"`
}

// DefaultNotificationSettings enables every reminder.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		MealReminder:    true,
		SnackReminder:   true,
		ReboundReminder: true,
	}
}

// SettingKey names one of the NotificationSettings toggles.
type SettingKey string

const (
	MealReminderKey    SettingKey = "meal"
	SnackReminderKey   SettingKey = "snack"
	ReboundReminderKey SettingKey = "rebound"
)

// SettingKeys lists the toggles in display order.
var SettingKeys = []SettingKey{MealReminderKey, SnackReminderKey, ReboundReminderKey}

// ParseSettingKey resolves a key such as "meal" or "mealReminder".
func ParseSettingKey(s string) (SettingKey, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.TrimSuffix(k, "reminder")
	k = strings.TrimSuffix(k, "-")
	for _, known := range SettingKeys {
		if SettingKey(k) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("entry: unknown reminder %q", s)
}

// Label is the human readable toggle name.
func (k SettingKey) Label() string {
	switch k {
	case MealReminderKey:
		return "Meal reminder"
	case SnackReminderKey:
		return "Snack reminder"
	case ReboundReminderKey:
		return "Rebound reminder"
	default:
		return string(k)
	}
}

// Get returns the value of the toggle named by k.
func (s NotificationSettings) Get(k SettingKey) (bool, bool) {
	switch k {
	case MealReminderKey:
		return s.MealReminder, true
	case SnackReminderKey:
		return s.SnackReminder, true
	case ReboundReminderKey:
		return s.ReboundReminder, true
	}
	return false, false
}

// With returns a copy of s with the toggle k set to v. Unknown keys leave s
// unchanged and report false.
func (s NotificationSettings) With(k SettingKey, v bool) (NotificationSettings, bool) {
	switch k {
	case MealReminderKey:
		s.MealReminder = v
	case SnackReminderKey:
		s.SnackReminder = v
	case ReboundReminderKey:
		s.ReboundReminder = v
	default:
		return s, false
	}
	return s, true
}
