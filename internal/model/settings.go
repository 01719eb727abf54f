package model

// Settings are the operator-facing application preferences, stored as a small
// JSON object independent of truck data.
type Settings struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	AutoSave      bool   `json:"autoSave"`
	Notifications bool   `json:"notifications"`
}

// DefaultSettings returns the settings applied on first run or after a reset.
func DefaultSettings() Settings {
	return Settings{
		Theme:         "light",
		Language:      "id",
		AutoSave:      true,
		Notifications: true,
	}
}
