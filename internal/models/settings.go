package models

// Settings is the display preference blob shared by every screen. It is the
// only state that survives a restart.
type Settings struct {
	ShowEstimatedWaitTime bool `json:"showEstimatedWaitTime"`
	ShowPersonalStatus    bool `json:"showPersonalStatus"`
}

func DefaultSettings() Settings {
	return Settings{
		ShowEstimatedWaitTime: true,
		ShowPersonalStatus:    true,
	}
}
