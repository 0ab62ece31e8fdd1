package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout describes a clinic floor: the seats that exist at boot and the
// default display preferences. It is read from COUNTER_LAYOUT_FILE when set.
//
//	seats: ["Room 1", "Room 2", "Triage"]
//	display:
//	  show_estimated_wait_time: true
//	  show_personal_status: false
type Layout struct {
	Seats   []string      `yaml:"seats"`
	Display LayoutDisplay `yaml:"display"`
}

type LayoutDisplay struct {
	ShowEstimatedWaitTime *bool `yaml:"show_estimated_wait_time"`
	ShowPersonalStatus    *bool `yaml:"show_personal_status"`
}

func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}

	seats := l.Seats[:0]
	for _, s := range l.Seats {
		if s = strings.TrimSpace(s); s != "" {
			seats = append(seats, s)
		}
	}
	l.Seats = seats

	return &l, nil
}

// apply merges the layout over the environment derived counter settings.
func (l *Layout) apply(c *CounterConfig) {
	if len(l.Seats) > 0 {
		c.Seats = l.Seats
	}
	if l.Display.ShowEstimatedWaitTime != nil {
		c.ShowEstimatedWaitTime = *l.Display.ShowEstimatedWaitTime
	}
	if l.Display.ShowPersonalStatus != nil {
		c.ShowPersonalStatus = *l.Display.ShowPersonalStatus
	}
}
