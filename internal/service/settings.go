package service

import (
	"strconv"
	"strings"

	"diary-service/internal/availability"
	"diary-service/internal/models"
)

// Settings is the typed view over an owner's key-value settings rows, parsed
// once per request with explicit defaults. Unknown keys are ignored and bad
// values fall back to the default rather than failing the request.
type Settings struct {
	WorkStart    int // minutes from midnight
	WorkEnd      int
	PrepMins     int
	BufferMins   int
	StepMins     int
	OverhangMins int
	LeadMins     int
	WorkPriority bool
}

func DefaultSettings() Settings {
	return Settings{
		WorkStart: 9 * 60,
		WorkEnd:   18 * 60,
		StepMins:  availability.DefaultStepMins,
		LeadMins:  availability.DefaultLeadMins,
	}
}

func ParseSettings(rows []models.SettingRow) Settings {
	s := DefaultSettings()
	for _, r := range rows {
		switch r.Key {
		case "work_hours_start":
			if v, err := availability.ParseHHMM(r.Value); err == nil {
				s.WorkStart = v
			}
		case "work_hours_end":
			if v, err := availability.ParseHHMM(r.Value); err == nil {
				s.WorkEnd = v
			}
		case "prep_time":
			s.PrepMins = intOr(r.Value, s.PrepMins)
		case "booking_buffer_minutes":
			s.BufferMins = intOr(r.Value, s.BufferMins)
		case "step_minutes":
			s.StepMins = intOr(r.Value, s.StepMins)
		case "overhang_minutes":
			s.OverhangMins = intOr(r.Value, s.OverhangMins)
		case "lead_minutes":
			s.LeadMins = intOr(r.Value, s.LeadMins)
		case "work_priority":
			s.WorkPriority = boolOr(r.Value, s.WorkPriority)
		}
	}
	return s
}

func (s Settings) Policy() availability.Policy {
	return availability.Policy{
		WorkStart:    s.WorkStart,
		WorkEnd:      s.WorkEnd,
		PrepMins:     s.PrepMins,
		BufferMins:   s.BufferMins,
		StepMins:     s.StepMins,
		OverhangMins: s.OverhangMins,
		LeadMins:     s.LeadMins,
		WorkPriority: s.WorkPriority,
	}
}

// Public returns the subset exposed on the public booking surface.
func (s Settings) Public() map[string]any {
	return map[string]any{
		"work_hours_start": availability.FormatHHMM(s.WorkStart),
		"work_hours_end":   availability.FormatHHMM(s.WorkEnd),
		"step_minutes":     s.StepMins,
	}
}

func intOr(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func boolOr(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}
