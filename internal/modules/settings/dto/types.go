package dto

import "time"

// SettingsOutput carries the resolved Location of Timezone alongside it.
type SettingsOutput struct {
	Timezone    string
	TimeFormat  string
	TargetHours float64
	Location    *time.Location
}

type UpdateInput struct {
	Timezone    *string
	TimeFormat  *string
	TargetHours *float64
}

type ProgressOutput struct {
	TotalSeconds int64
	TargetHours  float64
	Percent      int
}
