package models

import "time"

// SettingsDocument is the persisted row backing the settings store: one named
// JSON document per logical record (single-row table in practice, Name="settings").
type SettingsDocument struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      string `gorm:"not null"`
	UpdatedAt time.Time
}
