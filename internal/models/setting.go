package models

import (
	"gorm.io/gorm"
)

// SettingKeyAutoDispatch is the feature flag for round-the-clock automatic
// dispatching.
const SettingKeyAutoDispatch = "auto_dispatch_24_7"

// Setting is a single feature-flag/configuration row. Value holds a JSON blob
// so individual flags can evolve their shape without migrations.
type Setting struct {
	gorm.Model
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:jsonb;not null;default:'{}'"`
}

func (Setting) TableName() string {
	return "settings"
}
