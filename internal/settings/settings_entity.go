package settings

import "time"

const BrandingKey = "branding"

type AppSetting struct {
	Key   string `gorm:"type:varchar(100);primaryKey"`
	Value []byte `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AppSetting) TableName() string {
	return "app_settings"
}
