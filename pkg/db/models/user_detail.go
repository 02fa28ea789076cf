package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// UserDetail is the profile attached to an authenticated user id.
type UserDetail struct {
	ID             uint                                    `gorm:"column:id;primaryKey"`
	UserID         uint                                    `gorm:"column:user_id;not null;uniqueIndex:user_details_user_id_key"`
	FullName       string                                  `gorm:"column:full_name"`
	ProfileImage   *types.Image                            `gorm:"column:profile_image;type:jsonb;serializer:json"`
	PhoneNumbers   datatypes.JSONSlice[string]             `gorm:"column:phone_numbers"`
	SavedAddresses datatypes.JSONSlice[types.SavedAddress] `gorm:"column:saved_addresses"`
	CreatedAt      time.Time                               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                               `gorm:"column:updated_at;autoUpdateTime"`
}
