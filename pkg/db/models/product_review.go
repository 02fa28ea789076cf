package models

import "time"

// ProductReview is hidden until moderated.
type ProductReview struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	ProductID  uint      `gorm:"column:product_id;not null;index:product_reviews_product_id_idx"`
	Name       string    `gorm:"column:name;not null"`
	Email      string    `gorm:"column:email"`
	Feedback   string    `gorm:"column:feedback;type:text"`
	Stars      int       `gorm:"column:stars;not null;check:product_reviews_stars_range,stars BETWEEN 1 AND 5"`
	IsApproved bool      `gorm:"column:is_approved;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
