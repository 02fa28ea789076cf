package models

import "time"

// Enquiry is a contact-form submission. Honeypot hits are kept with IsSpam.
type Enquiry struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Message   string    `gorm:"column:message;type:text"`
	Page      string    `gorm:"column:page"`
	IP        string    `gorm:"column:ip"`
	IsSpam    bool      `gorm:"column:is_spam;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
