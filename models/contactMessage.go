package models

import "time"

// SourcePage is the fixed origin recorded on every submission.
const SourcePage = "contact.html"

// ContactMessage is one persisted contact-form submission. Rows are
// write-once: no update or delete path exists in the service.
type ContactMessage struct {
	Id          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	Name        string    `json:"name" gorm:"not null"`
	Email       string    `json:"email" gorm:"not null"`
	Association *string   `json:"association"`
	Role        *string   `json:"role"`
	Message     string    `json:"message" gorm:"not null"`
	SourcePage  string    `json:"source_page" gorm:"not null"`
	IPAddress   *string   `json:"ip_address"`
	UserAgent   *string   `json:"user_agent"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
