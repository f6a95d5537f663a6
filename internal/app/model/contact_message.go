package model

import (
	"time"

	"gorm.io/gorm"
)

type ContactStatus string

const (
	ContactPending    ContactStatus = "pending"
	ContactInProgress ContactStatus = "in_progress"
	ContactResolved   ContactStatus = "resolved"
)

// ContactMessage is a storefront contact-form submission. It is persisted
// before the email relay runs, so a mail outage never loses the message.
type ContactMessage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null" json:"email"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`
	Subject   string         `gorm:"type:varchar(200)" json:"subject"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Status    ContactStatus  `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
