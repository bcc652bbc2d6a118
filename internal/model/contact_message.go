package model

import "time"

type ContactMessage struct {
	ID          int       `db:"id" json:"id"`
	AdID        int       `db:"ad_id" json:"ad_id"`
	SenderName  string    `db:"sender_name" json:"sender_name"`
	SenderEmail string    `db:"sender_email" json:"sender_email"`
	SenderPhone string    `db:"sender_phone" json:"sender_phone,omitempty"`
	Message     string    `db:"message" json:"message"`
	Platform    string    `db:"platform" json:"platform"` // contact channel: whatsapp, email, phone, ...
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
