package model

import "time"

type Business struct {
	ID                  int       `db:"id" json:"id"`
	UserID              int       `db:"user_id" json:"user_id"`
	BusinessName        string    `db:"business_name" json:"business_name"`
	BusinessDescription string    `db:"business_description" json:"business_description"`
	Email               string    `db:"email" json:"email"`
	PhoneNumber         string    `db:"phone_number" json:"phone_number"`
	WebsiteURL          string    `db:"website_url" json:"website_url"`
	WhatsappLink        string    `db:"whatsapp_link" json:"whatsapp_link"`
	FacebookHandle      string    `db:"facebook_handle" json:"facebook_handle"`
	InstagramHandle     string    `db:"instagram_handle" json:"instagram_handle"`
	TwitterHandle       string    `db:"twitter_handle" json:"twitter_handle"`
	LinkedinHandle      string    `db:"linkedin_handle" json:"linkedin_handle"`
	TiktokHandle        string    `db:"tiktok_handle" json:"tiktok_handle"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}
