package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/unclebandit/adboost-backend/internal/model"
	"github.com/unclebandit/adboost-backend/internal/repository"
	"github.com/unclebandit/adboost-backend/internal/validate"
)

type ContactService struct {
	AdRepo       repository.AdRepositoryInterface
	BusinessRepo repository.BusinessRepositoryInterface
	MessageRepo  repository.ContactMessageRepositoryInterface
}

type ContactInput struct {
	SenderName  string `json:"sender_name" validate:"required"`
	SenderEmail string `json:"sender_email" validate:"required,email"`
	SenderPhone string `json:"sender_phone"`
	Message     string `json:"message" validate:"required"`
	// Platform is the channel the visitor wants to continue on.
	Platform string `json:"platform" validate:"required"`
}

type ContactResult struct {
	MessageID   int    `json:"message_id"`
	RedirectURL string `json:"redirect_url"`
}

// Send stores a visitor's message for the ad's business and returns where
// the visitor should be sent to continue the conversation.
func (s *ContactService) Send(ctx context.Context, adID int, in ContactInput) (*ContactResult, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	ad, err := s.AdRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	business, err := s.BusinessRepo.GetByID(ctx, ad.BusinessID)
	if err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		AdID:        adID,
		SenderName:  in.SenderName,
		SenderEmail: in.SenderEmail,
		SenderPhone: in.SenderPhone,
		Message:     in.Message,
		Platform:    strings.ToLower(in.Platform),
	}
	if err := s.MessageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store contact message for ad %d: %w", adID, err)
	}

	redirect := ContactRedirectURL(business, ad.Headline, in.SenderName, in.Message, msg.Platform)
	zap.L().Info("contact message stored",
		zap.Int("ad_id", adID),
		zap.String("platform", msg.Platform),
		zap.String("redirect_url", redirect),
	)
	return &ContactResult{MessageID: msg.ID, RedirectURL: redirect}, nil
}

var nonDigits = regexp.MustCompile(`\D`)

// ContactRedirectURL picks the business contact point for channel. An empty
// string means the business has no handle on that channel.
func ContactRedirectURL(b *model.Business, headline, senderName, message, channel string) string {
	switch strings.ToLower(channel) {
	case "whatsapp":
		if b.WhatsappLink != "" {
			return b.WhatsappLink
		}
		if b.PhoneNumber != "" {
			text := "Hi, I'm interested in your ad: " + headline
			return "https://wa.me/" + nonDigits.ReplaceAllString(b.PhoneNumber, "") + "?text=" + escape(text)
		}
		return ""
	case "email":
		subject := "Inquiry about " + headline
		body := fmt.Sprintf("Hi,\n\nI'm interested in your ad: %s\n\nMessage: %s\n\nBest regards,\n%s",
			headline, message, senderName)
		return "mailto:" + b.Email + "?subject=" + escape(subject) + "&body=" + escape(body)
	case "phone":
		return "tel:" + b.PhoneNumber
	case "facebook":
		return profileURL("https://facebook.com/", b.FacebookHandle)
	case "instagram":
		return profileURL("https://instagram.com/", b.InstagramHandle)
	case "twitter", "x":
		return profileURL("https://twitter.com/", b.TwitterHandle)
	case "linkedin":
		return profileURL("https://linkedin.com/in/", b.LinkedinHandle)
	case "tiktok":
		return profileURL("https://tiktok.com/@", b.TiktokHandle)
	default:
		return "mailto:" + b.Email
	}
}

func profileURL(prefix, handle string) string {
	if handle == "" {
		return ""
	}
	return prefix + strings.Replace(handle, "@", "", 1)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
