package service

import (
	"context"
	"fmt"

	"github.com/unclebandit/adboost-backend/internal/model"
	"github.com/unclebandit/adboost-backend/internal/repository"
	"github.com/unclebandit/adboost-backend/internal/validate"
)

type BusinessService struct {
	BusinessRepo repository.BusinessRepositoryInterface
}

type CreateBusinessInput struct {
	UserID              int    `json:"user_id" validate:"required,gt=0"`
	BusinessName        string `json:"business_name" validate:"required"`
	BusinessDescription string `json:"business_description"`
	Email               string `json:"email" validate:"required,email"`
	PhoneNumber         string `json:"phone_number"`
	WebsiteURL          string `json:"website_url" validate:"omitempty,url"`
	WhatsappLink        string `json:"whatsapp_link" validate:"omitempty,url"`
	FacebookHandle      string `json:"facebook_handle"`
	InstagramHandle     string `json:"instagram_handle"`
	TwitterHandle       string `json:"twitter_handle"`
	LinkedinHandle      string `json:"linkedin_handle"`
	TiktokHandle        string `json:"tiktok_handle"`
}

func (s *BusinessService) Create(ctx context.Context, in CreateBusinessInput) (*model.Business, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	b := &model.Business{
		UserID:              in.UserID,
		BusinessName:        in.BusinessName,
		BusinessDescription: in.BusinessDescription,
		Email:               in.Email,
		PhoneNumber:         in.PhoneNumber,
		WebsiteURL:          in.WebsiteURL,
		WhatsappLink:        in.WhatsappLink,
		FacebookHandle:      in.FacebookHandle,
		InstagramHandle:     in.InstagramHandle,
		TwitterHandle:       in.TwitterHandle,
		LinkedinHandle:      in.LinkedinHandle,
		TiktokHandle:        in.TiktokHandle,
	}
	if err := s.BusinessRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	return b, nil
}

func (s *BusinessService) ListByUser(ctx context.Context, userID int) ([]model.Business, error) {
	return s.BusinessRepo.ListByUser(ctx, userID)
}
