package service

import (
	"context"
	"fmt"

	"github.com/unclebandit/adboost-backend/internal/model"
	"github.com/unclebandit/adboost-backend/internal/repository"
	"github.com/unclebandit/adboost-backend/internal/validate"
)

type AnnouncementService struct {
	AnnouncementRepo repository.AnnouncementRepositoryInterface
}

type CreateAnnouncementInput struct {
	AuthorID    int    `json:"author_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	Priority    int    `json:"priority" validate:"gte=0"`
	IsPublished *bool  `json:"is_published"`
}

// Create stores an announcement; it is published unless told otherwise.
func (s *AnnouncementService) Create(ctx context.Context, in CreateAnnouncementInput) (*model.Announcement, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	a := &model.Announcement{
		AuthorID:    in.AuthorID,
		Title:       in.Title,
		Content:     in.Content,
		Priority:    in.Priority,
		IsPublished: in.IsPublished == nil || *in.IsPublished,
	}
	if err := s.AnnouncementRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

func (s *AnnouncementService) ListPublished(ctx context.Context) ([]model.Announcement, error) {
	return s.AnnouncementRepo.ListPublished(ctx)
}

type AdminService struct {
	AdminRepo repository.AdminRepositoryInterface
}

func (s *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	return s.AdminRepo.Stats(ctx)
}
