package service

import (
	"errors"
	"fmt"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"
	"github.com/prhdev222/CHEMO-FINAL/internal/repository"
	"github.com/prhdev222/CHEMO-FINAL/pkg/apperror"
)

type LinkService struct {
	linkRepo *repository.LinkRepository
}

func NewLinkService(linkRepo *repository.LinkRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo}
}

// ListLinks returns all ward document links.
func (s *LinkService) ListLinks() ([]models.Link, error) {
	links, err := s.linkRepo.GetAllLinks()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return links, nil
}

// CreateLink adds a document link to the dashboard.
func (s *LinkService) CreateLink(title, url, description string) (*models.Link, error) {
	link := &models.Link{
		Title:       title,
		URL:         url,
		Description: description,
	}
	if err := s.linkRepo.CreateLink(link); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to create link: %w", err))
	}
	return link, nil
}

// UpdateLink replaces the fields of an existing link.
func (s *LinkService) UpdateLink(id uint, title, url, description string) (*models.Link, error) {
	link, err := s.linkRepo.GetLinkByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("link not found")
		}
		return nil, apperror.Internal(err)
	}

	link.Title = title
	link.URL = url
	link.Description = description

	if err := s.linkRepo.SaveLink(link); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to update link: %w", err))
	}
	return link, nil
}

// DeleteLink removes a document link.
func (s *LinkService) DeleteLink(id uint) error {
	if _, err := s.linkRepo.GetLinkByID(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("link not found")
		}
		return apperror.Internal(err)
	}

	if err := s.linkRepo.DeleteLink(id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
