package repository

import (
	"errors"

	"github.com/prhdev222/CHEMO-FINAL/internal/models"

	"gorm.io/gorm"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepo(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// GetAllLinks retrieves all document links ordered by title
func (r *LinkRepository) GetAllLinks() ([]models.Link, error) {
	var links []models.Link
	err := r.db.Order("title ASC").Find(&links).Error
	return links, err
}

// GetLinkByID retrieves a link by primary key
func (r *LinkRepository) GetLinkByID(id uint) (*models.Link, error) {
	var link models.Link
	err := r.db.First(&link, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// CreateLink creates a new document link
func (r *LinkRepository) CreateLink(link *models.Link) error {
	return r.db.Create(link).Error
}

// SaveLink persists all fields of an existing link
func (r *LinkRepository) SaveLink(link *models.Link) error {
	return r.db.Save(link).Error
}

// DeleteLink removes a document link
func (r *LinkRepository) DeleteLink(id uint) error {
	return r.db.Delete(&models.Link{}, id).Error
}
