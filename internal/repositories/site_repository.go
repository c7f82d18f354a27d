package repositories

import (
	"github.com/rdmitry/openforum/backend/internal/models"
	"gorm.io/gorm"
)

// SiteRepository defines the interface for site data operations
type SiteRepository interface {
	CreateSite(site *models.Site) error
	GetSiteByID(id uint) (*models.Site, error)
	GetSiteByName(name string) (*models.Site, error)
	GetAllSites() ([]models.Site, error)
}

// PostgresSiteRepository implements SiteRepository for PostgreSQL
type PostgresSiteRepository struct {
	db *gorm.DB
}

// NewPostgresSiteRepository creates a new PostgresSiteRepository
func NewPostgresSiteRepository(db *gorm.DB) *PostgresSiteRepository {
	return &PostgresSiteRepository{db: db}
}

func (r *PostgresSiteRepository) CreateSite(site *models.Site) error {
	return r.db.Create(site).Error
}

func (r *PostgresSiteRepository) GetSiteByID(id uint) (*models.Site, error) {
	var site models.Site
	if err := r.db.First(&site, id).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *PostgresSiteRepository) GetSiteByName(name string) (*models.Site, error) {
	var site models.Site
	if err := r.db.Where("name = ?", name).First(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *PostgresSiteRepository) GetAllSites() ([]models.Site, error) {
	var sites []models.Site
	err := r.db.Order("name").Find(&sites).Error
	return sites, err
}
