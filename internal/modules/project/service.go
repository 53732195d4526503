package project

import (
	"context"
	"errors"
	"time"

	"github.com/nilehomes/landing/internal/models"
	"github.com/nilehomes/landing/internal/pkg/apperr"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func preloadVideos(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC").Order("id ASC")
}

// List returns every project, newest first, with videos in display order.
func (s *Service) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Preload("Videos", preloadVideos).
		Order("created_at DESC").Order("id DESC").
		Find(&projects).Error
	return projects, err
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return getBySlug(s.db.WithContext(ctx), slug)
}

func getBySlug(db *gorm.DB, slug string) (*models.Project, error) {
	var p models.Project
	err := db.Preload("Videos", preloadVideos).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Project not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create stores a project and its videos in one transaction.
func (s *Service) Create(ctx context.Context, dto ProjectDTO) (*models.Project, error) {
	dto.canonicalize()
	if err := dto.requireCreateFields(); err != nil {
		return nil, err
	}

	p := models.Project{
		Slug:       *dto.Slug,
		Gallery:    models.Gallery{},
		Highlights: datatypes.JSONSlice[string]{},
		FAQs:       datatypes.JSONSlice[models.FAQ]{},
	}
	dto.apply(&p)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Project{}).Where("slug = ?", p.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflictf("Slug already exists")
		}
		p.Videos = toVideos(0, dto.Videos)
		if err := tx.Create(&p).Error; err != nil {
			if apperr.IsDuplicateKey(err) {
				return apperr.Conflictf("Slug already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies the present fields of dto to the project identified by slug.
// A non-nil Videos list replaces the project's videos wholesale.
func (s *Service) Update(ctx context.Context, slug string, dto ProjectDTO) (*models.Project, error) {
	dto.canonicalize()
	if dto.Slug != nil && *dto.Slug != slug {
		return nil, apperr.Invalid("slug", "cannot be changed")
	}

	updates := dto.changes()
	if len(updates) == 0 && dto.Videos == nil {
		return nil, apperr.ErrNoOpUpdate
	}

	var out *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.Where("slug = ?", slug).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Project not found")
			}
			return err
		}

		if len(updates) == 0 {
			updates["updated_at"] = time.Now()
		}
		if err := tx.Model(&p).Updates(updates).Error; err != nil {
			return err
		}

		if dto.Videos != nil {
			if err := tx.Where("project_id = ?", p.ID).Delete(&models.ProjectVideo{}).Error; err != nil {
				return err
			}
			if videos := toVideos(p.ID, dto.Videos); len(videos) > 0 {
				if err := tx.Create(&videos).Error; err != nil {
					return err
				}
			}
		}

		var err error
		out, err = getBySlug(tx, slug)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the project and its videos. Leads that referenced it keep their data with no project.
func (s *Service) Delete(ctx context.Context, slug string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.Where("slug = ?", slug).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Project not found")
			}
			return err
		}
		if err := tx.Where("project_id = ?", p.ID).Delete(&models.ProjectVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Lead{}).Where("project_id = ?", p.ID).Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}
