package lead

import (
	"context"
	"errors"

	"github.com/nilehomes/landing/internal/models"
	"github.com/nilehomes/landing/internal/pkg/apperr"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) joined(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Lead{}).
		Select("leads.*, projects.title AS project_title, projects.slug AS project_slug").
		Joins("LEFT JOIN projects ON projects.id = leads.project_id")
}

// Create stores a public submission. An unknown projectSlug leaves the lead without a project.
func (s *Service) Create(ctx context.Context, dto CreateDTO) (*models.Lead, error) {
	if dto.Honeypot != "" {
		return nil, apperr.ErrRejected
	}

	l := models.Lead{
		Name:                dto.Name,
		Phone:               dto.Phone,
		Email:               dto.Email,
		JobTitle:            dto.JobTitle,
		PreferredContactWay: models.ContactWay(dto.PreferredContactWay),
		UnitType:            dto.UnitType,
		Message:             dto.Message,
		SourceURL:           dto.SourceURL,
		Status:              models.LeadStatusNew,
	}

	db := s.db.WithContext(ctx)
	if dto.ProjectSlug != "" {
		var p models.Project
		err := db.Select("id").Where("slug = ?", dto.ProjectSlug).Take(&p).Error
		switch {
		case err == nil:
			l.ProjectID = &p.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	if err := db.Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns every lead, newest first.
func (s *Service) List(ctx context.Context) ([]LeadWithProject, error) {
	var rows []LeadWithProject
	err := s.joined(ctx).
		Order("leads.created_at DESC").Order("leads.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *Service) Get(ctx context.Context, id uint) (*LeadWithProject, error) {
	var row LeadWithProject
	err := s.joined(ctx).Where("leads.id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Lead not found")
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateStatus sets the triage status. Notes are overwritten only when present, including "".
func (s *Service) UpdateStatus(ctx context.Context, id uint, dto StatusDTO) (*LeadWithProject, error) {
	updates := map[string]interface{}{"status": models.LeadStatus(dto.Status)}
	if dto.Notes != nil {
		updates["notes"] = *dto.Notes
	}
	if err := s.apply(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Update applies the present fields of dto.
func (s *Service) Update(ctx context.Context, id uint, dto UpdateDTO) error {
	updates := dto.changes()
	if len(updates) == 0 {
		return apperr.ErrNoOpUpdate
	}
	return s.apply(ctx, id, updates)
}

func (s *Service) apply(ctx context.Context, id uint, updates map[string]interface{}) error {
	if status, ok := updates["status"].(models.LeadStatus); ok && !status.Valid() {
		return apperr.Invalid("status", "is not a known lead status")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var l models.Lead
		if err := tx.Select("id").Take(&l, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("Lead not found")
			}
			return err
		}
		return tx.Model(&l).Updates(updates).Error
	})
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Lead{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("Lead not found")
	}
	return nil
}
