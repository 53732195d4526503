package lead

import (
	"time"

	"github.com/nilehomes/landing/internal/models"
)

type CreateDTO struct {
	Name                string `json:"name"                binding:"required,min=2,max=255"`
	Phone               string `json:"phone"               binding:"required,min=10,max=50"`
	Email               string `json:"email"               binding:"omitempty,email,max=255"`
	JobTitle            string `json:"jobTitle"            binding:"max=255"`
	PreferredContactWay string `json:"preferredContactWay" binding:"required,oneof=whatsapp call"`
	UnitType            string `json:"unitType"            binding:"required,min=1,max=100"`
	Message             string `json:"message"             binding:"max=5000"`
	SourceURL           string `json:"sourceUrl"           binding:"omitempty,url,max=1000"`
	ProjectSlug         string `json:"projectSlug"         binding:"max=255"`
	Honeypot            string `json:"honeypot"`
}

// StatusDTO backs the quick triage patch, which only knows the public-facing statuses.
type StatusDTO struct {
	Status string  `json:"status" binding:"required,oneof=new qualified spam"`
	Notes  *string `json:"notes"`
}

type UpdateDTO struct {
	Status *string `json:"status" binding:"omitnil,oneof=new contacted qualified closed spam"`
	Notes  *string `json:"notes"`
}

func (d UpdateDTO) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	if d.Status != nil {
		updates["status"] = models.LeadStatus(*d.Status)
	}
	if d.Notes != nil {
		updates["notes"] = *d.Notes
	}
	return updates
}

// LeadWithProject is a lead row joined with the title and slug of its project, if any.
type LeadWithProject struct {
	models.Lead
	ProjectTitle *string
	ProjectSlug  *string
}

type leadResponse struct {
	ID                  uint      `json:"id"`
	ProjectID           *uint     `json:"projectId"`
	ProjectTitle        *string   `json:"projectTitle"`
	ProjectSlug         *string   `json:"projectSlug"`
	Name                string    `json:"name"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	JobTitle            string    `json:"jobTitle"`
	PreferredContactWay string    `json:"preferredContactWay"`
	UnitType            string    `json:"unitType"`
	Message             string    `json:"message"`
	SourceURL           string    `json:"sourceUrl"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func toResponse(l *LeadWithProject) leadResponse {
	return leadResponse{
		ID:                  l.ID,
		ProjectID:           l.ProjectID,
		ProjectTitle:        l.ProjectTitle,
		ProjectSlug:         l.ProjectSlug,
		Name:                l.Name,
		Phone:               l.Phone,
		Email:               l.Email,
		JobTitle:            l.JobTitle,
		PreferredContactWay: string(l.PreferredContactWay),
		UnitType:            l.UnitType,
		Message:             l.Message,
		SourceURL:           l.SourceURL,
		Status:              string(l.Status),
		Notes:               l.Notes,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

type createResponse struct {
	Message string `json:"message"`
	LeadID  uint   `json:"leadId"`
}
