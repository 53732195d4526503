package models

import "gorm.io/gorm"

// LeadStatus is the triage state of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusSpam      LeadStatus = "spam"
)

// Valid reports whether s is one of the stored statuses.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusClosed, LeadStatusSpam:
		return true
	}
	return false
}

// ContactWay is how the customer prefers to be reached.
type ContactWay string

const (
	ContactWayWhatsApp ContactWay = "whatsapp"
	ContactWayCall     ContactWay = "call"
)

// Lead is a customer inquiry captured from the public form.
type Lead struct {
	Base
	ProjectID           *uint      `gorm:"index"`
	Project             *Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
	Name                string     `gorm:"size:255;not null"`
	Phone               string     `gorm:"size:50;not null"`
	Email               string     `gorm:"size:255"`
	JobTitle            string     `gorm:"size:255"`
	PreferredContactWay ContactWay `gorm:"size:20;not null"`
	UnitType            string     `gorm:"size:100"`
	Message             string     `gorm:"type:text"`
	SourceURL           string     `gorm:"column:source_url;size:1000"`
	Status              LeadStatus `gorm:"size:20;not null;index"`
	Notes               string     `gorm:"type:text"`
}

func (Lead) TableName() string { return "leads" }

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	if l.PreferredContactWay == "" {
		l.PreferredContactWay = ContactWayWhatsApp
	}
	return nil
}
