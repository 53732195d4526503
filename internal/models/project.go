package models

import "gorm.io/datatypes"

// Project is one development shown on the public site. Slug is the external identity.
type Project struct {
	Base
	Slug            string                      `gorm:"size:255;uniqueIndex;not null"`
	Title           string                      `gorm:"size:255;not null"`
	Subtitle        string                      `gorm:"size:500"`
	Description     string                      `gorm:"type:text"`
	HeroImage       string                      `gorm:"size:500"`
	HeroImageMobile string                      `gorm:"size:500"`
	AboutImage      string                      `gorm:"size:500"`
	MasterplanImage string                      `gorm:"size:500"`
	Caption1        string                      `gorm:"size:255"`
	Caption2        string                      `gorm:"size:255"`
	Caption3        string                      `gorm:"size:255"`
	Gallery         Gallery                     `gorm:"type:text"`
	Highlights      datatypes.JSONSlice[string] `gorm:"column:highlights"`
	FAQs            datatypes.JSONSlice[FAQ]    `gorm:"column:faqs"`
	BrochureURL     string                      `gorm:"column:brochure_url;size:500"`
	MapEmbedURL     string                      `gorm:"column:map_embed_url;type:text"`
	Location        string                      `gorm:"size:255"`
	Type            string                      `gorm:"size:100"`
	Status          string                      `gorm:"size:100"`
	DeliveryDate    string                      `gorm:"size:100"`
	PaymentPlan     string                      `gorm:"type:text"`
	StartingPrice   string                      `gorm:"size:100"`
	Phone           string                      `gorm:"size:50"`
	WhatsApp        string                      `gorm:"column:whatsapp;size:50"`
	Email           string                      `gorm:"size:255"`
	Facebook        string                      `gorm:"size:500"`
	Instagram       string                      `gorm:"size:500"`
	YouTube         string                      `gorm:"column:youtube;size:500"`
	LinkedIn        string                      `gorm:"column:linkedin;size:500"`

	Videos []ProjectVideo `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string { return "projects" }

// FAQ is one question/answer pair on a project page.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ProjectVideo is owned by exactly one Project and is displayed by SortOrder, then ID.
type ProjectVideo struct {
	Base
	ProjectID    uint   `gorm:"not null;index"`
	Title        string `gorm:"size:255;not null"`
	Category     string `gorm:"size:100"`
	ThumbnailURL string `gorm:"column:thumbnail_url;size:500"`
	VideoURL     string `gorm:"column:video_url;size:500"`
	Description  string `gorm:"type:text"`
	AspectRatio  string `gorm:"size:20"`
	SortOrder    int    `gorm:"not null;index"`
}

func (ProjectVideo) TableName() string { return "project_videos" }
