package project

import (
	"time"

	"github.com/nilehomes/landing/internal/models"
	"github.com/nilehomes/landing/internal/pkg/apperr"
	"gorm.io/datatypes"
)

// GalleryImageDTO requires alt to be present; an empty string is allowed.
type GalleryImageDTO struct {
	URL string  `json:"url" binding:"required,urlorpath"`
	Alt *string `json:"alt" binding:"required,max=255"`
}

type FAQDTO struct {
	Question string `json:"question" binding:"required,max=500"`
	Answer   string `json:"answer"   binding:"required"`
}

type VideoDTO struct {
	Title        string `json:"title"        binding:"required,max=255"`
	Category     string `json:"category"     binding:"max=100"`
	ThumbnailURL string `json:"thumbnailUrl" binding:"required,urlorpath"`
	VideoURL     string `json:"videoUrl"     binding:"required,urlorpath"`
	Description  string `json:"description"`
	AspectRatio  string `json:"aspectRatio"  binding:"max=20"`
	SortOrder    *int   `json:"sortOrder"`
}

// ProjectDTO is the write shape for both create and partial update.
// A nil field (or nil list) is absent and leaves the stored value untouched.
// name, tagline and locationText are accepted as aliases of title, subtitle and location.
type ProjectDTO struct {
	Slug            *string           `json:"slug"            binding:"omitnil,slug"`
	Title           *string           `json:"title"           binding:"omitnil,min=1,max=255"`
	Name            *string           `json:"name"            binding:"omitnil,min=1,max=255"`
	Subtitle        *string           `json:"subtitle"        binding:"omitnil,min=1,max=500"`
	Tagline         *string           `json:"tagline"         binding:"omitnil,min=1,max=500"`
	Description     *string           `json:"description"     binding:"omitnil,min=1"`
	HeroImage       *string           `json:"heroImage"       binding:"omitnil,urlorpath"`
	HeroImageMobile *string           `json:"heroImageMobile" binding:"omitnil,urlorpathorempty"`
	AboutImage      *string           `json:"aboutImage"      binding:"omitnil,urlorpathorempty"`
	MasterplanImage *string           `json:"masterplanImage" binding:"omitnil,urlorpathorempty"`
	Caption1        *string           `json:"caption1"        binding:"omitnil,max=255"`
	Caption2        *string           `json:"caption2"        binding:"omitnil,max=255"`
	Caption3        *string           `json:"caption3"        binding:"omitnil,max=255"`
	Gallery         []GalleryImageDTO `json:"gallery"         binding:"omitempty,dive"`
	Highlights      []string          `json:"highlights"      binding:"omitempty,dive,max=500"`
	FAQs            []FAQDTO          `json:"faqs"            binding:"omitempty,dive"`
	BrochureURL     *string           `json:"brochureUrl"     binding:"omitnil,max=500"`
	MapEmbedURL     *string           `json:"mapEmbedUrl"`
	Location        *string           `json:"location"        binding:"omitnil,max=255"`
	LocationText    *string           `json:"locationText"    binding:"omitnil,max=255"`
	Type            *string           `json:"type"            binding:"omitnil,max=100"`
	Status          *string           `json:"status"          binding:"omitnil,max=100"`
	DeliveryDate    *string           `json:"deliveryDate"    binding:"omitnil,max=100"`
	PaymentPlan     *string           `json:"paymentPlan"`
	StartingPrice   *string           `json:"startingPrice"   binding:"omitnil,max=100"`
	Phone           *string           `json:"phone"           binding:"omitnil,max=50"`
	WhatsApp        *string           `json:"whatsapp"        binding:"omitnil,max=50"`
	Email           *string           `json:"email"           binding:"omitnil,emailorempty"`
	Facebook        *string           `json:"facebook"        binding:"omitnil,max=500"`
	Instagram       *string           `json:"instagram"       binding:"omitnil,max=500"`
	YouTube         *string           `json:"youtube"         binding:"omitnil,max=500"`
	LinkedIn        *string           `json:"linkedin"        binding:"omitnil,max=500"`
	Videos          []VideoDTO        `json:"videos"          binding:"omitempty,dive"`
}

// canonicalize folds the legacy aliases into their canonical fields.
func (d *ProjectDTO) canonicalize() {
	if d.Title == nil {
		d.Title = d.Name
	}
	if d.Subtitle == nil {
		d.Subtitle = d.Tagline
	}
	if d.Location == nil {
		d.Location = d.LocationText
	}
	d.Name, d.Tagline, d.LocationText = nil, nil, nil
}

// requireCreateFields checks the fields a new project cannot do without.
func (d *ProjectDTO) requireCreateFields() error {
	required := []struct {
		field string
		value *string
	}{
		{"slug", d.Slug},
		{"title", d.Title},
		{"subtitle", d.Subtitle},
		{"description", d.Description},
	}
	verr := &apperr.ValidationError{}
	for _, r := range required {
		if r.value == nil || *r.value == "" {
			verr.Fields = append(verr.Fields, apperr.FieldError{Field: r.field, Message: "is required"})
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

type stringField struct {
	column string
	value  *string
	target *string
}

// stringFields pairs every optional text input with its column and the model field it fills.
func (d *ProjectDTO) stringFields(p *models.Project) []stringField {
	return []stringField{
		{"title", d.Title, &p.Title},
		{"subtitle", d.Subtitle, &p.Subtitle},
		{"description", d.Description, &p.Description},
		{"hero_image", d.HeroImage, &p.HeroImage},
		{"hero_image_mobile", d.HeroImageMobile, &p.HeroImageMobile},
		{"about_image", d.AboutImage, &p.AboutImage},
		{"masterplan_image", d.MasterplanImage, &p.MasterplanImage},
		{"caption1", d.Caption1, &p.Caption1},
		{"caption2", d.Caption2, &p.Caption2},
		{"caption3", d.Caption3, &p.Caption3},
		{"brochure_url", d.BrochureURL, &p.BrochureURL},
		{"map_embed_url", d.MapEmbedURL, &p.MapEmbedURL},
		{"location", d.Location, &p.Location},
		{"type", d.Type, &p.Type},
		{"status", d.Status, &p.Status},
		{"delivery_date", d.DeliveryDate, &p.DeliveryDate},
		{"payment_plan", d.PaymentPlan, &p.PaymentPlan},
		{"starting_price", d.StartingPrice, &p.StartingPrice},
		{"phone", d.Phone, &p.Phone},
		{"whatsapp", d.WhatsApp, &p.WhatsApp},
		{"email", d.Email, &p.Email},
		{"facebook", d.Facebook, &p.Facebook},
		{"instagram", d.Instagram, &p.Instagram},
		{"youtube", d.YouTube, &p.YouTube},
		{"linkedin", d.LinkedIn, &p.LinkedIn},
	}
}

// apply copies every present field onto p.
func (d *ProjectDTO) apply(p *models.Project) {
	for _, f := range d.stringFields(p) {
		if f.value != nil {
			*f.target = *f.value
		}
	}
	if d.Gallery != nil {
		p.Gallery = toGallery(d.Gallery)
	}
	if d.Highlights != nil {
		p.Highlights = datatypes.JSONSlice[string](d.Highlights)
	}
	if d.FAQs != nil {
		p.FAQs = toFAQs(d.FAQs)
	}
}

// changes returns column -> new value for every present field. Videos are not columns.
func (d *ProjectDTO) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	for _, f := range d.stringFields(&models.Project{}) {
		if f.value != nil {
			updates[f.column] = *f.value
		}
	}
	if d.Gallery != nil {
		updates["gallery"] = toGallery(d.Gallery)
	}
	if d.Highlights != nil {
		updates["highlights"] = datatypes.JSONSlice[string](d.Highlights)
	}
	if d.FAQs != nil {
		updates["faqs"] = toFAQs(d.FAQs)
	}
	return updates
}

func toGallery(in []GalleryImageDTO) models.Gallery {
	out := make(models.Gallery, 0, len(in))
	for _, g := range in {
		img := models.GalleryImage{URL: g.URL}
		if g.Alt != nil {
			img.Alt = *g.Alt
		}
		out = append(out, img)
	}
	return out
}

func toFAQs(in []FAQDTO) datatypes.JSONSlice[models.FAQ] {
	out := make(datatypes.JSONSlice[models.FAQ], 0, len(in))
	for _, f := range in {
		out = append(out, models.FAQ{Question: f.Question, Answer: f.Answer})
	}
	return out
}

// toVideos stamps each input with projectID. A missing sortOrder becomes the list position.
func toVideos(projectID uint, in []VideoDTO) []models.ProjectVideo {
	out := make([]models.ProjectVideo, 0, len(in))
	for i, v := range in {
		order := i
		if v.SortOrder != nil {
			order = *v.SortOrder
		}
		out = append(out, models.ProjectVideo{
			ProjectID:    projectID,
			Title:        v.Title,
			Category:     v.Category,
			ThumbnailURL: v.ThumbnailURL,
			VideoURL:     v.VideoURL,
			Description:  v.Description,
			AspectRatio:  v.AspectRatio,
			SortOrder:    order,
		})
	}
	return out
}

type videoResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	EmbedURL     string `json:"embedUrl"`
	Description  string `json:"description"`
	AspectRatio  string `json:"aspectRatio"`
	SortOrder    int    `json:"sortOrder"`
}

type projectResponse struct {
	ID              uint                  `json:"id"`
	Slug            string                `json:"slug"`
	Title           string                `json:"title"`
	Subtitle        string                `json:"subtitle"`
	Description     string                `json:"description"`
	DescriptionHTML string                `json:"descriptionHtml"`
	HeroImage       string                `json:"heroImage"`
	HeroImageMobile string                `json:"heroImageMobile"`
	AboutImage      string                `json:"aboutImage"`
	MasterplanImage string                `json:"masterplanImage"`
	Caption1        string                `json:"caption1"`
	Caption2        string                `json:"caption2"`
	Caption3        string                `json:"caption3"`
	Gallery         []models.GalleryImage `json:"gallery"`
	Highlights      []string              `json:"highlights"`
	FAQs            []models.FAQ          `json:"faqs"`
	BrochureURL     string                `json:"brochureUrl"`
	MapEmbedURL     string                `json:"mapEmbedUrl"`
	Location        string                `json:"location"`
	Type            string                `json:"type"`
	Status          string                `json:"status"`
	DeliveryDate    string                `json:"deliveryDate"`
	PaymentPlan     string                `json:"paymentPlan"`
	StartingPrice   string                `json:"startingPrice"`
	Contact         contactResponse       `json:"contact"`
	Videos          []videoResponse       `json:"videos"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

type contactResponse struct {
	Phone     string `json:"phone"`
	WhatsApp  string `json:"whatsapp"`
	Email     string `json:"email"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	YouTube   string `json:"youtube"`
	LinkedIn  string `json:"linkedin"`
}

type createResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
	Slug    string `json:"slug"`
}
