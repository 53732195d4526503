package project

import (
	"net/url"
	"path"
	"strings"

	"github.com/nilehomes/landing/internal/models"
	"github.com/nilehomes/landing/internal/pkg/markdown"
)

func toResponse(p *models.Project) projectResponse {
	resp := projectResponse{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Subtitle:        p.Subtitle,
		Description:     p.Description,
		DescriptionHTML: markdown.Render(p.Description),
		HeroImage:       p.HeroImage,
		HeroImageMobile: p.HeroImageMobile,
		AboutImage:      p.AboutImage,
		MasterplanImage: p.MasterplanImage,
		Caption1:        p.Caption1,
		Caption2:        p.Caption2,
		Caption3:        p.Caption3,
		Gallery:         []models.GalleryImage(p.Gallery),
		Highlights:      []string(p.Highlights),
		FAQs:            []models.FAQ(p.FAQs),
		BrochureURL:     p.BrochureURL,
		MapEmbedURL:     p.MapEmbedURL,
		Location:        p.Location,
		Type:            p.Type,
		Status:          p.Status,
		DeliveryDate:    p.DeliveryDate,
		PaymentPlan:     p.PaymentPlan,
		StartingPrice:   p.StartingPrice,
		Contact: contactResponse{
			Phone:     p.Phone,
			WhatsApp:  p.WhatsApp,
			Email:     p.Email,
			Facebook:  p.Facebook,
			Instagram: p.Instagram,
			YouTube:   p.YouTube,
			LinkedIn:  p.LinkedIn,
		},
		Videos:    make([]videoResponse, 0, len(p.Videos)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if resp.Gallery == nil {
		resp.Gallery = []models.GalleryImage{}
	}
	if resp.Highlights == nil {
		resp.Highlights = []string{}
	}
	if resp.FAQs == nil {
		resp.FAQs = []models.FAQ{}
	}
	for _, v := range p.Videos {
		resp.Videos = append(resp.Videos, videoResponse{
			ID:           v.ID,
			Title:        v.Title,
			Category:     v.Category,
			ThumbnailURL: v.ThumbnailURL,
			VideoURL:     v.VideoURL,
			EmbedURL:     EmbedURL(v.VideoURL),
			Description:  v.Description,
			AspectRatio:  v.AspectRatio,
			SortOrder:    v.SortOrder,
		})
	}
	return resp
}

func toResponses(list []models.Project) []projectResponse {
	out := make([]projectResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out
}

// EmbedURL returns the player URL for YouTube and Facebook links.
// Anything else, including self-hosted files, is returned unchanged.
func EmbedURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return raw
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return youtubeEmbed(id)
		}
	case "youtube.com", "youtube-nocookie.com":
		if id := u.Query().Get("v"); id != "" {
			return youtubeEmbed(id)
		}
		dir, id := path.Split(strings.TrimSuffix(u.Path, "/"))
		switch dir {
		case "/embed/", "/shorts/", "/live/":
			if id != "" {
				return youtubeEmbed(id)
			}
		}
	case "facebook.com", "fb.watch":
		return "https://www.facebook.com/plugins/video.php?href=" + url.QueryEscape(raw) + "&show_text=false&autoplay=1"
	}
	return raw
}

func youtubeEmbed(id string) string {
	return "https://www.youtube.com/embed/" + url.PathEscape(id) + "?autoplay=1&rel=0"
}
