package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// GalleryImage is one entry of a project gallery.
type GalleryImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Gallery stores the ordered image list as JSON text, while tolerating rows written
// as a plain list of URLs.
type Gallery []GalleryImage

func (g Gallery) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]GalleryImage(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (g *Gallery) Scan(value interface{}) error {
	if g == nil {
		return fmt.Errorf("models.Gallery: Scan on nil pointer")
	}
	if value == nil {
		*g = Gallery{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.Gallery: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*g = Gallery{}
		return nil
	}

	var images []GalleryImage
	if err := json.Unmarshal([]byte(raw), &images); err == nil {
		*g = images
		return nil
	}

	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err == nil {
		out := make(Gallery, 0, len(urls))
		for _, u := range urls {
			if u = strings.TrimSpace(u); u != "" {
				out = append(out, GalleryImage{URL: u})
			}
		}
		*g = out
		return nil
	}

	return fmt.Errorf("models.Gallery: malformed gallery JSON")
}
