package strapi

import "strings"

// fallbackImage is shown when a recipe carries no usable upload.
const fallbackImage = "https://via.placeholder.com/400x400/eee/ccc?text=No+Image"

// mediaResolver turns the relative upload paths Strapi returns into
// absolute URLs against the media host.
type mediaResolver struct {
	base string
}

// buildURL resolves a raw upload path. Absolute URLs pass through.
func (m mediaResolver) buildURL(raw string) string {
	if raw == "" {
		return fallbackImage
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return m.base + "/" + strings.TrimLeft(raw, "/")
}

// recipeImageURL picks the best available format of the first image:
// small, then medium, then the original upload.
func (m mediaResolver) recipeImageURL(images []imagePayload) string {
	if len(images) == 0 {
		return fallbackImage
	}
	first := images[0]
	switch {
	case first.Formats.Small != nil && first.Formats.Small.URL != "":
		return m.buildURL(first.Formats.Small.URL)
	case first.Formats.Medium != nil && first.Formats.Medium.URL != "":
		return m.buildURL(first.Formats.Medium.URL)
	default:
		return m.buildURL(first.URL)
	}
}
