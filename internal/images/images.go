package images

import (
	"fmt"
	"strings"

	"unifi/catalog/internal/config"
	"unifi/catalog/internal/domain"
)

// Size selects the display context an image is resolved for.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

// Resolver builds CDN URLs for product photos and glyph icons from the
// identifiers carried in device records. It never fails: records
// without image data resolve to the placeholder path.
type Resolver struct {
	imageBase   string
	iconBase    string
	placeholder string
	widths      map[Size]int
}

func NewResolver(cfg config.ImagesConfig) *Resolver {
	return &Resolver{
		imageBase:   strings.TrimRight(cfg.ImageBase, "/"),
		iconBase:    strings.TrimRight(cfg.IconBase, "/"),
		placeholder: cfg.Placeholder,
		widths: map[Size]int{
			SizeSmall:  cfg.SmallWidth,
			SizeMedium: cfg.MediumWidth,
			SizeLarge:  cfg.LargeWidth,
		},
	}
}

// Placeholder is the local fallback path, also used when a remote image
// fails to load.
func (r *Resolver) Placeholder() string {
	return r.placeholder
}

// ProductImageURL builds the resizing-CDN URL for a device photo.
func (r *Resolver) ProductImageURL(deviceID, imageID string, size Size) string {
	if deviceID == "" || imageID == "" {
		return r.placeholder
	}
	return fmt.Sprintf("%s/%s/default/%s.png?w=%d&q=100&fmt=png",
		r.imageBase, deviceID, imageID, r.preferredWidth(size))
}

// IconURL builds the glyph icon URL using the record's declared
// resolution list.
func (r *Resolver) IconURL(icon domain.Icon, size Size) string {
	if icon.ID == "" || len(icon.Resolutions) == 0 {
		return r.placeholder
	}
	w, h := pickResolution(icon.Resolutions, r.preferredWidth(size))
	return fmt.Sprintf("%s/%s_%dx%d.png", r.iconBase, icon.ID, w, h)
}

func (r *Resolver) preferredWidth(size Size) int {
	if w, ok := r.widths[size]; ok && w > 0 {
		return w
	}
	return r.widths[SizeMedium]
}

// pickResolution returns the first declared pair whose width is at or
// above the preferred width. Height and aspect ratio are deliberately
// ignored; this mirrors the feed's documented selection behavior.
// When nothing qualifies, the widest declared pair is used.
func pickResolution(res [][2]int, preferred int) (int, int) {
	for _, pair := range res {
		if pair[0] >= preferred {
			return pair[0], pair[1]
		}
	}
	widest := res[0]
	for _, pair := range res[1:] {
		if pair[0] > widest[0] {
			widest = pair
		}
	}
	return widest[0], widest[1]
}
