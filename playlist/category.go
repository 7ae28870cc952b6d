package playlist

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CategoryAll matches every item.
const CategoryAll = "all"

// CategoryOf returns the item's explicit category or one derived from its
// type.
func CategoryOf(it Item) string {
	if it.Category != "" {
		return it.Category
	}
	switch it.Type {
	case TypeImage:
		return "images"
	case TypeWebXR:
		return "vr"
	case TypeAudio:
		return "audio"
	case TypeYouTube, TypeYouTubePlaylist:
		return "video"
	default:
		return "other"
	}
}

// HumanCategory is the label shown for a category.
func HumanCategory(c string) string {
	switch c {
	case CategoryAll:
		return "All"
	case "images":
		return "Images"
	case "vr":
		return "VR"
	case "audio":
		return "Audio"
	case "video":
		return "Video"
	case "":
		return ""
	}
	r, size := utf8.DecodeRuneInString(c)
	return string(unicode.ToUpper(r)) + c[size:]
}

// TypeBadge is the short tag drawn next to an item title.
func TypeBadge(t Type) string {
	switch t {
	case TypeWebXR:
		return "VR"
	case TypeImage:
		return "Image"
	case TypeAudio:
		return "Audio"
	case TypeYouTube:
		return "Video"
	case TypeYouTubePlaylist:
		return "Playlist"
	case "":
		return "Item"
	default:
		return strings.ToUpper(string(t))
	}
}

// Categories lists "all" followed by each item category in order of first
// appearance.
func Categories(items []Item) []string {
	out := []string{CategoryAll}
	seen := map[string]bool{CategoryAll: true}
	for _, it := range items {
		c := CategoryOf(it)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
