// Package playlist models the hub's media items and how the sidebar
// filters, orders, and steps through them.
package playlist

import (
	"strings"

	"github.com/google/uuid"
)

// Type is the kind of media an item points at.
type Type string

const (
	TypeAudio           Type = "audio"
	TypeVideo           Type = "video"
	TypeYouTube         Type = "youtube"
	TypeYouTubePlaylist Type = "youtube_playlist"
	TypeWebXR           Type = "webxr"
	TypeImage           Type = "image"
	Type3D              Type = "3d"
)

// Item is one playlist entry.
type Item struct {
	ID       string `yaml:"id" json:"id"`
	Type     Type   `yaml:"type" json:"type"`
	Title    string `yaml:"title" json:"title"`
	URL      string `yaml:"url" json:"url"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// itemNamespace seeds ids for items that do not carry one, so the same URL
// always maps to the same id across runs.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("templehub/playlist"))

// Normalize trims fields and fills a missing id from the item's URL.
func Normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		it.Title = strings.TrimSpace(it.Title)
		it.URL = strings.TrimSpace(it.URL)
		it.Type = Type(strings.ToLower(strings.TrimSpace(string(it.Type))))
		if it.ID == "" {
			it.ID = uuid.NewSHA1(itemNamespace, []byte(it.URL)).String()
		}
		if it.Title == "" {
			it.Title = it.URL
		}
		out = append(out, it)
	}
	return out
}

// IndexOf returns the position of the item with id, or -1.
func IndexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
