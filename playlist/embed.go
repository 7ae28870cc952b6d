package playlist

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	youtubeEmbed  = "https://www.youtube.com/embed/"
	embedParams   = "rel=0&modestbranding=1&playsinline=1"
	placeholderYT = "https://dummyimage.com/320x180/000/fff.png&text=YouTube"
	placeholderPL = "https://dummyimage.com/320x180/000/fff.png&text=Playlist"
	placeholderAU = "https://dummyimage.com/160x160/000/fff.png&text=Audio"
)

// EmbedURL returns what the stage should load for it. now is stamped into
// player URLs so repeated selections reload the media.
func EmbedURL(it Item, now time.Time) string {
	switch it.Type {
	case TypeWebXR:
		return it.URL
	case TypeYouTube, Type3D:
		id := YouTubeID(it.URL)
		if id == "" {
			return it.URL
		}
		return youtubeEmbed + id + "?" + embedParams
	case TypeYouTubePlaylist:
		pid := PlaylistID(it.URL)
		if pid == "" {
			return it.URL
		}
		return youtubeEmbed + "videoseries?list=" + pid + "&" + embedParams
	case TypeAudio, TypeVideo:
		return "/player.html?type=" + string(it.Type) +
			"&src=" + url.QueryEscape(it.URL) +
			"&t=" + strconv.FormatInt(now.UnixMilli(), 10)
	default:
		return it.URL
	}
}

// ThumbnailURL returns a preview image for it.
func ThumbnailURL(it Item) string {
	switch it.Type {
	case TypeYouTube, Type3D:
		if id := YouTubeID(it.URL); id != "" {
			return "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"
		}
		return placeholderYT
	case TypeYouTubePlaylist:
		return placeholderPL
	case TypeImage:
		return it.URL
	default:
		return placeholderAU
	}
}

// YouTubeID extracts a video id from youtube.com/watch?v= or youtu.be/ URLs.
func YouTubeID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	switch {
	case strings.Contains(u.Hostname(), "youtu.be"):
		return strings.Trim(u.Path, "/")
	case strings.Contains(u.Hostname(), "youtube.com"):
		return u.Query().Get("v")
	}
	return ""
}

// PlaylistID extracts the list parameter of a YouTube playlist URL.
func PlaylistID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}
