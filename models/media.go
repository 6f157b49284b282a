package models

import "strings"

type VideoSource string

const (
	VideoSourceEmbed VideoSource = "embed"
	VideoSourceLocal VideoSource = "local"
	VideoSourceLink  VideoSource = "link"
)

var embedHosts = []string{"youtube.com", "youtu.be", "vimeo.com"}

// ClassifyVideoURL decides how a video URL is played back: in an embedded third-party player,
// from our own uploads, or as a plain link.
func ClassifyVideoURL(url string) VideoSource {
	for _, host := range embedHosts {
		if strings.Contains(url, host) {
			return VideoSourceEmbed
		}
	}
	if strings.HasPrefix(url, "/uploads/") {
		return VideoSourceLocal
	}
	return VideoSourceLink
}

var socialIcons = map[string]string{
	"instagram": "instagram",
	"linkedin":  "linkedin",
	"tiktok":    "tiktok",
}

// SocialIcon resolves an icon key. Unknown keys render a blank placeholder.
func SocialIcon(key string) (string, bool) {
	icon, ok := socialIcons[strings.ToLower(strings.TrimSpace(key))]
	return icon, ok
}
