package models

import "testing"

func TestClassifyVideoURL(t *testing.T) {
	cases := map[string]VideoSource{
		"https://www.youtube.com/watch?v=abc": VideoSourceEmbed,
		"https://youtu.be/abc":                VideoSourceEmbed,
		"https://vimeo.com/123":               VideoSourceEmbed,
		"/uploads/reel-1700000000000.mp4":     VideoSourceLocal,
		"https://cdn.example.com/reel.mp4":    VideoSourceLink,
	}
	for url, want := range cases {
		if got := ClassifyVideoURL(url); got != want {
			t.Errorf("ClassifyVideoURL(%q) = %s, want %s", url, got, want)
		}
	}
}

func TestSocialIcon(t *testing.T) {
	for _, key := range []string{"instagram", "linkedin", "TikTok"} {
		if _, ok := SocialIcon(key); !ok {
			t.Errorf("expected %q to be known", key)
		}
	}
	if icon, ok := SocialIcon("myspace"); ok || icon != "" {
		t.Errorf("expected unknown icon to render blank, got %q", icon)
	}
}
