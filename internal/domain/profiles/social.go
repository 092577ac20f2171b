package profiles

import "strings"

// SocialLinks is embedded into every profile table with the "social_" prefix.
type SocialLinks struct {
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`
	YouTube   string `json:"youtube"`
	Facebook  string `json:"facebook"`
	X         string `json:"x"`
	Website   string `json:"website"`
}

// Count returns how many links are set.
func (s SocialLinks) Count() int {
	return countSet(s.Instagram, s.TikTok, s.YouTube, s.Facebook, s.X, s.Website)
}

// NetworkCount is Count without the website.
func (s SocialLinks) NetworkCount() int {
	return countSet(s.Instagram, s.TikTok, s.YouTube, s.Facebook, s.X)
}

func countSet(links ...string) int {
	n := 0
	for _, v := range links {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}
