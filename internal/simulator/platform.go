package simulator

import (
	"strings"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
)

// Platform is the closed set of channels an ad can be published to.
// Adding a channel means adding a constant, an entry in Platforms and a row
// in DefaultConfigs.
type Platform string

const (
	Facebook  Platform = "Facebook"
	Instagram Platform = "Instagram"
	Twitter   Platform = "Twitter"
	LinkedIn  Platform = "LinkedIn"
	GoogleAds Platform = "Google Ads"
	TikTok    Platform = "TikTok"
	YouTube   Platform = "YouTube"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{Facebook, Instagram, Twitter, LinkedIn, GoogleAds, TikTok, YouTube}

// Config is the fixed profile of one platform.
type Config struct {
	BaseReach      int
	Multiplier     float64
	EngagementRate float64
}

var DefaultConfigs = map[Platform]Config{
	Facebook:  {BaseReach: 1500, Multiplier: 1.2, EngagementRate: 0.08},
	Instagram: {BaseReach: 1200, Multiplier: 1.0, EngagementRate: 0.12},
	Twitter:   {BaseReach: 800, Multiplier: 0.8, EngagementRate: 0.06},
	LinkedIn:  {BaseReach: 600, Multiplier: 0.6, EngagementRate: 0.15},
	GoogleAds: {BaseReach: 2000, Multiplier: 1.5, EngagementRate: 0.05},
	TikTok:    {BaseReach: 1800, Multiplier: 1.3, EngagementRate: 0.18},
	YouTube:   {BaseReach: 1000, Multiplier: 0.9, EngagementRate: 0.10},
}

// ParsePlatform maps a stored or user-supplied name onto the enumeration.
// Matching is case-insensitive; "X" is accepted for Twitter.
func ParsePlatform(name string) (Platform, error) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, "X") {
		return Twitter, nil
	}
	for _, p := range Platforms {
		if strings.EqualFold(n, string(p)) {
			return p, nil
		}
	}
	return "", appErrors.NewInvalidInput("platform", "unsupported platform "+name)
}

// ParsePlatforms parses a whole selection and rejects duplicates.
func ParsePlatforms(names []string) ([]Platform, error) {
	if len(names) == 0 {
		return nil, appErrors.NewInvalidInput("selected_platforms", "at least one platform is required")
	}
	seen := make(map[Platform]bool, len(names))
	out := make([]Platform, 0, len(names))
	for _, name := range names {
		p, err := ParsePlatform(name)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			return nil, appErrors.NewInvalidInput("selected_platforms", "duplicate platform "+string(p))
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}
