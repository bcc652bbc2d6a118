// Package simulator fabricates per-platform performance numbers for a newly
// published ad. No ad network is contacted.
package simulator

import (
	"math"
	"math/rand"
	"sync"

	appErrors "github.com/unclebandit/adboost-backend/internal/errors"
)

// KeywordBonus is the reach added per target keyword before the multiplier.
const KeywordBonus = 50

// Bounds of each random factor.
var (
	ReachFactor      = Range{Lo: 0.8, Hi: 1.2}
	ImpressionFactor = Range{Lo: 1.2, Hi: 2.0}
	ClickFactor      = Range{Lo: 0.7, Hi: 1.3}
	EngagementFactor = Range{Lo: 0.3, Hi: 0.7}
)

type Range struct {
	Lo, Hi float64
}

// Jitter supplies the random factors. Tests inject a constant one.
type Jitter interface {
	Factor(lo, hi float64) float64
}

// RandJitter draws uniformly from [lo, hi). Safe for concurrent use.
type RandJitter struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRandJitter(seed int64) *RandJitter {
	return &RandJitter{r: rand.New(rand.NewSource(seed))}
}

func (j *RandJitter) Factor(lo, hi float64) float64 {
	j.mu.Lock()
	u := j.r.Float64()
	j.mu.Unlock()
	return lo + u*(hi-lo)
}

type Metrics struct {
	Reach       int
	Impressions int
	Clicks      int
	// Engagements is the raw like/share/comment count behind EngagementRate.
	Engagements    int
	EngagementRate float64
}

type Simulator struct {
	configs map[Platform]Config
	jitter  Jitter
}

// New returns a simulator over DefaultConfigs.
func New(jitter Jitter) *Simulator {
	return NewWithConfigs(DefaultConfigs, jitter)
}

func NewWithConfigs(configs map[Platform]Config, jitter Jitter) *Simulator {
	return &Simulator{configs: configs, jitter: jitter}
}

// Simulate returns metrics for one platform. radiusKm is validated but does
// not move reach.
func (s *Simulator) Simulate(p Platform, radiusKm float64, keywordCount int) (Metrics, error) {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return Metrics{}, appErrors.NewInvalidInput("distance_km", "must be a non-negative finite number")
	}
	if keywordCount < 0 {
		return Metrics{}, appErrors.NewInvalidInput("keyword_count", "must not be negative")
	}
	cfg, ok := s.configs[p]
	if !ok {
		return Metrics{}, appErrors.NewNotConfigured(string(p))
	}

	base := float64(cfg.BaseReach + keywordCount*KeywordBonus)
	reach := int(math.Floor(base * cfg.Multiplier * s.draw(ReachFactor)))

	impressions := int(math.Floor(float64(reach) * s.draw(ImpressionFactor)))
	if impressions < reach {
		impressions = reach
	}

	clicks := int(math.Floor(float64(impressions) * cfg.EngagementRate * s.draw(ClickFactor)))
	engagements := int(math.Floor(float64(clicks) * s.draw(EngagementFactor)))

	return Metrics{
		Reach:          reach,
		Impressions:    impressions,
		Clicks:         clicks,
		Engagements:    engagements,
		EngagementRate: EngagementRate(engagements, impressions),
	}, nil
}

// EngagementRate is events/impressions in [0,1], 0 when there were no
// impressions.
func EngagementRate(events, impressions int) float64 {
	if impressions <= 0 || events <= 0 {
		return 0
	}
	rate := float64(events) / float64(impressions)
	if rate > 1 {
		return 1
	}
	return rate
}

func (s *Simulator) draw(r Range) float64 {
	return s.jitter.Factor(r.Lo, r.Hi)
}
