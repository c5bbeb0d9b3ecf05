// Package eligibility holds the promotion and salary-rating calculator: the static
// tier tables and the pure evaluators that read them.
package eligibility

import (
	"fmt"
	"math"
	"sort"
)

// RankTier is a named rank with the minimum cumulative worked minutes it requires.
type RankTier struct {
	Name       string `yaml:"name" json:"name"`
	MinMinutes int    `yaml:"min_minutes" json:"min_minutes"`
}

// Category is a badge track and its ranks in promotion order.
type Category struct {
	Key   string     `yaml:"key" json:"key"`
	Name  string     `yaml:"name" json:"name"`
	Ranks []RankTier `yaml:"ranks" json:"ranks"`
}

// SalaryTier maps a minimum number of worked hours to a salary rating.
type SalaryTier struct {
	MinHours float64 `yaml:"min_hours" json:"min_hours"`
	Label    string  `yaml:"label" json:"label"`
	Rating   int     `yaml:"rating" json:"rating"`
}

// BonusTier maps a minimum number of extra hours to a bonus rating.
type BonusTier struct {
	MinHours float64 `yaml:"min_hours" json:"min_hours"`
	Rating   int     `yaml:"rating" json:"rating"`
}

// AFKRule deducts one rating point per whole interval of idle time above the grace period.
type AFKRule struct {
	GraceMinutes    float64 `yaml:"grace_minutes" json:"grace_minutes"`
	IntervalMinutes float64 `yaml:"interval_minutes" json:"interval_minutes"`
}

// Penalty returns the number of rating points deducted for afkMinutes of idle time.
func (r AFKRule) Penalty(afkMinutes float64) int {
	if afkMinutes <= r.GraceMinutes || r.IntervalMinutes <= 0 {
		return 0
	}
	p := math.Floor((afkMinutes - r.GraceMinutes) / r.IntervalMinutes)
	if p > maxPenalty {
		return maxPenalty
	}
	return int(p)
}

// maxPenalty caps the deduction so huge idle times cannot overflow int.
const maxPenalty = math.MaxInt32

// NoTier is returned by SalaryTierFor when hours fall below every threshold.
var NoTier = SalaryTier{Label: "none", Rating: 0}

// Tables is the immutable set of eligibility tables shared by all evaluators.
type Tables struct {
	categories []Category
	index      map[string]int
	salary     []SalaryTier // highest threshold first
	bonus      []BonusTier  // highest threshold first
	afk        AFKRule
}

// NewTables validates and freezes a set of tables.
func NewTables(categories []Category, salary []SalaryTier, bonus []BonusTier, afk AFKRule) (*Tables, error) {
	t := &Tables{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
		afk:        afk,
	}

	for _, c := range categories {
		if c.Key == "" {
			return nil, fmt.Errorf("category with empty key")
		}
		if _, dup := t.index[c.Key]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.Key)
		}
		if len(c.Ranks) == 0 {
			return nil, fmt.Errorf("category %q has no ranks", c.Key)
		}

		seen := make(map[string]bool, len(c.Ranks))
		for i, r := range c.Ranks {
			if r.Name == "" {
				return nil, fmt.Errorf("category %q: rank %d has no name", c.Key, i)
			}
			if seen[r.Name] {
				return nil, fmt.Errorf("category %q: duplicate rank %q", c.Key, r.Name)
			}
			seen[r.Name] = true
			if r.MinMinutes < 0 {
				return nil, fmt.Errorf("category %q: rank %q has negative threshold", c.Key, r.Name)
			}
			if i > 0 && r.MinMinutes < c.Ranks[i-1].MinMinutes {
				return nil, fmt.Errorf("category %q: rank %q threshold %d is below previous rank %q (%d)",
					c.Key, r.Name, r.MinMinutes, c.Ranks[i-1].Name, c.Ranks[i-1].MinMinutes)
			}
		}

		if c.Name == "" {
			c.Name = c.Key
		}
		c.Ranks = append([]RankTier(nil), c.Ranks...)
		t.index[c.Key] = len(t.categories)
		t.categories = append(t.categories, c)
	}

	for _, s := range salary {
		if s.MinHours < 0 || math.IsNaN(s.MinHours) {
			return nil, fmt.Errorf("salary tier %q has invalid threshold %v", s.Label, s.MinHours)
		}
	}
	for _, b := range bonus {
		if b.MinHours < 0 || math.IsNaN(b.MinHours) {
			return nil, fmt.Errorf("bonus tier has invalid threshold %v", b.MinHours)
		}
	}
	if afk.IntervalMinutes <= 0 {
		return nil, fmt.Errorf("afk interval must be positive, got %v", afk.IntervalMinutes)
	}
	if afk.GraceMinutes < 0 {
		return nil, fmt.Errorf("afk grace must not be negative, got %v", afk.GraceMinutes)
	}

	t.salary = append([]SalaryTier(nil), salary...)
	sort.SliceStable(t.salary, func(i, j int) bool {
		return t.salary[i].MinHours > t.salary[j].MinHours
	})
	t.bonus = append([]BonusTier(nil), bonus...)
	sort.SliceStable(t.bonus, func(i, j int) bool {
		return t.bonus[i].MinHours > t.bonus[j].MinHours
	})

	return t, nil
}

// Categories returns the configured categories in display order.
func (t *Tables) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		c.Ranks = append([]RankTier(nil), c.Ranks...)
		out[i] = c
	}
	return out
}

// Category returns a single category by key.
func (t *Tables) Category(key string) (Category, error) {
	i, ok := t.index[key]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	c := t.categories[i]
	c.Ranks = append([]RankTier(nil), c.Ranks...)
	return c, nil
}

// RanksFor returns the ranks of a category in promotion order.
func (t *Tables) RanksFor(category string) ([]RankTier, error) {
	c, err := t.Category(category)
	if err != nil {
		return nil, err
	}
	return c.Ranks, nil
}

// ThresholdMinutes returns the minutes required for rank within category.
func (t *Tables) ThresholdMinutes(category, rank string) (int, error) {
	i, ok := t.index[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	for _, r := range t.categories[i].Ranks {
		if r.Name == rank {
			return r.MinMinutes, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in category %q", ErrUnknownRank, rank, category)
}

// SalaryTierFor returns the most senior salary tier whose threshold hours reaches.
func (t *Tables) SalaryTierFor(hours float64) SalaryTier {
	for _, s := range t.salary {
		if hours >= s.MinHours {
			return s
		}
	}
	return NoTier
}

// BonusTierFor returns the bonus tier for extra hours, rated on the bonus scale only.
func (t *Tables) BonusTierFor(bonusHours float64) BonusTier {
	for _, b := range t.bonus {
		if bonusHours >= b.MinHours {
			return b
		}
	}
	return BonusTier{}
}

// AFK returns the idle-time penalty rule.
func (t *Tables) AFK() AFKRule {
	return t.afk
}
