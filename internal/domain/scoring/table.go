package scoring

import (
	"encoding/json"
	"strings"
)

// MaxScore caps every breakdown total.
const MaxScore = 100

type Mode int

const (
	// FirstMatch awards the points of the first matching rule.
	FirstMatch Mode = iota
	// SumAll awards the points of every matching rule.
	SumAll
)

// Rule is one (predicate, points, explanation) row of a score table.
type Rule[T any] struct {
	Points  int
	Explain string
	Match   func(T) bool
}

type Category[T any] struct {
	Name  string
	Mode  Mode
	Rules []Rule[T]
	// Empty explains a SumAll category where nothing matched.
	Empty string
}

type Table[T any] []Category[T]

// Breakdown is the scored result. It serialises flat:
// {"total": 40, "<category>": points, ..., "details": {"<category>": "..."}}.
type Breakdown struct {
	Total      int
	Categories map[string]int
	Details    map[string]string
}

func (t Table[T]) Score(subject T) Breakdown {
	b := Breakdown{
		Categories: make(map[string]int, len(t)),
		Details:    make(map[string]string, len(t)),
	}

	sum := 0
	for _, cat := range t {
		points, explain := cat.evaluate(subject)
		b.Categories[cat.Name] = points
		b.Details[cat.Name] = explain
		sum += points
	}

	b.Total = min(sum, MaxScore)
	if b.Total < 0 {
		b.Total = 0
	}
	return b
}

func (c Category[T]) evaluate(subject T) (int, string) {
	if c.Mode == FirstMatch {
		for _, r := range c.Rules {
			if r.Match(subject) {
				return r.Points, r.Explain
			}
		}
		return 0, c.Empty
	}

	points := 0
	var parts []string
	for _, r := range c.Rules {
		if r.Match(subject) {
			points += r.Points
			parts = append(parts, r.Explain)
		}
	}
	if len(parts) == 0 {
		return 0, c.Empty
	}
	return points, strings.Join(parts, "; ")
}

// MaxPoints is the best score a category can award.
func (c Category[T]) MaxPoints() int {
	best := 0
	for _, r := range c.Rules {
		if c.Mode == SumAll {
			best += r.Points
		} else if r.Points > best {
			best = r.Points
		}
	}
	return best
}

// Full reports whether subject earns the maximum points of the named category.
func (t Table[T]) Full(name string, subject T) bool {
	for _, cat := range t {
		if cat.Name == name {
			points, _ := cat.evaluate(subject)
			return points == cat.MaxPoints()
		}
	}
	return false
}

func always[T any](T) bool { return true }

func (b Breakdown) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Categories)+2)
	for name, points := range b.Categories {
		out[name] = points
	}
	out["total"] = b.Total
	details := b.Details
	if details == nil {
		details = map[string]string{}
	}
	out["details"] = details
	return json.Marshal(out)
}

func (b *Breakdown) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.Categories = map[string]int{}
	b.Details = map[string]string{}
	for key, val := range raw {
		switch key {
		case "total":
			if err := json.Unmarshal(val, &b.Total); err != nil {
				return err
			}
		case "details":
			if err := json.Unmarshal(val, &b.Details); err != nil {
				return err
			}
		default:
			var points int
			if err := json.Unmarshal(val, &points); err != nil {
				return err
			}
			b.Categories[key] = points
		}
	}
	return nil
}
