package ratio

import (
	"fmt"
	"regexp"
)

// Scheduler assigns a stream of items to named splits one at a time,
// following a gcd-reduced percentage schedule. Unlike Split it never sees the
// whole sequence; writers use it to route records as they arrive. An optional
// group pattern (a regexp with one capture group) pins items sharing a group,
// such as files with a common base name, to the split the group first landed
// in.
type Scheduler struct {
	names    []string
	schedule []int // cumulative reduced-unit boundaries, len(names)+1
	counter  int
	stats    map[string]int
	groups   map[string]string
	pattern  *regexp.Regexp
}

// NewScheduler validates the percentages (positive, summing to 100, one per
// name) and builds the schedule. groupPattern may be empty.
func NewScheduler(percents []int, names []string, groupPattern string) (*Scheduler, error) {
	if len(percents) == 0 {
		return nil, fmt.Errorf("ratio scheduler: no split ratios defined")
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("ratio scheduler: no split names defined")
	}
	if len(percents) != len(names) {
		return nil, fmt.Errorf("ratio scheduler: %d ratios for %d names", len(percents), len(names))
	}
	sum := 0
	for _, p := range percents {
		if p <= 0 {
			return nil, fmt.Errorf("ratio scheduler: ratios must be positive, got %d", p)
		}
		sum += p
	}
	if sum != 100 {
		return nil, fmt.Errorf("ratio scheduler: ratios must sum to 100, got %d", sum)
	}

	var pattern *regexp.Regexp
	if groupPattern != "" {
		var err error
		pattern, err = regexp.Compile(groupPattern)
		if err != nil {
			return nil, fmt.Errorf("ratio scheduler: group pattern: %w", err)
		}
	}

	g := gcdAll(percents)
	schedule := make([]int, len(percents)+1)
	for i, p := range percents {
		schedule[i+1] = schedule[i] + p/g
	}

	return &Scheduler{
		names:    append([]string(nil), names...),
		schedule: schedule,
		stats:    make(map[string]int),
		groups:   make(map[string]string),
		pattern:  pattern,
	}, nil
}

// Next returns the split name for the next item. When a group pattern is set
// and item matches, the item's group determines the split once and for all.
func (s *Scheduler) Next(item string) string {
	group := ""
	if s.pattern != nil && item != "" {
		if m := s.pattern.FindStringSubmatch(item); m != nil && len(m) > 1 {
			group = m[1]
			if split, assigned := s.groups[group]; assigned {
				s.stats[split]++
				return split
			}
		}
	}

	split := s.names[0]
	for i := range s.names {
		if s.counter >= s.schedule[i] && s.counter < s.schedule[i+1] {
			split = s.names[i]
		}
	}

	s.counter++
	if s.counter == s.schedule[len(s.schedule)-1] {
		s.counter = 0
	}
	s.stats[split]++
	if group != "" {
		s.groups[group] = split
	}
	return split
}

// Stats returns how many items each split has received so far.
func (s *Scheduler) Stats() map[string]int {
	out := make(map[string]int, len(s.stats))
	for name, count := range s.stats {
		out[name] = count
	}
	return out
}

// Counter returns the position within the current schedule cycle.
func (s *Scheduler) Counter() int {
	return s.counter
}

// Reset clears the counter, stats, and group assignments.
func (s *Scheduler) Reset() {
	s.counter = 0
	s.stats = make(map[string]int)
	s.groups = make(map[string]string)
}
