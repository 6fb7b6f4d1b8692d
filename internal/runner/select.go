package runner

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/swaglabs/shopcheck/internal/scenario"
)

// Shard picks the Index-th of Total contiguous slices of the selection.
// The zero value selects everything.
type Shard struct {
	Index int
	Total int
}

// ParseShard parses "current/total", for example "3/3"
func ParseShard(s string) (Shard, error) {
	if s == "" {
		return Shard{}, nil
	}
	cur, total, ok := strings.Cut(s, "/")
	if !ok {
		return Shard{}, fmt.Errorf("invalid shard %q: want current/total", s)
	}
	i, err := strconv.Atoi(cur)
	if err != nil {
		return Shard{}, fmt.Errorf("invalid shard %q: %w", s, err)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return Shard{}, fmt.Errorf("invalid shard %q: %w", s, err)
	}
	if n < 1 || i < 1 || i > n {
		return Shard{}, fmt.Errorf("invalid shard %q: current must be between 1 and total", s)
	}
	return Shard{Index: i, Total: n}, nil
}

func (s Shard) String() string {
	if s.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", s.Index, s.Total)
}

// Filter narrows a catalog. Empty fields match everything.
type Filter struct {
	// Tags keeps scenarios carrying any of the tags.
	Tags []string
	// Files keeps scenarios from any of the files.
	Files []string
	IDs   []string
	Shard Shard
}

// Select applies f to all, keeping catalog order
func Select(all []scenario.Scenario, f Filter) []scenario.Scenario {
	var out []scenario.Scenario
	for _, s := range all {
		if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, s.HasTag) {
			continue
		}
		if len(f.Files) > 0 && !slices.Contains(f.Files, s.File) {
			continue
		}
		if len(f.IDs) > 0 && !slices.Contains(f.IDs, s.ID) {
			continue
		}
		out = append(out, s)
	}
	if f.Shard.Total == 0 {
		return out
	}

	size, extra := len(out)/f.Shard.Total, len(out)%f.Shard.Total
	start := 0
	for i := 1; i < f.Shard.Index; i++ {
		start += size
		if i <= extra {
			start++
		}
	}
	end := start + size
	if f.Shard.Index <= extra {
		end++
	}
	return out[start:end]
}
