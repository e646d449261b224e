package strategies

import (
	"fmt"
	"strings"
)

const (
	headerMinLen       = 20
	continuationMinLen = 30
	descriptionCap     = 200
)

// ExtractHeuristic scans unstructured model text for strategy-like lines.
// The result is always normalized to SetSize entries.
func ExtractHeuristic(text string) []Strategy {
	var (
		found   []Strategy
		current *Strategy
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if (strings.Contains(lower, "strategy") || strings.Contains(lower, "recommendation")) && len(line) > headerMinLen {
			if current != nil {
				found = append(found, *current)
				if len(found) == SetSize {
					current = nil
					break
				}
			}
			n := len(found) + 1
			s := headerStrategy(n, line)
			current = &s
			continue
		}
		if current != nil && len(line) > continuationMinLen && len(current.Description) < descriptionCap {
			current.Description += " " + line
		}
	}
	if current != nil && len(found) < SetSize {
		found = append(found, *current)
	}
	return Normalize(found, nil)
}

func headerStrategy(n int, line string) Strategy {
	return Strategy{
		ID:                 n,
		Title:              fmt.Sprintf("Strategy %d", n),
		Description:        strings.TrimSpace(strings.ReplaceAll(line, fmt.Sprintf("Strategy %d:", n), "")),
		Category:           Categories[n%len(Categories)],
		Priority:           heuristicPriority(n),
		ImplementationTime: TimeTwoToFourWeeks,
		ExpectedImpact:     "Improved social media performance",
		MetricsToTrack:     []string{"Engagement Rate", "Reach"},
	}
}

func heuristicPriority(n int) string {
	switch {
	case n <= 2:
		return PriorityHigh
	case n <= 4:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
