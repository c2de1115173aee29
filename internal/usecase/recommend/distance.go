package recommend

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var distanceNumber = regexp.MustCompile(`-?\d+(\.\d+)?`)

const metersPerMile = 1609.34

// DistanceParser converts free-form distance text ("0.5 km away", "750 m",
// "1.2 mi") into meters. Results are memoized by the exact input string; the
// memo never evicts, which is acceptable because input cardinality is
// bounded by the distinct distance strings rendered in a session.
type DistanceParser struct {
	mu     sync.Mutex
	memo   map[string]*float64
	parses int
}

func NewDistanceParser() *DistanceParser {
	return &DistanceParser{memo: make(map[string]*float64)}
}

// Parse returns the distance in meters, or nil when the text has no numeric
// prefix.
func (p *DistanceParser) Parse(text string) *float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.memo[text]; ok {
		return cached
	}

	result := parseDistance(text)
	p.parses++
	p.memo[text] = result
	return result
}

func parseDistance(text string) *float64 {
	match := distanceNumber.FindString(text)
	if match == "" {
		return nil
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}

	// Miles are checked first so the "m" inside "mile"/"mi" is not misread
	// as meters.
	lower := strings.ToLower(text)
	var meters float64
	switch {
	case strings.Contains(lower, "mi"):
		meters = value * metersPerMile
	case strings.Contains(lower, "km"):
		meters = value * 1000
	default:
		meters = value
	}
	return &meters
}
