package insight

import (
	"strings"

	"instalytics/pkg/analytics"
)

// reportSection identifies which part of the report a heading opens
type reportSection int

const (
	sectionNone reportSection = iota
	sectionSummary
	sectionStrengths
	sectionWeaknesses
	sectionRecommendations
)

// ParseReport splits the model's free-form Markdown answer into report
// fields by matching heading keywords. The upstream gives no format
// guarantee, so parsing is lenient: when no recognized heading appears the
// whole text lands in Summary. Raw always carries the untouched response.
func ParseReport(raw string) analytics.InsightReport {
	report := analytics.InsightReport{Raw: raw}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return report
	}

	section := sectionNone
	var summary []string

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if next, ok := classifyHeading(line); ok {
			section = next
			continue
		}

		switch section {
		case sectionSummary:
			summary = append(summary, stripBullet(line))
		case sectionStrengths:
			report.Strengths = append(report.Strengths, stripBullet(line))
		case sectionWeaknesses:
			report.Weaknesses = append(report.Weaknesses, stripBullet(line))
		case sectionRecommendations:
			report.Recommendations = append(report.Recommendations, stripBullet(line))
		}
	}

	report.Summary = strings.Join(summary, " ")

	// Nothing matched a recognized section, so fall back to the whole
	// text rather than returning an empty report
	if report.Summary == "" && len(report.Strengths) == 0 &&
		len(report.Weaknesses) == 0 && len(report.Recommendations) == 0 {
		report.Summary = trimmed
	}

	return report
}

// classifyHeading reports which section a Markdown or bold heading line
// opens. Non-heading lines return ok=false.
func classifyHeading(line string) (reportSection, bool) {
	if !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "**") {
		return sectionNone, false
	}
	// A bold heading is the whole line, not inline emphasis
	if strings.HasPrefix(line, "**") && !strings.HasSuffix(strings.TrimSuffix(line, ":"), "**") {
		return sectionNone, false
	}

	heading := strings.ToLower(strings.Trim(line, "#* \t:"))
	switch {
	case strings.Contains(heading, "summary"):
		return sectionSummary, true
	case strings.Contains(heading, "working well"), strings.Contains(heading, "strength"):
		return sectionStrengths, true
	case strings.Contains(heading, "improvement"), strings.Contains(heading, "weakness"):
		return sectionWeaknesses, true
	case strings.Contains(heading, "recommendation"), strings.Contains(heading, "content idea"):
		return sectionRecommendations, true
	default:
		return sectionNone, true
	}
}

// stripBullet removes a leading list marker ("-", "*", "1.") and bold
// wrapping from a content line
func stripBullet(line string) string {
	line = strings.TrimLeft(line, "-*• \t")

	// Numbered list markers like "1." or "2)"
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}

	line = strings.ReplaceAll(line, "**", "")
	return strings.TrimSpace(line)
}
