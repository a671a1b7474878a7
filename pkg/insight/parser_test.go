package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportWellFormed(t *testing.T) {
	raw := `### Overall Performance Summary
The account is healthy and growing steadily.
Engagement is above average for its size.

### What's Working Well
- Reels consistently outperform photos
- Strong caption voice

### Areas for Improvement
- Posting cadence is irregular
- Bio lacks a call to action

### Actionable Recommendations
1. Post three reels per week
2. Add a link-in-bio call to action

### Content Ideas
- Behind the scenes series
`

	report := ParseReport(raw)

	assert.Equal(t, "The account is healthy and growing steadily. Engagement is above average for its size.", report.Summary)
	assert.Equal(t, []string{"Reels consistently outperform photos", "Strong caption voice"}, report.Strengths)
	assert.Equal(t, []string{"Posting cadence is irregular", "Bio lacks a call to action"}, report.Weaknesses)
	assert.Equal(t, []string{
		"Post three reels per week",
		"Add a link-in-bio call to action",
		"Behind the scenes series",
	}, report.Recommendations)
	assert.Equal(t, raw, report.Raw)
	assert.False(t, report.IsEmpty())
}

func TestParseReportBoldHeadings(t *testing.T) {
	raw := `**Summary**
Solid account.

**Strengths:**
- Good visuals

**Weaknesses**
- Few comments

**Recommendations**
- Ask questions in captions
`

	report := ParseReport(raw)

	assert.Equal(t, "Solid account.", report.Summary)
	assert.Equal(t, []string{"Good visuals"}, report.Strengths)
	assert.Equal(t, []string{"Few comments"}, report.Weaknesses)
	assert.Equal(t, []string{"Ask questions in captions"}, report.Recommendations)
}

func TestParseReportNoHeadings(t *testing.T) {
	raw := "The profile shows strong engagement overall.\nKeep doing what you are doing."

	report := ParseReport(raw)

	assert.Equal(t, raw, report.Summary)
	assert.Empty(t, report.Strengths)
	assert.Empty(t, report.Weaknesses)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, raw, report.Raw)
}

func TestParseReportOnlyUnrecognizedHeadings(t *testing.T) {
	raw := `### Account Analysis
The profile shows strong engagement overall.
Keep posting consistently.`

	report := ParseReport(raw)

	assert.Equal(t, raw, report.Summary, "text under unrecognized headings must not be lost")
	assert.Empty(t, report.Strengths)
	assert.Empty(t, report.Weaknesses)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, raw, report.Raw)
}

func TestParseReportEmpty(t *testing.T) {
	report := ParseReport("")
	assert.True(t, report.IsEmpty())

	report = ParseReport("   \n  ")
	assert.Equal(t, "", report.Summary)
}

func TestParseReportUnknownHeadingDropsContent(t *testing.T) {
	raw := `### Overall Performance Summary
Good account.

### Unrelated Section
This should not leak anywhere.

### What's Working Well
- Consistency
`

	report := ParseReport(raw)

	assert.Equal(t, "Good account.", report.Summary)
	assert.Equal(t, []string{"Consistency"}, report.Strengths)
	assert.NotContains(t, report.Summary, "leak")
}

func TestParseReportInlineBoldIsNotHeading(t *testing.T) {
	raw := `### What's Working Well
- **Reels:** short videos perform best
`

	report := ParseReport(raw)

	require.Len(t, report.Strengths, 1)
	assert.Equal(t, "Reels: short videos perform best", report.Strengths[0])
}

func TestStripBullet(t *testing.T) {
	assert.Equal(t, "item", stripBullet("- item"))
	assert.Equal(t, "item", stripBullet("* item"))
	assert.Equal(t, "item", stripBullet("1. item"))
	assert.Equal(t, "item", stripBullet("12) item"))
	assert.Equal(t, "bold item", stripBullet("- **bold** item"))
	assert.Equal(t, "plain", stripBullet("plain"))
}
