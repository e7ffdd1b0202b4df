// Package refresh rebuilds the measured parts of the dashboard dataset
// from public USAJOBS Historic JOA postings: the monthly AI-mention trend,
// the per-family snapshot and the outside-IT share. The editorial parts of
// the document (takeaway, drilldowns, disciplines, sources) are left
// untouched; refresh only replaces labels, values and the as-of dates.
package refresh

import (
	"regexp"
	"strings"
)

// aiTitlePatterns is the transparent, editable AI term dictionary applied
// to posting titles.
var aiTitlePatterns = []string{
	`\bai\b`,
	`artificial intelligence`,
	`machine learning`,
	`\bml\b`,
	`generative ai`,
	`\bllm\b`,
	`prompt engineering`,
	`natural language processing`,
	`\bnlp\b`,
	`data science`,
	`model risk`,
}

var aiRE = regexp.MustCompile(`(?i)(?:` + strings.Join(aiTitlePatterns, ")|(?:") + `)`)

// Job families in classification priority order: the first family whose
// rule matches the title wins, so Data & Analytics outranks IT/CS for a
// title matching both.
var familyOrder = []string{
	"Data & Analytics",
	"Marketing",
	"Human Resources",
	"IT/CS",
}

var familyRules = map[string][]string{
	"Data & Analytics": {
		`data`, `analytics`, `statistic`, `research`, `operations research`,
		`biostat`, `economist`, `modeler`, `scientist`,
	},
	"Marketing": {
		`marketing`, `communications`, `brand`, `content`, `social media`,
		`seo`, `growth`, `digital marketing`, `market research`,
	},
	"Human Resources": {
		`human resources`, `\bhr\b`, `talent`, `recruit`, `people analytics`,
		`learning`, `organizational`, `workforce`,
	},
	"IT/CS": {
		`\bit\b`, `information technology`, `software`, `developer`, `engineer`,
		`cyber`, `security`, `cloud`, `systems`, `network`, `devops`,
	},
}

var familyRE = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(familyRules))
	for family, patterns := range familyRules {
		res[family] = regexp.MustCompile(`(?i)(?:` + strings.Join(patterns, ")|(?:") + `)`)
	}
	return res
}()

// itSeries is a conservative set of occupational series codes associated
// with IT/CS in federal hiring.
var itSeries = map[string]bool{
	"2210": true,
	"1550": true,
	"1560": true,
	"0854": true,
	"0855": true,
}

// FamilyOther is the catch-all bucket for unclassified titles.
const FamilyOther = "Other"

// IsAITitle reports whether a posting title matches the AI term dictionary.
func IsAITitle(title string) bool {
	return aiRE.MatchString(title)
}

// ClassifyFamily assigns a posting title to a job family, first match in
// priority order.
func ClassifyFamily(title string) string {
	for _, family := range familyOrder {
		if familyRE[family].MatchString(title) {
			return family
		}
	}
	return FamilyOther
}

// IsITSeries reports whether any of the posting's occupational series
// codes is an IT/CS series.
func IsITSeries(series []string) bool {
	for _, s := range series {
		if itSeries[s] {
			return true
		}
	}
	return false
}
