// Package scoring rates accepted inquiries for triage.
package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

const baseScore = 50

var projectTypePoints = map[string]int{
	models.ProjectCustom:    25,
	models.ProjectStandard:  20,
	models.ProjectECommerce: 15,
	models.ProjectLanding:   10,
	models.ProjectOther:     5,
}

var budgetPoints = map[string]int{
	models.BudgetOver50000:    20,
	models.Budget25000To50000: 15,
	models.Budget10000To25000: 10,
	models.Budget5000To10000:  5,
}

var timelinePoints = map[string]int{
	models.TimelineASAP:       10,
	models.TimelineOneMonth:   8,
	models.TimelineTwoToThree: 5,
}

const (
	fallbackBudgetPoints   = 2
	fallbackTimelinePoints = 2
)

// LeadScore estimates the value of an inquiry on a 0-100 scale. The result
// depends only on data.
func LeadScore(data models.ContactFormData) int {
	score := baseScore

	score += projectTypePoints[data.ProjectType]

	if points, ok := budgetPoints[data.Budget]; ok {
		score += points
	} else {
		score += fallbackBudgetPoints
	}

	if points, ok := timelinePoints[data.Timeline]; ok {
		score += points
	} else {
		score += fallbackTimelinePoints
	}

	if strings.TrimSpace(data.Company) != "" {
		score += 10
	}
	if strings.TrimSpace(data.Phone) != "" {
		score += 5
	}

	switch length := utf8.RuneCountInString(data.Message); {
	case length > 200:
		score += 10
	case length > 100:
		score += 5
	}

	if data.MarketingConsent {
		score += 5
	}

	return clamp(score, 0, 100)
}

// DeterminePriority maps a lead score to a triage tier. Branches are checked
// from most to least urgent and the first match wins.
func DeterminePriority(score int, data models.ContactFormData) models.InquiryPriority {
	switch {
	case score >= 80 || data.Timeline == models.TimelineASAP:
		return models.PriorityUrgent
	case score >= 65 || data.Budget == models.BudgetOver50000 || data.Budget == models.Budget25000To50000:
		return models.PriorityHigh
	case score >= 50:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
