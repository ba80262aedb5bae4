package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

func TestLeadScore(t *testing.T) {
	tests := []struct {
		name string
		data models.ContactFormData
		want int
	}{
		{
			// base 50 + standard 20 + budget fallback 2 + timeline fallback 2
			name: "minimal standard inquiry",
			data: models.ContactFormData{ProjectType: models.ProjectStandard, Message: "kurz"},
			want: 74,
		},
		{
			// 50 + 0 + 2 + 2
			name: "consultation earns no project points",
			data: models.ContactFormData{ProjectType: models.ProjectConsultation},
			want: 54,
		},
		{
			// 50 + 10 + 5 + 8 + 5 (phone) + 5 (message > 100)
			name: "landing page with phone",
			data: models.ContactFormData{
				ProjectType: models.ProjectLanding,
				Budget:      models.Budget5000To10000,
				Timeline:    models.TimelineOneMonth,
				Phone:       "+49 30 1234567",
				Message:     strings.Repeat("a", 101),
			},
			want: 83,
		},
		{
			// 50 + 5 + 2 (under-5000) + 5 + 10 (company) = 72
			name: "other with company",
			data: models.ContactFormData{
				ProjectType: models.ProjectOther,
				Budget:      models.BudgetUnder5000,
				Timeline:    models.TimelineTwoToThree,
				Company:     "Bäckerei Schulz",
			},
			want: 72,
		},
		{
			name: "everything maxed is clamped",
			data: models.ContactFormData{
				ProjectType:      models.ProjectCustom,
				Budget:           models.BudgetOver50000,
				Timeline:         models.TimelineASAP,
				Company:          "ACME GmbH",
				Phone:            "0301234567",
				Message:          strings.Repeat("a", 201),
				MarketingConsent: true,
			},
			want: 100,
		},
		{
			name: "whitespace company does not count",
			data: models.ContactFormData{ProjectType: models.ProjectStandard, Company: "   "},
			want: 74,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LeadScore(tt.data))
		})
	}
}

func TestDeterminePriority(t *testing.T) {
	tests := []struct {
		name  string
		score int
		data  models.ContactFormData
		want  models.InquiryPriority
	}{
		{"high score beats flexible timeline", 85, models.ContactFormData{Timeline: models.TimelineFlexible}, models.PriorityUrgent},
		{"asap overrides low score", 40, models.ContactFormData{Timeline: models.TimelineASAP}, models.PriorityUrgent},
		{"score 80 boundary", 80, models.ContactFormData{}, models.PriorityUrgent},
		{"score 79", 79, models.ContactFormData{}, models.PriorityHigh},
		{"large budget", 10, models.ContactFormData{Budget: models.BudgetOver50000}, models.PriorityHigh},
		{"mid-large budget", 10, models.ContactFormData{Budget: models.Budget25000To50000}, models.PriorityHigh},
		{"score 65 boundary", 65, models.ContactFormData{}, models.PriorityHigh},
		{"score 64", 64, models.ContactFormData{Budget: models.Budget10000To25000}, models.PriorityMedium},
		{"score 50 boundary", 50, models.ContactFormData{}, models.PriorityMedium},
		{"score 49", 49, models.ContactFormData{}, models.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeterminePriority(tt.score, tt.data))
		})
	}
}

func TestProperty_LeadScoreDeterministicAndBounded(t *testing.T) {
	pick := func(labels map[string]string) []string {
		out := []string{""}
		for k := range labels {
			out = append(out, k)
		}
		return out
	}
	projectTypes := pick(models.ProjectTypeLabels)
	budgets := pick(models.BudgetLabels)
	timelines := pick(models.TimelineLabels)

	rapid.Check(t, func(t *rapid.T) {
		data := models.ContactFormData{
			ProjectType:      rapid.SampledFrom(projectTypes).Draw(t, "projectType"),
			Budget:           rapid.SampledFrom(budgets).Draw(t, "budget"),
			Timeline:         rapid.SampledFrom(timelines).Draw(t, "timeline"),
			Company:          rapid.String().Draw(t, "company"),
			Phone:            rapid.String().Draw(t, "phone"),
			Message:          rapid.String().Draw(t, "message"),
			MarketingConsent: rapid.Bool().Draw(t, "marketing"),
		}

		score := LeadScore(data)
		if score < 0 || score > 100 {
			t.Fatalf("score %d out of range for %+v", score, data)
		}
		if again := LeadScore(data); again != score {
			t.Fatalf("score not deterministic: %d vs %d", score, again)
		}
	})
}
