package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

func TestDetectSpam(t *testing.T) {
	tests := []struct {
		name     string
		data     models.ContactFormData
		wantSpam bool
	}{
		{
			name:     "regular inquiry",
			data:     validForm(),
			wantSpam: false,
		},
		{
			name: "two links are fine",
			data: models.ContactFormData{
				Email:   "max@test.de",
				Message: "Aktuell: https://alt.example.de und Vorbild www.vorbild.de, bitte ansehen.",
			},
			wantSpam: false,
		},
		{
			name: "too many links",
			data: models.ContactFormData{
				Email:   "max@test.de",
				Message: "See https://a.example https://b.example http://c.example now",
			},
			wantSpam: true,
		},
		{
			name: "spam phrase",
			data: models.ContactFormData{
				Email:   "max@test.de",
				Message: "We offer cheap SEO services to get you on the first page of Google.",
			},
			wantSpam: true,
		},
		{
			name: "disposable domain",
			data: models.ContactFormData{
				Email:   "someone@mailinator.com",
				Message: "Ich hätte gerne ein Angebot für eine Website.",
			},
			wantSpam: true,
		},
		{
			name: "greeting only",
			data: models.ContactFormData{
				Email:   "max@test.de",
				Message: "Hello.",
			},
			wantSpam: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectSpam(tt.data)
			assert.Equal(t, tt.wantSpam, result.IsSpam, result.Reasons)
			assert.Equal(t, tt.wantSpam, len(result.Reasons) > 0)
		})
	}
}

func TestMessageQuality(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		q := MessageQuality("")
		assert.Equal(t, 0, q.Score)
		assert.Empty(t, q.Factors)
	})

	t.Run("short message with one keyword", func(t *testing.T) {
		// 56 chars, 9 words, keyword "website", one sentence
		q := MessageQuality("Ich brauche eine neue Website für meine kleine Bäckerei.")
		assert.Equal(t, 20, q.Score)
	})

	t.Run("detailed polite message", func(t *testing.T) {
		msg := "Guten Tag, wir planen einen Relaunch unserer Website mit integriertem Online-Shop. " +
			"Das Budget liegt bei etwa 15.000 Euro und das Projekt soll bis Sommer live sein. " +
			"Wichtig sind uns SEO und ein einfaches CMS. Vielen Dank und freundliche Grüße!"
		q := MessageQuality(msg)
		assert.Equal(t, 70, q.Score)
		assert.Contains(t, q.Factors, "Höflicher Ton")
		assert.Contains(t, q.Factors, "Klarer Geschäftsbezug")
	})
}

func TestProperty_MessageQualityBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOf(rapid.SampledFrom(append(businessKeywords, "bitte", "danke.", "hallo!", "x"))).Draw(t, "words")
		q := MessageQuality(strings.Join(words, " "))
		if q.Score < 0 || q.Score > 100 {
			t.Fatalf("score out of range: %d", q.Score)
		}
	})
}
