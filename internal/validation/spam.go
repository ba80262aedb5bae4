package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

const maxURLs = 2

var (
	urlPattern = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)

	spamPhrases = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(viagra|cialis|casino|lottery|lotto)\b`),
		regexp.MustCompile(`(?i)\b(crypto|bitcoin|forex)\s+(investment|trading|opportunity)`),
		regexp.MustCompile(`(?i)\bseo\s+(services?|package|ranking)\b`),
		regexp.MustCompile(`(?i)\b(first|top)\s+page\s+(of|on)\s+google\b`),
		regexp.MustCompile(`(?i)\bguaranteed\s+(traffic|ranking|results)\b`),
		regexp.MustCompile(`(?i)\bmake\s+money\s+(fast|online)\b`),
		regexp.MustCompile(`(?i)\bclick\s+here\b`),
		regexp.MustCompile(`(?i)\bbuy\s+(now|cheap)\b`),
		regexp.MustCompile(`(?i)\b(backlinks?|link\s+building)\b`),
	}

	disposableDomains = regexp.MustCompile(`(?i)@([a-z0-9-]+\.)*(10minutemail|guerrillamail|mailinator|tempmail|temp-mail|throwawaymail|trashmail|yopmail|sharklasers|getnada|dispostable)\.[a-z.]+$`)

	greetingOnly = regexp.MustCompile(`(?i)^(hi|hello|hey|test)\.?$`)

	sentenceSplit = regexp.MustCompile(`[.!?]+`)

	businessKeywords = []string{
		"website", "webseite", "homepage", "webshop", "online-shop", "onlineshop", "shop",
		"e-commerce", "design", "seo", "cms", "wordpress", "app", "anwendung",
		"projekt", "budget", "relaunch", "redesign", "hosting", "wartung",
		"reservierung", "buchung", "kunden", "unternehmen", "firma", "marketing",
	}

	politenessWords = []string{"bitte", "danke", "vielen dank", "grüße", "gruß", "freundlich", "please", "thank"}
)

// DetectSpam flags submissions that look automated or promotional. The result
// is advisory and never blocks a submission on its own.
func DetectSpam(data models.ContactFormData) models.SpamResult {
	result := models.SpamResult{Reasons: []string{}}

	if n := len(urlPattern.FindAllStringIndex(data.Message, -1)); n > maxURLs {
		result.Reasons = append(result.Reasons, "Zu viele Links in der Nachricht")
	}

	for _, phrase := range spamPhrases {
		if phrase.MatchString(data.Message) || phrase.MatchString(data.Company) {
			result.Reasons = append(result.Reasons, "Verdächtige Formulierung: "+phrase.FindString(data.Message+" "+data.Company))
			break
		}
	}

	if disposableDomains.MatchString(strings.TrimSpace(data.Email)) {
		result.Reasons = append(result.Reasons, "Wegwerf-E-Mail-Adresse")
	}

	message := strings.TrimSpace(data.Message)
	if utf8.RuneCountInString(message) < MessageMinLength && greetingOnly.MatchString(message) {
		result.Reasons = append(result.Reasons, "Nachricht ohne Inhalt")
	}

	result.IsSpam = len(result.Reasons) > 0
	return result
}

// MessageQuality scores a message from 0 to 100 by length, word count,
// business vocabulary, structure and tone.
func MessageQuality(message string) models.QualityResult {
	result := models.QualityResult{Factors: []string{}}
	text := strings.TrimSpace(message)
	lower := strings.ToLower(text)

	switch length := utf8.RuneCountInString(text); {
	case length >= 100:
		result.Score += 20
		result.Factors = append(result.Factors, "Ausführliche Nachricht")
	case length >= 50:
		result.Score += 10
		result.Factors = append(result.Factors, "Angemessene Länge")
	}

	switch words := len(strings.Fields(text)); {
	case words >= 20:
		result.Score += 15
		result.Factors = append(result.Factors, "Detaillierte Beschreibung")
	case words >= 10:
		result.Score += 10
		result.Factors = append(result.Factors, "Grundlegende Beschreibung")
	}

	keywords := 0
	for _, keyword := range businessKeywords {
		if strings.Contains(lower, keyword) {
			keywords++
		}
	}
	switch {
	case keywords >= 3:
		result.Score += 20
		result.Factors = append(result.Factors, "Klarer Geschäftsbezug")
	case keywords >= 1:
		result.Score += 10
		result.Factors = append(result.Factors, "Geschäftsbezug")
	}

	sentences := 0
	for _, part := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	if sentences >= 3 {
		result.Score += 10
		result.Factors = append(result.Factors, "Strukturierte Nachricht")
	}

	for _, word := range politenessWords {
		if strings.Contains(lower, word) {
			result.Score += 5
			result.Factors = append(result.Factors, "Höflicher Ton")
			break
		}
	}

	result.Score = clamp(result.Score, 0, 100)
	return result
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
