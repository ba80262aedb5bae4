// Package validation holds the authoritative field rules for contact
// submissions, the text sanitizer and the advisory spam heuristics.
package validation

import "regexp"

const (
	NameMinLength    = 2
	NameMaxLength    = 50
	EmailMaxLength   = 254
	MessageMinLength = 20
	MessageMaxLength = 1000

	// SanitizeMaxLength bounds every free-text field before validation.
	SanitizeMaxLength = 5000
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-ZäöüßÄÖÜ\s\-\.]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\+]?[0-9\s\-\(\)\/]{7,25}$`)
)

// Field names as they appear in the JSON body and the errors map.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldCompany        = "company"
	FieldPhone          = "phone"
	FieldProjectType    = "projectType"
	FieldBudget         = "budget"
	FieldTimeline       = "timeline"
	FieldMessage        = "message"
	FieldPrivacyConsent = "privacyConsent"
)

const (
	msgNameRequired    = "Bitte geben Sie Ihren Namen ein."
	msgNameTooShort    = "Der Name muss mindestens 2 Zeichen lang sein."
	msgNameTooLong     = "Der Name darf höchstens 50 Zeichen lang sein."
	msgNameInvalid     = "Der Name darf nur Buchstaben, Leerzeichen, Bindestriche und Punkte enthalten."
	msgEmailRequired   = "Bitte geben Sie Ihre E-Mail-Adresse ein."
	msgEmailTooLong    = "Die E-Mail-Adresse ist zu lang."
	msgEmailInvalid    = "Bitte geben Sie eine gültige E-Mail-Adresse ein."
	msgMessageRequired = "Bitte beschreiben Sie Ihr Anliegen."
	msgMessageTooShort = "Die Nachricht muss mindestens 20 Zeichen lang sein."
	msgMessageTooLong  = "Die Nachricht darf höchstens 1000 Zeichen lang sein."
	msgPrivacyRequired = "Bitte stimmen Sie der Datenschutzerklärung zu."
	msgPhoneInvalid    = "Bitte geben Sie eine gültige Telefonnummer ein."
	msgProjectType     = "Bitte wählen Sie eine Projektart aus."
	msgBudgetInvalid   = "Bitte wählen Sie ein gültiges Budget aus."
	msgTimelineInvalid = "Bitte wählen Sie einen gültigen Zeitrahmen aus."
)
