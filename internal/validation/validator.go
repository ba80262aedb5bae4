package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

// ValidateField checks a single field and returns a German error message,
// or "" when the value is acceptable. Unknown fields are always accepted.
func ValidateField(field string, value any) string {
	switch field {
	case FieldName:
		return validateName(asString(value))
	case FieldEmail:
		return validateEmail(asString(value))
	case FieldMessage:
		return validateMessage(asString(value))
	case FieldPrivacyConsent:
		if consent, ok := value.(bool); !ok || !consent {
			return msgPrivacyRequired
		}
	case FieldPhone:
		if phone := strings.TrimSpace(asString(value)); phone != "" && !phonePattern.MatchString(phone) {
			return msgPhoneInvalid
		}
	case FieldProjectType:
		if _, ok := models.ProjectTypeLabels[strings.TrimSpace(asString(value))]; !ok {
			return msgProjectType
		}
	case FieldBudget:
		if budget := strings.TrimSpace(asString(value)); budget != "" {
			if _, ok := models.BudgetLabels[budget]; !ok {
				return msgBudgetInvalid
			}
		}
	case FieldTimeline:
		if timeline := strings.TrimSpace(asString(value)); timeline != "" {
			if _, ok := models.TimelineLabels[timeline]; !ok {
				return msgTimelineInvalid
			}
		}
	}
	return ""
}

// ValidateForm runs every rule against data and returns the errors keyed by
// field name. An empty map means the submission is valid.
func ValidateForm(data models.ContactFormData) map[string]string {
	checks := []struct {
		field string
		value any
	}{
		{FieldName, data.Name},
		{FieldEmail, data.Email},
		{FieldPhone, data.Phone},
		{FieldProjectType, data.ProjectType},
		{FieldBudget, data.Budget},
		{FieldTimeline, data.Timeline},
		{FieldMessage, data.Message},
		{FieldPrivacyConsent, data.PrivacyConsent},
	}

	errs := make(map[string]string)
	for _, check := range checks {
		if msg := ValidateField(check.field, check.value); msg != "" {
			errs[check.field] = msg
		}
	}
	return errs
}

func validateName(value string) string {
	name := strings.TrimSpace(value)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return msgNameRequired
	case n < NameMinLength:
		return msgNameTooShort
	case n > NameMaxLength:
		return msgNameTooLong
	case !namePattern.MatchString(name):
		return msgNameInvalid
	}
	return ""
}

func validateEmail(value string) string {
	email := strings.TrimSpace(value)
	switch {
	case email == "":
		return msgEmailRequired
	case utf8.RuneCountInString(email) > EmailMaxLength:
		return msgEmailTooLong
	case !emailPattern.MatchString(email):
		return msgEmailInvalid
	}
	return ""
}

func validateMessage(value string) string {
	message := strings.TrimSpace(value)
	switch n := utf8.RuneCountInString(message); {
	case n == 0:
		return msgMessageRequired
	case n < MessageMinLength:
		return msgMessageTooShort
	case n > MessageMaxLength:
		return msgMessageTooLong
	}
	return ""
}

func asString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
