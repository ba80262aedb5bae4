package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

func validForm() models.ContactFormData {
	return models.ContactFormData{
		Name:           "Max Mustermann",
		Email:          "max@test.de",
		ProjectType:    models.ProjectStandard,
		Message:        "Ich benötige eine neue Website für mein Café mit Online-Reservierung.",
		PrivacyConsent: true,
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{"name ok", FieldName, "Jörg Müller-Lüdenscheidt", ""},
		{"name with dot", FieldName, "Dr. Anna Schmidt", ""},
		{"name empty", FieldName, "   ", msgNameRequired},
		{"name short", FieldName, " A ", msgNameTooShort},
		{"name long", FieldName, strings.Repeat("a", 51), msgNameTooLong},
		{"name digits", FieldName, "R2D2", msgNameInvalid},
		{"name markup", FieldName, "<b>Max</b>", msgNameInvalid},
		{"email ok", FieldEmail, " max@test.de ", ""},
		{"email empty", FieldEmail, "", msgEmailRequired},
		{"email no tld", FieldEmail, "max@test", msgEmailInvalid},
		{"email spaces", FieldEmail, "max mustermann@test.de", msgEmailInvalid},
		{"email long", FieldEmail, strings.Repeat("a", 250) + "@t.de", msgEmailTooLong},
		{"message ok", FieldMessage, strings.Repeat("x", 20), ""},
		{"message empty", FieldMessage, "", msgMessageRequired},
		{"message short", FieldMessage, "Zu kurz", msgMessageTooShort},
		{"message long", FieldMessage, strings.Repeat("x", 1001), msgMessageTooLong},
		{"message counts characters not bytes", FieldMessage, strings.Repeat("ü", 1000), ""},
		{"privacy true", FieldPrivacyConsent, true, ""},
		{"privacy false", FieldPrivacyConsent, false, msgPrivacyRequired},
		{"privacy wrong type", FieldPrivacyConsent, "true", msgPrivacyRequired},
		{"privacy missing", FieldPrivacyConsent, nil, msgPrivacyRequired},
		{"phone empty", FieldPhone, "", ""},
		{"phone ok", FieldPhone, "+49 (030) 123-456/78", ""},
		{"phone letters", FieldPhone, "call me maybe", msgPhoneInvalid},
		{"phone short", FieldPhone, "12345", msgPhoneInvalid},
		{"project type ok", FieldProjectType, "e-commerce", ""},
		{"project type empty", FieldProjectType, "", msgProjectType},
		{"project type unknown", FieldProjectType, "rocket", msgProjectType},
		{"budget empty", FieldBudget, "", ""},
		{"budget ok", FieldBudget, "over-50000", ""},
		{"budget unknown", FieldBudget, "a-million", msgBudgetInvalid},
		{"timeline ok", FieldTimeline, "2-3-months", ""},
		{"timeline unknown", FieldTimeline, "yesterday", msgTimelineInvalid},
		{"unknown field", "favouriteColour", "blue", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateField(tt.field, tt.value))
		})
	}
}

func TestValidateFormValid(t *testing.T) {
	assert.Empty(t, ValidateForm(validForm()))
}

func TestValidateFormCollectsAllErrors(t *testing.T) {
	errs := ValidateForm(models.ContactFormData{Budget: "nope"})

	assert.Equal(t, msgNameRequired, errs[FieldName])
	assert.Equal(t, msgEmailRequired, errs[FieldEmail])
	assert.Equal(t, msgMessageRequired, errs[FieldMessage])
	assert.Equal(t, msgPrivacyRequired, errs[FieldPrivacyConsent])
	assert.Equal(t, msgProjectType, errs[FieldProjectType])
	assert.Equal(t, msgBudgetInvalid, errs[FieldBudget])
	assert.NotContains(t, errs, FieldPhone)
	assert.NotContains(t, errs, FieldTimeline)
}

func genValidForm() *rapid.Generator[models.ContactFormData] {
	projectTypes := make([]string, 0, len(models.ProjectTypeLabels))
	for k := range models.ProjectTypeLabels {
		projectTypes = append(projectTypes, k)
	}
	return rapid.Custom(func(t *rapid.T) models.ContactFormData {
		return models.ContactFormData{
			Name:           rapid.StringMatching(`[a-zA-ZäöüßÄÖÜ][a-zA-ZäöüßÄÖÜ .\-]{0,48}[a-zA-Z]`).Draw(t, "name"),
			Email:          rapid.StringMatching(`[a-z0-9._]{1,20}@[a-z0-9]{1,20}\.[a-z]{2,6}`).Draw(t, "email"),
			ProjectType:    rapid.SampledFrom(projectTypes).Draw(t, "projectType"),
			Message:        rapid.StringMatching(`[a-zA-Z0-9äöü][a-zA-Z0-9äöü ,.!?]{18,998}[a-z]`).Draw(t, "message"),
			PrivacyConsent: true,
		}
	})
}

func TestProperty_ValidFormsHaveNoErrors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		form := genValidForm().Draw(t, "form")
		if errs := ValidateForm(form); len(errs) != 0 {
			t.Fatalf("expected no errors for %+v, got %v", form, errs)
		}
	})
}

func TestProperty_MissingPrivacyConsentAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		form := models.ContactFormData{
			Name:        rapid.String().Draw(t, "name"),
			Email:       rapid.String().Draw(t, "email"),
			ProjectType: rapid.String().Draw(t, "projectType"),
			Message:     rapid.String().Draw(t, "message"),
		}
		if rapid.Bool().Draw(t, "useValidFields") {
			form = genValidForm().Draw(t, "form")
		}
		form.PrivacyConsent = false

		errs := ValidateForm(form)
		if errs[FieldPrivacyConsent] == "" {
			t.Fatalf("privacy error missing for %+v", form)
		}
	})
}
