package models

// ProjectType values accepted in ContactFormData.ProjectType.
const (
	ProjectLanding      = "landing"
	ProjectStandard     = "standard"
	ProjectCustom       = "custom"
	ProjectConsultation = "consultation"
	ProjectMaintenance  = "maintenance"
	ProjectRedesign     = "redesign"
	ProjectECommerce    = "e-commerce"
	ProjectOther        = "other"
)

const (
	BudgetUnder5000    = "under-5000"
	Budget5000To10000  = "5000-10000"
	Budget10000To25000 = "10000-25000"
	Budget25000To50000 = "25000-50000"
	BudgetOver50000    = "over-50000"
	BudgetToDiscuss    = "to-discuss"
)

const (
	TimelineASAP          = "asap"
	TimelineOneMonth      = "1-month"
	TimelineTwoToThree    = "2-3-months"
	TimelineThreeToSix    = "3-6-months"
	TimelineFlexible      = "flexible"
	TimelinePlanningPhase = "planning-phase"
)

const (
	ContactEmail        = "email"
	ContactPhone        = "phone"
	ContactWhatsApp     = "whatsapp"
	ContactVideoCall    = "video-call"
	ContactInPerson     = "in-person"
	ContactNoPreference = "no-preference"
)

type InquiryStatus string

const (
	StatusNew          InquiryStatus = "new"
	StatusReviewed     InquiryStatus = "reviewed"
	StatusContacted    InquiryStatus = "contacted"
	StatusQualified    InquiryStatus = "qualified"
	StatusProposalSent InquiryStatus = "proposal-sent"
	StatusConverted    InquiryStatus = "converted"
	StatusDeclined     InquiryStatus = "declined"
	StatusClosed       InquiryStatus = "closed"
	StatusSpam         InquiryStatus = "spam"
)

type InquiryPriority string

const (
	PriorityLow    InquiryPriority = "low"
	PriorityMedium InquiryPriority = "medium"
	PriorityHigh   InquiryPriority = "high"
	PriorityUrgent InquiryPriority = "urgent"
)

var ProjectTypeLabels = map[string]string{
	ProjectLanding:      "Landing Page",
	ProjectStandard:     "Unternehmenswebsite",
	ProjectCustom:       "Individuelle Webanwendung",
	ProjectConsultation: "Beratung",
	ProjectMaintenance:  "Wartung & Support",
	ProjectRedesign:     "Website-Relaunch",
	ProjectECommerce:    "Online-Shop",
	ProjectOther:        "Sonstiges",
}

var BudgetLabels = map[string]string{
	BudgetUnder5000:    "unter 5.000 €",
	Budget5000To10000:  "5.000 - 10.000 €",
	Budget10000To25000: "10.000 - 25.000 €",
	Budget25000To50000: "25.000 - 50.000 €",
	BudgetOver50000:    "über 50.000 €",
	BudgetToDiscuss:    "Nach Absprache",
}

var TimelineLabels = map[string]string{
	TimelineASAP:          "So schnell wie möglich",
	TimelineOneMonth:      "Innerhalb eines Monats",
	TimelineTwoToThree:    "In 2-3 Monaten",
	TimelineThreeToSix:    "In 3-6 Monaten",
	TimelineFlexible:      "Flexibel",
	TimelinePlanningPhase: "Noch in der Planungsphase",
}

var ContactMethodLabels = map[string]string{
	ContactEmail:        "E-Mail",
	ContactPhone:        "Telefon",
	ContactWhatsApp:     "WhatsApp",
	ContactVideoCall:    "Videoanruf",
	ContactInPerson:     "Persönliches Treffen",
	ContactNoPreference: "Keine Präferenz",
}

var StatusLabels = map[InquiryStatus]string{
	StatusNew:          "Neu",
	StatusReviewed:     "Gesichtet",
	StatusContacted:    "Kontaktiert",
	StatusQualified:    "Qualifiziert",
	StatusProposalSent: "Angebot versendet",
	StatusConverted:    "Beauftragt",
	StatusDeclined:     "Abgelehnt",
	StatusClosed:       "Abgeschlossen",
	StatusSpam:         "Spam",
}

var PriorityLabels = map[InquiryPriority]string{
	PriorityLow:    "Niedrig",
	PriorityMedium: "Mittel",
	PriorityHigh:   "Hoch",
	PriorityUrgent: "Dringend",
}

// PriorityColors are used to highlight the priority in the notification mail.
var PriorityColors = map[InquiryPriority]string{
	PriorityLow:    "#6b7280",
	PriorityMedium: "#2563eb",
	PriorityHigh:   "#d97706",
	PriorityUrgent: "#dc2626",
}

// Label returns the display label for value, or value itself when unknown.
func Label(labels map[string]string, value string) string {
	if label, ok := labels[value]; ok {
		return label
	}
	return value
}
