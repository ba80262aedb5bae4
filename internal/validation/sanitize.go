package validation

import (
	"regexp"
	"strings"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	lineBreakStripper = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
)

// Sanitize normalizes free text: unified line endings, no C0 control
// characters besides newline and tab, at most one blank line in a row, at most
// SanitizeMaxLength characters, no surrounding whitespace.
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(input string) string {
	s := strings.ReplaceAll(input, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	s = truncateRunes(s, SanitizeMaxLength)
	return strings.TrimSpace(s)
}

// SanitizeForm applies Sanitize to every free-text field of data.
func SanitizeForm(data models.ContactFormData) models.ContactFormData {
	data.Name = Sanitize(data.Name)
	data.Email = Sanitize(data.Email)
	data.Company = Sanitize(data.Company)
	data.Phone = Sanitize(data.Phone)
	data.ProjectType = Sanitize(data.ProjectType)
	data.Budget = Sanitize(data.Budget)
	data.Timeline = Sanitize(data.Timeline)
	data.Message = Sanitize(data.Message)
	data.PreferredContact = Sanitize(data.PreferredContact)
	return data
}

// EscapeHTML entity-encodes &, <, >, " and ' for interpolation into HTML.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// SingleLine collapses line breaks so user input can be placed in a mail
// header such as the subject.
func SingleLine(s string) string {
	return strings.TrimSpace(lineBreakStripper.Replace(s))
}

func truncateRunes(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
