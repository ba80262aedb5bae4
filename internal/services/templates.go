package services

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/madeofpendletonwool/inquiryd/internal/validation"
)

var templateFuncs = map[string]any{
	"nl2br": func(s string) htmltemplate.HTML {
		return htmltemplate.HTML(strings.ReplaceAll(validation.EscapeHTML(s), "\n", "<br>"))
	},
	"yesno": func(b bool) string {
		if b {
			return "Ja"
		}
		return "Nein"
	},
}

const notificationHTML = `<!DOCTYPE html>
<html lang="de">
<head>
    <meta charset="UTF-8">
    <title>Neue Projektanfrage</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 640px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1f2937; color: white; padding: 20px; }
        .content { padding: 20px; background-color: #f9fafb; }
        .priority { display: inline-block; padding: 4px 12px; border-radius: 12px; color: white; font-weight: bold; }
        .data-table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        .data-table th, .data-table td { border: 1px solid #e5e7eb; padding: 8px; text-align: left; vertical-align: top; }
        .data-table th { background-color: #f3f4f6; width: 35%; }
        .message { background-color: white; border-left: 4px solid #2563eb; padding: 15px; }
        .warning { background-color: #fef2f2; border-left: 4px solid #dc2626; padding: 10px 15px; margin: 20px 0; }
        .footer { padding: 20px; color: #6b7280; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Neue Projektanfrage</h1>
            <p>{{.ProjectType}} von {{.Inquiry.Name}}</p>
        </div>
        <div class="content">
            <p>
                <span class="priority" style="background-color: {{.PriorityColor}};">Priorität: {{.Priority}}</span>
                &nbsp;Lead-Score: <strong>{{.Inquiry.LeadScore}}/100</strong>
            </p>
            {{if .Inquiry.Spam.IsSpam}}
            <div class="warning">
                <strong>Möglicher Spam:</strong>
                <ul>{{range .Inquiry.Spam.Reasons}}<li>{{.}}</li>{{end}}</ul>
            </div>
            {{end}}
            <table class="data-table">
                <tr><th>Name</th><td>{{.Inquiry.Name}}</td></tr>
                <tr><th>E-Mail</th><td><a href="mailto:{{.Inquiry.Email}}">{{.Inquiry.Email}}</a></td></tr>
                {{if .Inquiry.Company}}<tr><th>Unternehmen</th><td>{{.Inquiry.Company}}</td></tr>{{end}}
                {{if .Phone}}<tr><th>Telefon</th><td>{{.Phone}}</td></tr>{{end}}
                <tr><th>Projektart</th><td>{{.ProjectType}}</td></tr>
                {{if .Budget}}<tr><th>Budget</th><td>{{.Budget}}</td></tr>{{end}}
                {{if .Timeline}}<tr><th>Zeitrahmen</th><td>{{.Timeline}}</td></tr>{{end}}
                {{if .PreferredContact}}<tr><th>Bevorzugter Kontakt</th><td>{{.PreferredContact}}</td></tr>{{end}}
                <tr><th>Datenschutz</th><td>{{yesno .Inquiry.PrivacyConsent}}</td></tr>
                <tr><th>Marketing</th><td>{{yesno .Inquiry.MarketingConsent}}</td></tr>
                <tr><th>Nachrichtenqualität</th><td>{{.Inquiry.Quality.Score}}/100</td></tr>
                <tr><th>Eingegangen</th><td>{{.Submitted}} Uhr</td></tr>
                <tr><th>Anfrage-ID</th><td>{{.Inquiry.ID}}</td></tr>
            </table>
            <h3>Nachricht</h3>
            <div class="message">{{nl2br .Inquiry.Message}}</div>
        </div>
        <div class="footer">
            <p>IP: {{.Inquiry.IPAddress}} | Quelle: {{.Inquiry.Source}}{{if .Inquiry.Tags}} | Tags: {{join .Inquiry.Tags ", "}}{{end}}</p>
        </div>
    </div>
</body>
</html>`

const notificationText = `NEUE PROJEKTANFRAGE

Priorität: {{.Priority}}
Lead-Score: {{.Inquiry.LeadScore}}/100
{{- if .Inquiry.Spam.IsSpam}}
Möglicher Spam: {{join .Inquiry.Spam.Reasons "; "}}
{{- end}}

Name: {{.Inquiry.Name}}
E-Mail: {{.Inquiry.Email}}
{{- if .Inquiry.Company}}
Unternehmen: {{.Inquiry.Company}}
{{- end}}
{{- if .Phone}}
Telefon: {{.Phone}}
{{- end}}
Projektart: {{.ProjectType}}
{{- if .Budget}}
Budget: {{.Budget}}
{{- end}}
{{- if .Timeline}}
Zeitrahmen: {{.Timeline}}
{{- end}}
{{- if .PreferredContact}}
Bevorzugter Kontakt: {{.PreferredContact}}
{{- end}}
Datenschutz: {{yesno .Inquiry.PrivacyConsent}}
Marketing: {{yesno .Inquiry.MarketingConsent}}
Nachrichtenqualität: {{.Inquiry.Quality.Score}}/100
Eingegangen: {{.Submitted}} Uhr
Anfrage-ID: {{.Inquiry.ID}}

Nachricht:
{{.Inquiry.Message}}
`

const confirmationHTML = `<!DOCTYPE html>
<html lang="de">
<head>
    <meta charset="UTF-8">
    <title>Ihre Anfrage ist eingegangen</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2563eb; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9fafb; }
        .highlight { background-color: #eff6ff; padding: 15px; border-left: 4px solid #2563eb; margin: 20px 0; }
        .contact { background-color: white; padding: 15px; border: 1px solid #e5e7eb; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; color: #6b7280; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Vielen Dank für Ihre Anfrage!</h1>
        </div>
        <div class="content">
            <p>Hallo {{.Inquiry.Name}},</p>
            <p>vielen Dank für Ihr Interesse. Ihre Anfrage zum Thema <strong>{{.ProjectType}}</strong> ist bei mir eingegangen.</p>

            <div class="highlight">
                <h3>So geht es weiter:</h3>
                <ol>{{range .NextSteps}}<li>{{.}}</li>{{end}}</ol>
            </div>

            <div class="contact">
                <h3>Direkter Kontakt</h3>
                <p>
                    {{if .Site.OwnerName}}{{.Site.OwnerName}}<br>{{end}}
                    {{if .Site.Email}}E-Mail: <a href="mailto:{{.Site.Email}}">{{.Site.Email}}</a><br>{{end}}
                    {{if .Site.Phone}}Telefon: {{.Site.Phone}}<br>{{end}}
                    {{if .Site.Website}}Web: <a href="{{.Site.Website}}">{{.Site.Website}}</a>{{end}}
                </p>
            </div>

            <p><strong>Ihre Anfrage-ID:</strong> {{.Inquiry.ID}}</p>
            <p>Viele Grüße{{if .Site.OwnerName}}<br>{{.Site.OwnerName}}{{end}}</p>
        </div>
        <div class="footer">
            <p>Diese E-Mail wurde automatisch versendet, weil Sie das Kontaktformular ausgefüllt haben.</p>
        </div>
    </div>
</body>
</html>`

const confirmationText = `Hallo {{.Inquiry.Name}},

vielen Dank für Ihr Interesse. Ihre Anfrage zum Thema "{{.ProjectType}}" ist bei mir eingegangen.

So geht es weiter:
{{range $i, $step := .NextSteps}}{{inc $i}}. {{$step}}
{{end}}
Direkter Kontakt:
{{- if .Site.OwnerName}}
{{.Site.OwnerName}}
{{- end}}
{{- if .Site.Email}}
E-Mail: {{.Site.Email}}
{{- end}}
{{- if .Site.Phone}}
Telefon: {{.Site.Phone}}
{{- end}}
{{- if .Site.Website}}
Web: {{.Site.Website}}
{{- end}}

Ihre Anfrage-ID: {{.Inquiry.ID}}

Viele Grüße
{{.Site.OwnerName}}
`

type emailTemplates struct {
	notificationHTML *htmltemplate.Template
	notificationText *texttemplate.Template
	confirmationHTML *htmltemplate.Template
	confirmationText *texttemplate.Template
}

func parseTemplates() *emailTemplates {
	funcs := map[string]any{
		"join": strings.Join,
		"inc":  func(i int) int { return i + 1 },
	}
	for name, fn := range templateFuncs {
		funcs[name] = fn
	}

	return &emailTemplates{
		notificationHTML: htmltemplate.Must(htmltemplate.New("notification.html").Funcs(funcs).Parse(notificationHTML)),
		notificationText: texttemplate.Must(texttemplate.New("notification.txt").Funcs(funcs).Parse(notificationText)),
		confirmationHTML: htmltemplate.Must(htmltemplate.New("confirmation.html").Funcs(funcs).Parse(confirmationHTML)),
		confirmationText: texttemplate.Must(texttemplate.New("confirmation.txt").Funcs(funcs).Parse(confirmationText)),
	}
}
