package mailer

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/rotisserie/eris"

	"github.com/richards-law/intake-cli/internal/model"
)

const emailSubject = "Your Accident Case - Next Steps from Richards & Law"

const textBodyTemplate = `Dear {{.ClientFirstName}},

We are reaching out regarding the motor vehicle accident on {{.AccidentDateFormatted}} at {{.AccidentLocation}}.

{{.AccidentDescription}}

Our firm would like to represent you in pursuing compensation for your injuries. Attached you will find our retainer agreement for your review.

The next step is a {{.BookingType}} consultation with one of our attorneys. Please pick a time that works for you:

{{.BookingLink}}

There is no fee unless we recover on your behalf.

Sincerely,
Richards & Law
Attorneys at Law
`

const htmlBodyTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #1a1a2e; max-width: 600px; margin: 0 auto;">
  <p>Dear {{.ClientFirstName}},</p>
  <p>We are reaching out regarding the motor vehicle accident on <strong>{{.AccidentDateFormatted}}</strong> at {{.AccidentLocation}}.</p>
  <p>{{.AccidentDescription}}</p>
  <p>Our firm would like to represent you in pursuing compensation for your injuries. Attached you will find our retainer agreement for your review.</p>
  <p>The next step is a <strong>{{.BookingType}}</strong> consultation with one of our attorneys. Please pick a time that works for you:</p>
  <p><a href="{{.BookingLink}}" style="background: #1a1a2e; color: #ffffff; padding: 10px 24px; text-decoration: none;">Schedule your consultation</a></p>
  <p>There is no fee unless we recover on your behalf.</p>
  <p>Sincerely,<br>Richards &amp; Law<br>Attorneys at Law</p>
</body>
</html>
`

var (
	textTmpl = texttemplate.Must(texttemplate.New("text").Parse(textBodyTemplate))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(htmlBodyTemplate))
)

// Compose renders the plain-text and HTML bodies for a client email.
func Compose(data model.EmailData) (text, html string, err error) {
	if data.ClientFirstName == "" {
		data.ClientFirstName = "Client"
	}
	data.ClientFirstName = titleCase(data.ClientFirstName)

	var tb, hb bytes.Buffer
	if err := textTmpl.Execute(&tb, data); err != nil {
		return "", "", eris.Wrap(err, "mailer: render text body")
	}
	if err := htmlTmpl.Execute(&hb, data); err != nil {
		return "", "", eris.Wrap(err, "mailer: render html body")
	}
	return tb.String(), hb.String(), nil
}

// titleCase renders an all-caps extracted first name the way you would
// address someone ("GUILLERMO" -> "Guillermo").
func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
