package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"folio-backend/internal/contact"
)

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New enquiry via {{.Site}}</h3>
  <p><strong>From:</strong> {{.Msg.Name}} &lt;{{.Msg.Email}}&gt;</p>
  {{if .Msg.Company}}<p><strong>Company:</strong> {{.Msg.Company}}</p>{{end}}
  {{if .Msg.Subject}}<p><strong>Subject:</strong> {{.Msg.Subject}}</p>{{end}}
  {{if .Msg.Project}}<p><strong>Sent from:</strong> <a href="{{.ProjectURL}}">{{.Msg.Project}}</a></p>{{end}}
  <p><strong>Received:</strong> {{.Received}}</p>
  <p>{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
  <p style="color:#888">Reference {{.Msg.ID}}. Reply to this email to answer {{.Msg.Name}} directly.</p>
</body>
</html>`

var contactNotificationTmpl = template.Must(template.New("contact_notification").Parse(contactNotificationTemplate))

type contactNotificationData struct {
	Site       string
	Msg        contact.Message
	ProjectURL string
	Received   string
	Lines      []string
}

func buildContactNotificationHTML(site string, msg contact.Message) (string, error) {
	data := contactNotificationData{
		Site:     siteOrDefault(site),
		Msg:      msg,
		Received: msg.CreatedAt.Format("2 Jan 2006 15:04 MST"),
		Lines:    strings.Split(msg.Message, "\n"),
	}
	if msg.Project != "" {
		data.ProjectURL = "/work/" + msg.Project
	}
	var buf bytes.Buffer
	if err := contactNotificationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func contactSubject(site string, msg contact.Message) string {
	if msg.Subject != "" {
		return fmt.Sprintf("[%s] %s", siteOrDefault(site), msg.Subject)
	}
	return fmt.Sprintf("[%s] New enquiry from %s", siteOrDefault(site), msg.Name)
}

func siteOrDefault(site string) string {
	if strings.TrimSpace(site) == "" {
		return "portfolio"
	}
	return site
}
