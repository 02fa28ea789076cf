package enquiries

import (
	"fmt"
	"html"
	"strings"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/mailer"
)

func adminNotification(e models.Enquiry, to, bcc string) mailer.Message {
	var b strings.Builder
	b.WriteString("<h2>New Enquiry</h2>")
	fmt.Fprintf(&b, "<p><b>Name:</b> %s</p>", html.EscapeString(e.Name))
	fmt.Fprintf(&b, "<p><b>Email:</b> %s</p>", html.EscapeString(e.Email))
	if e.Phone != "" {
		fmt.Fprintf(&b, "<p><b>Phone:</b> %s</p>", html.EscapeString(e.Phone))
	}
	fmt.Fprintf(&b, "<p><b>Message:</b> %s</p>", multiline(e.Message))
	page := e.Page
	if page == "" {
		page = "N/A"
	}
	fmt.Fprintf(&b, "<p><b>Page:</b> %s</p>", html.EscapeString(page))
	fmt.Fprintf(&b, "<p><b>IP:</b> %s</p>", html.EscapeString(e.IP))
	return mailer.Message{
		To:      to,
		BCC:     bcc,
		Subject: "New Enquiry - Stonefront",
		HTML:    b.String(),
		Text:    fmt.Sprintf("New enquiry from %s <%s>\n\n%s", e.Name, e.Email, e.Message),
	}
}

func customerThanks(e models.Enquiry) mailer.Message {
	name := html.EscapeString(e.Name)
	return mailer.Message{
		To:      e.Email,
		Subject: "Thanks for contacting Stonefront",
		HTML: fmt.Sprintf("<p>Hi %s,</p><p>Thank you for contacting <b>Stonefront</b>.</p>"+
			"<p>We've received your enquiry and will respond shortly.</p><br/><p>Stonefront Team</p>", name),
		Text: fmt.Sprintf("Hi %s,\n\nThank you for contacting Stonefront. We've received your enquiry and will respond shortly.\n\nStonefront Team", e.Name),
	}
}

func multiline(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br/>")
}
