// Package mail delivers a rendered newsletter over SMTP. One
// authenticated STARTTLS session carries exactly one message and is
// closed on every exit path.
package mail

import (
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"
)

// DeliveryRequest carries everything needed for one send. It is a pure
// value: nothing is retained between calls.
type DeliveryRequest struct {
	From     string
	To       string
	Subject  string
	Body     string
	HTML     bool
	Host     string
	Port     int
	Username string
	Password string
}

// Validate reports the delivery fields that are missing. Callers must
// skip delivery entirely when this fails; a session is never opened with
// partial credentials.
func (r DeliveryRequest) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"sender", r.From},
		{"recipient", r.To},
		{"smtp host", r.Host},
		{"smtp user", r.Username},
		{"smtp password", r.Password},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required email settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Send transmits the newsletter in a single SMTP session: dial, STARTTLS,
// authenticate, send one message, quit. The body content type matches the
// render mode. Any transport, auth, or protocol error is returned for the
// caller to log as a warning; the session is closed regardless.
func Send(req DeliveryRequest) error {
	msg := gomail.NewMsg()
	if err := msg.From(req.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(req.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(req.Subject)
	if req.HTML {
		msg.SetBodyString(gomail.TypeTextHTML, req.Body)
	} else {
		msg.SetBodyString(gomail.TypeTextPlain, req.Body)
	}

	port := req.Port
	if port == 0 {
		port = 587
	}

	client, err := gomail.NewClient(req.Host,
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(req.Username),
		gomail.WithPassword(req.Password),
	)
	if err != nil {
		return fmt.Errorf("configuring SMTP client: %w", err)
	}

	// DialAndSend opens the session, sends, and closes it on all paths.
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
