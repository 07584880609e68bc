package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) newMessage(toEmails []string, subject, htmlContent string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return nil, fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmails...); err != nil {
		return nil, fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)
	return msg, nil
}

func (s *SMTPSender) send(ctx context.Context, msg *gomail.Msg) error {
	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPSender) SendListingReviewEmail(ctx context.Context, toEmails []string, ownerEmail, listingTitle, listingURL string) error {
	if len(toEmails) == 0 {
		return nil
	}
	content, err := renderEmailTemplate("listing_review.html", listingReviewEmailData{
		baseEmailData: baseEmailData{
			Title:    subjectListingReview,
			Heading:  "Please review my listing for activation",
			CTALabel: "Open listing",
			CTAURL:   listingURL,
		},
		OwnerEmail:   ownerEmail,
		ListingTitle: listingTitle,
	})
	if err != nil {
		return err
	}
	msg, err := s.newMessage(toEmails, subjectListingReview, content)
	if err != nil {
		return err
	}
	if err := msg.ReplyTo(ownerEmail); err != nil {
		return fmt.Errorf("smtp reply-to: %w", err)
	}
	return s.send(ctx, msg)
}

func (s *SMTPSender) SendListingContactEmail(ctx context.Context, toEmail, replyTo, subject, message, listingTitle, listingURL string) error {
	content, err := renderEmailTemplate("listing_contact.html", listingContactEmailData{
		baseEmailData: baseEmailData{
			Title:    subject,
			Heading:  fmt.Sprintf(headingContactFmt, listingTitle),
			CTALabel: "View listing",
			CTAURL:   listingURL,
		},
		FromEmail: replyTo,
		Message:   message,
	})
	if err != nil {
		return err
	}
	msg, err := s.newMessage([]string{toEmail}, subject, content)
	if err != nil {
		return err
	}
	if err := msg.ReplyTo(replyTo); err != nil {
		return fmt.Errorf("smtp reply-to: %w", err)
	}
	return s.send(ctx, msg)
}
