package email

import (
	"context"
	"fmt"

	"autotradespot_backend/platform/config"
)

// Sender delivers the marketplace's transactional mail.
type Sender interface {
	// SendListingReviewEmail asks moderators to review a submitted listing.
	SendListingReviewEmail(ctx context.Context, toEmails []string, ownerEmail, listingTitle, listingURL string) error
	// SendListingContactEmail forwards a visitor's message to the seller.
	// Replies go to the visitor.
	SendListingContactEmail(ctx context.Context, toEmail, replyTo, subject, message, listingTitle, listingURL string) error
}

// NewSender returns an SMTP sender, or a NoopSender when email is disabled.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	if cfg.GetSMTPHost() == "" || cfg.GetEmailFromAddress() == "" {
		return nil, fmt.Errorf("email enabled but SMTP_HOST or EMAIL_FROM_ADDRESS is empty")
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}

type NoopSender struct{}

func (NoopSender) SendListingReviewEmail(context.Context, []string, string, string, string) error {
	return nil
}

func (NoopSender) SendListingContactEmail(context.Context, string, string, string, string, string, string) error {
	return nil
}

var (
	_ Sender = NoopSender{}
	_ Sender = (*SMTPSender)(nil)
)
