package service

import (
	"context"
	"fmt"
	"strings"

	"autotradespot_backend/internal/events"
	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	defaultContactSubject = "Interest in your listing"
	contactMessageFormat  = "Hi there,\n\nI am interested in your listing on Auto Tradespot!\nPlease contact me by replying to this email.\n\nWith regards, %s"

	// ContactSentMessage confirms a contact request to the visitor.
	ContactSentMessage = "Thank you for your interest, the provider of this listing will contact you soon!"
)

// ContactForm is the prefilled or submitted contact form.
type ContactForm struct {
	FromEmail string
	Subject   string
	Message   string
}

// ContactDefaults prefills the contact form for a viewer.
func (s *Service) ContactDefaults(ctx context.Context, listingID uuid.UUID, viewer *Viewer) (ContactForm, error) {
	if _, err := s.viewable(ctx, listingID, viewer); err != nil {
		return ContactForm{}, err
	}

	form := ContactForm{Subject: defaultContactSubject, Message: fmt.Sprintf(contactMessageFormat, "")}
	if viewer == nil {
		return form, nil
	}
	user, err := s.users.GetUserByID(ctx, viewer.UserID)
	if err != nil {
		return ContactForm{}, err
	}
	form.FromEmail = user.Email
	form.Message = fmt.Sprintf(contactMessageFormat, user.Name)
	return form, nil
}

// Contact forwards a visitor's message to the listing owner. Delivery is
// asynchronous and its failure is not reported back to the visitor.
func (s *Service) Contact(ctx context.Context, listingID uuid.UUID, viewer *Viewer, form ContactForm) error {
	l, err := s.viewable(ctx, listingID, viewer)
	if err != nil {
		return err
	}
	if strings.ContainsAny(form.Subject, "\r\n") {
		return apperr.Field("subject", "Invalid header found.")
	}

	owner, err := s.users.GetUserByID(ctx, l.OwnerID)
	if err != nil {
		return err
	}

	s.eventBus.Publish(ctx, events.ListingContactRequested{
		BaseEvent:    events.NewBaseEvent(),
		ListingID:    l.ID,
		ListingTitle: l.Title,
		OwnerEmail:   owner.Email,
		FromEmail:    strings.TrimSpace(form.FromEmail),
		Subject:      strings.TrimSpace(form.Subject),
		Message:      form.Message,
	})
	return nil
}

func (s *Service) viewable(ctx context.Context, listingID uuid.UUID, viewer *Viewer) (*domain.Listing, error) {
	l, err := s.repo.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	var viewerID *uuid.UUID
	staff := false
	if viewer != nil {
		viewerID = &viewer.UserID
		staff = viewer.Staff
	}
	if !l.CanView(viewerID, staff) {
		return nil, apperr.Forbidden(msgViewDenied)
	}
	return l, nil
}
