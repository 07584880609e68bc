package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskListingReviewMail = "listings.review_mail"

const TaskListingContactMail = "listings.contact_mail"

// ListingReviewMailPayload asks moderators to review a submitted listing.
type ListingReviewMailPayload struct {
	EventID      string   `json:"eventId,omitempty"`
	ListingID    string   `json:"listingId"`
	ListingTitle string   `json:"listingTitle"`
	ListingURL   string   `json:"listingUrl"`
	OwnerEmail   string   `json:"ownerEmail"`
	To           []string `json:"to"`
}

// ListingContactMailPayload forwards a visitor message to a seller.
type ListingContactMailPayload struct {
	EventID      string `json:"eventId,omitempty"`
	ListingID    string `json:"listingId"`
	ListingTitle string `json:"listingTitle"`
	ListingURL   string `json:"listingUrl"`
	ToEmail      string `json:"toEmail"`
	ReplyTo      string `json:"replyTo"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}

func NewListingReviewMailTask(payload ListingReviewMailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskListingReviewMail, data), nil
}

func ParseListingReviewMailPayload(task *asynq.Task) (ListingReviewMailPayload, error) {
	var payload ListingReviewMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ListingReviewMailPayload{}, err
	}
	return payload, nil
}

func NewListingContactMailTask(payload ListingContactMailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskListingContactMail, data), nil
}

func ParseListingContactMailPayload(task *asynq.Task) (ListingContactMailPayload, error) {
	var payload ListingContactMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ListingContactMailPayload{}, err
	}
	return payload, nil
}
