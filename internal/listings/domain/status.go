package domain

// Status is the lifecycle state of a listing. Values are persisted as-is.
type Status int16

const (
	StatusInactive    Status = 0
	StatusActive      Status = 1
	StatusDraft       Status = 2
	StatusReserved    Status = 3
	StatusSold        Status = 4
	StatusRemoved     Status = 5
	StatusReported    Status = 6
	StatusUnderReview Status = 7
)

var statusNames = map[Status]string{
	StatusInactive:    "Inactive",
	StatusActive:      "Active",
	StatusDraft:       "Draft",
	StatusReserved:    "Reserved",
	StatusSold:        "Sold",
	StatusRemoved:     "Removed",
	StatusReported:    "Reported",
	StatusUnderReview: "under review",
}

// AllStatuses lists every status in persisted order.
var AllStatuses = []Status{
	StatusInactive, StatusActive, StatusDraft, StatusReserved,
	StatusSold, StatusRemoved, StatusReported, StatusUnderReview,
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// PubliclyVisible reports whether anyone may view a listing in this state.
func (s Status) PubliclyVisible() bool {
	return s == StatusActive || s == StatusReserved || s == StatusSold
}

// OwnerEditable reports whether the owner may still submit the listing for review.
func (s Status) OwnerEditable() bool {
	switch s {
	case StatusDraft, StatusInactive, StatusActive:
		return true
	}
	return false
}

// Locked reports whether the listing is frozen by moderation or removal.
func (s Status) Locked() bool {
	return s == StatusRemoved || s == StatusReported
}
