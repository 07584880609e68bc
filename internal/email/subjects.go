package email

const (
	subjectListingReview = "Review listing"
	headingContactFmt    = "A visitor asked about %s"
)
