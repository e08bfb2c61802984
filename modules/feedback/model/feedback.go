package model

import "time"

// Kind is the polarity of a feedback record.
type Kind string

const (
	KindPositive Kind = "positive"
	KindNegative Kind = "negative"
)

const maxNotesLength = 500

// FeedbackRecord is an append-only signal a student leaves on a course.
// Subjects and CareerInterests are snapshotted from the submitting
// student's profile at the time of submission — there is no persisted
// student-profile store to join against later, so peer similarity
// (§4.5) is computed from whatever the record itself carries.
type FeedbackRecord struct {
	ID              string
	UserID          string
	CourseID        string
	Kind            Kind
	Notes           string
	Subjects        []string
	CareerInterests []string
	CreatedAt       time.Time
}

// TruncateNotes clamps notes to the maximum stored length.
func TruncateNotes(notes string) string {
	if len(notes) <= maxNotesLength {
		return notes
	}
	return notes[:maxNotesLength]
}
