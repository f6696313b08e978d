package models

// VerificationStatus is the moderation state shared by communities and venues.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// EventStatus is the moderation state of a live event.
type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

// EventType categorizes an event for filtering.
type EventType string

const (
	EventTypeHackathon  EventType = "Hackathon"
	EventTypeWorkshop   EventType = "Workshop"
	EventTypeMeetup     EventType = "Meetup"
	EventTypeTalk       EventType = "Talk"
	EventTypeConference EventType = "Conference"
	EventTypeOther      EventType = "Other"
)

// ValidEventType reports whether t is one of the supported event types.
func ValidEventType(t EventType) bool {
	switch t {
	case EventTypeHackathon, EventTypeWorkshop, EventTypeMeetup,
		EventTypeTalk, EventTypeConference, EventTypeOther:
		return true
	}
	return false
}

// DuplicateStatus is the review state of a duplicate-community audit record.
type DuplicateStatus string

const (
	DuplicatePending       DuplicateStatus = "pending"
	DuplicateMergeApproved DuplicateStatus = "merge_approved"
	DuplicateKeepSeparate  DuplicateStatus = "keep_separate"
	DuplicateInvestigating DuplicateStatus = "needs_investigation"
)
