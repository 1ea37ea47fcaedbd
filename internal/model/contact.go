package model

import "time"

// ContactStatus is the workflow marker of a contact message.
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusResolved  ContactStatus = "resolved"
)

// ContactStatuses lists every accepted status in display order.
var ContactStatuses = []ContactStatus{ContactStatusNew, ContactStatusContacted, ContactStatusResolved}

// ParseContactStatus reports whether s is one of the enumerated statuses.
// Only membership is checked; any status may follow any other.
func ParseContactStatus(s string) (ContactStatus, bool) {
	for _, st := range ContactStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID        string        `json:"id"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Company   string        `json:"company"`
	Role      string        `json:"role"`
	Message   string        `json:"message"`
	IPAddress string        `json:"ipAddress"`
	UserAgent string        `json:"userAgent"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewContactMessage builds the record stored for a validated submission.
// Both storage backends go through here so defaults live in one place.
func NewContactMessage(id string, in ContactInput, now time.Time) *ContactMessage {
	ts := Timestamp(now)
	return &ContactMessage{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Company:   in.Company,
		Role:      in.Role,
		Message:   in.Message,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		Status:    ContactStatusNew,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// WithStatus returns a copy of m carrying status s and a refreshed UpdatedAt.
func (m *ContactMessage) WithStatus(s ContactStatus, now time.Time) *ContactMessage {
	cp := *m
	cp.Status = s
	cp.UpdatedAt = Timestamp(now)
	return &cp
}

// Timestamp normalizes t to UTC at microsecond precision, which is what
// Postgres timestamptz keeps.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
