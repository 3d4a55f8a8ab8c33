package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// NewAuditFields stamps a new entity as created and last touched by userID at now.
func NewAuditFields(userID string, now time.Time) AuditFields {
	return AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
}

// Touch records an update by userID at now.
func (a *AuditFields) Touch(userID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
}

// CivilDateLayout is the layout used for calendar-day values on the wire and in SQL.
const CivilDateLayout = "2006-01-02"

// CivilDate returns the calendar day that t falls on in loc, as midnight UTC.
// Shift dates and payment dates are compared as civil dates, never instants.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseCivilDate parses a YYYY-MM-DD value into midnight UTC.
func ParseCivilDate(s string) (time.Time, error) {
	return time.ParseInLocation(CivilDateLayout, s, time.UTC)
}
