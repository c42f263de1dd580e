package chat

import (
	"time"

	"github.com/yungbote/huddle-backend/internal/pkg/apierr"
)

// DeriveStatus computes the chat status from its schedule. It is a pure
// function of its inputs; a nil start means the chat opened at creation.
func DeriveStatus(start *time.Time, end time.Time, now time.Time) string {
	if start != nil && now.Before(*start) {
		return StatusScheduled
	}
	if !now.Before(end) {
		return StatusCompleted
	}
	return StatusActive
}

// ParseTimestamp parses an RFC3339 timestamp, rejecting values that carry no
// explicit timezone offset.
func ParseTimestamp(field, raw string) (time.Time, *apierr.Error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apierr.Validation("%s must be an RFC3339 timestamp with an explicit timezone offset (e.g. 'Z' or '+00:00')", field)
	}
	return t, nil
}

// ValidateSchedule checks a chat schedule at creation time. startRaw may be
// nil, in which case the effective start is now. On success it returns the
// parsed start (nil when defaulted) and end.
func ValidateSchedule(startRaw *string, endRaw string, now time.Time) (*time.Time, time.Time, *apierr.Error) {
	var start *time.Time
	if startRaw != nil {
		t, aerr := ParseTimestamp("start_time", *startRaw)
		if aerr != nil {
			return nil, time.Time{}, aerr
		}
		start = &t
	}
	end, aerr := ParseTimestamp("end_time", endRaw)
	if aerr != nil {
		return nil, time.Time{}, aerr
	}

	effectiveStart := now
	if start != nil {
		effectiveStart = *start
	}
	if !end.After(effectiveStart) {
		return nil, time.Time{}, apierr.Validation("end_time must be after start_time")
	}
	if start != nil && start.Before(now) {
		return nil, time.Time{}, apierr.Validation("scheduled start_time cannot be in the past")
	}
	if !effectiveStart.After(now) && !end.After(now) {
		return nil, time.Time{}, apierr.Validation("end_time cannot be in the past for an immediately starting chat")
	}
	return start, end, nil
}
