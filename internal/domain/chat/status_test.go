package chat

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsp(s string) *time.Time {
	t := ts(s)
	return &t
}

func TestDeriveStatus(t *testing.T) {
	now := ts("2026-01-10T12:00:00Z")

	cases := []struct {
		name  string
		start *time.Time
		end   time.Time
		want  string
	}{
		{"before_start", tsp("2026-01-10T13:00:00Z"), ts("2026-01-10T14:00:00Z"), StatusScheduled},
		{"between_start_and_end", tsp("2026-01-10T11:00:00Z"), ts("2026-01-10T13:00:00Z"), StatusActive},
		{"at_start", tsp("2026-01-10T12:00:00Z"), ts("2026-01-10T13:00:00Z"), StatusActive},
		{"at_end", tsp("2026-01-10T11:00:00Z"), ts("2026-01-10T12:00:00Z"), StatusCompleted},
		{"past_end", tsp("2026-01-10T10:00:00Z"), ts("2026-01-10T11:00:00Z"), StatusCompleted},
		{"nil_start_open", nil, ts("2026-01-10T13:00:00Z"), StatusActive},
		{"nil_start_ended", nil, ts("2026-01-10T11:00:00Z"), StatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.start, tc.end, now)
			if got != tc.want {
				t.Fatalf("DeriveStatus: want=%q got=%q", tc.want, got)
			}
		})
	}
}

func TestDeriveStatusClockWalk(t *testing.T) {
	start := tsp("2026-01-10T13:00:00Z")
	end := ts("2026-01-10T14:00:00Z")

	if got := DeriveStatus(start, end, ts("2026-01-10T12:00:00Z")); got != StatusScheduled {
		t.Fatalf("before start: want=%q got=%q", StatusScheduled, got)
	}
	if got := DeriveStatus(start, end, ts("2026-01-10T13:30:00Z")); got != StatusActive {
		t.Fatalf("after start: want=%q got=%q", StatusActive, got)
	}
	if got := DeriveStatus(start, end, ts("2026-01-10T14:30:00Z")); got != StatusCompleted {
		t.Fatalf("after end: want=%q got=%q", StatusCompleted, got)
	}
}

func strp(s string) *string { return &s }

func TestValidateSchedule(t *testing.T) {
	now := ts("2026-01-10T12:00:00Z")

	cases := []struct {
		name     string
		start    *string
		end      string
		wantCode string
	}{
		{"valid_future_window", strp("2026-01-10T13:00:00Z"), "2026-01-10T14:00:00Z", ""},
		{"valid_immediate", nil, "2026-01-10T13:00:00Z", ""},
		{"naive_start", strp("2026-01-10T13:00:00"), "2026-01-10T14:00:00Z", "validation_error"},
		{"naive_end", strp("2026-01-10T13:00:00Z"), "2026-01-10T14:00:00", "validation_error"},
		{"end_before_start", strp("2026-01-10T14:00:00Z"), "2026-01-10T13:00:00Z", "validation_error"},
		{"end_equals_start", strp("2026-01-10T13:00:00Z"), "2026-01-10T13:00:00Z", "validation_error"},
		{"start_in_past", strp("2026-01-10T11:00:00Z"), "2026-01-10T14:00:00Z", "validation_error"},
		{"end_in_past_immediate", nil, "2026-01-10T11:00:00Z", "validation_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, aerr := ValidateSchedule(tc.start, tc.end, now)
			if tc.wantCode == "" {
				if aerr != nil {
					t.Fatalf("unexpected error: %v", aerr)
				}
				return
			}
			if aerr == nil {
				t.Fatalf("want error code %q, got nil", tc.wantCode)
			}
			if aerr.Code != tc.wantCode {
				t.Fatalf("code: want=%q got=%q", tc.wantCode, aerr.Code)
			}
		})
	}
}

func TestValidateScheduleReturnsParsedTimes(t *testing.T) {
	now := ts("2026-01-10T12:00:00Z")
	start, end, aerr := ValidateSchedule(strp("2026-01-10T15:00:00+02:00"), "2026-01-10T16:00:00+02:00", now)
	if aerr != nil {
		t.Fatalf("unexpected error: %v", aerr)
	}
	if start == nil {
		t.Fatalf("want parsed start, got nil")
	}
	if !start.Equal(ts("2026-01-10T13:00:00Z")) {
		t.Fatalf("start: want=%v got=%v", ts("2026-01-10T13:00:00Z"), start)
	}
	if !end.Equal(ts("2026-01-10T14:00:00Z")) {
		t.Fatalf("end: want=%v got=%v", ts("2026-01-10T14:00:00Z"), end)
	}
}
