package leave_test

import (
	"testing"
	"time"

	"github.com/logfretaulnay/hr-zen/internal/leave"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTotalDays(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		halfStart bool
		halfEnd   bool
		want      string
	}{
		{name: "single day", start: "2026-03-02", end: "2026-03-02", want: "1"},
		{name: "full week", start: "2026-03-02", end: "2026-03-06", want: "5"},
		{name: "half start", start: "2026-03-02", end: "2026-03-06", halfStart: true, want: "4.5"},
		{name: "half end", start: "2026-03-02", end: "2026-03-06", halfEnd: true, want: "4.5"},
		{name: "both halves", start: "2026-03-02", end: "2026-03-06", halfStart: true, halfEnd: true, want: "4"},
		{name: "single half day", start: "2026-03-02", end: "2026-03-02", halfStart: true, want: "0.5"},
		{name: "single day both halves clamps to zero", start: "2026-03-02", end: "2026-03-02", halfStart: true, halfEnd: true, want: "0"},
		{name: "spans a month boundary", start: "2026-01-30", end: "2026-02-02", want: "4"},
		{name: "spans a year boundary", start: "2026-12-30", end: "2027-01-02", want: "4"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := leave.TotalDays(day(tc.start), day(tc.end), tc.halfStart, tc.halfEnd)
			assert.Equal(t, tc.want, got.String())
		})
	}
}
