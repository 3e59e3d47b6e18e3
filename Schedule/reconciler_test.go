package Schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReconcileUpcoming(t *testing.T) {
	today := day(2025, time.June, 15)
	future := day(2025, time.June, 20)

	// Records are ignored outright on future dates; they belong to an
	// earlier occurrence of the same calendar day.
	records := []InspectionOutcome{
		{Status: "fault", InspectionStatus: "complete"},
	}
	got := Reconcile(future, today, records)
	assert.Equal(t, DateStatus{Class: ClassUpcoming, Text: TextUpcoming, InspectionCount: 0}, got)
}

func TestReconcileTodayIsNotUpcoming(t *testing.T) {
	today := day(2025, time.June, 15)
	got := Reconcile(today, today, nil)
	assert.Equal(t, ClassPending, got.Class)
}

func TestReconcileTimeOfDayStripped(t *testing.T) {
	// Late "now" on the same calendar day must not push the date into the
	// past-evaluation path differently than midnight would.
	date := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
	today := time.Date(2025, time.June, 15, 23, 30, 0, 0, time.UTC)
	got := Reconcile(date, today, []InspectionOutcome{{Status: "normal", InspectionStatus: "complete"}})
	assert.Equal(t, ClassComplete, got.Class)
}

func TestReconcileNoRecords(t *testing.T) {
	got := Reconcile(day(2025, time.June, 10), day(2025, time.June, 15), nil)
	assert.Equal(t, DateStatus{Class: ClassPending, Text: TextPending, InspectionCount: 0}, got)
}

func TestReconcilePriorities(t *testing.T) {
	today := day(2025, time.June, 15)
	past := day(2025, time.June, 10)

	tests := []struct {
		name      string
		records   []InspectionOutcome
		wantClass string
		wantText  string
		wantCount int
	}{
		{
			name: "single fault dominates a normal complete record",
			records: []InspectionOutcome{
				{Status: "fault", InspectionStatus: "complete"},
				{Status: "normal", InspectionStatus: "complete"},
			},
			wantClass: ClassFault, wantText: TextFault, wantCount: 2,
		},
		{
			name: "abnormal is a fault synonym",
			records: []InspectionOutcome{
				{Status: "normal", InspectionStatus: "complete"},
				{Status: "abnormal", InspectionStatus: "pending"},
			},
			wantClass: ClassFault, wantText: TextFault, wantCount: 2,
		},
		{
			name: "fault wins even among unsubmitted records",
			records: []InspectionOutcome{
				{Status: "fault"},
				{},
				{},
			},
			wantClass: ClassFault, wantText: TextFault, wantCount: 3,
		},
		{
			name: "all complete and normal",
			records: []InspectionOutcome{
				{Status: "normal", InspectionStatus: "complete"},
				{Status: "normal", InspectionStatus: "complete"},
			},
			wantClass: ClassComplete, wantText: TextComplete, wantCount: 2,
		},
		{
			name: "missing status counts as normal",
			records: []InspectionOutcome{
				{InspectionStatus: "complete"},
				{Status: "whatever", InspectionStatus: "complete"},
			},
			wantClass: ClassComplete, wantText: TextComplete, wantCount: 2,
		},
		{
			name: "unsubmitted record blocks complete",
			records: []InspectionOutcome{
				{Status: "normal", InspectionStatus: "open"},
			},
			wantClass: ClassPending, wantText: TextInProgress, wantCount: 1,
		},
		{
			name: "partially submitted set is in progress",
			records: []InspectionOutcome{
				{Status: "normal", InspectionStatus: "complete"},
				{Status: "normal", InspectionStatus: "pending"},
			},
			wantClass: ClassPending, wantText: TextInProgress, wantCount: 2,
		},
		{
			name: "status values normalized for case and whitespace",
			records: []InspectionOutcome{
				{Status: " Fault ", InspectionStatus: "complete"},
			},
			wantClass: ClassFault, wantText: TextFault, wantCount: 1,
		},
		{
			name: "malformed record with no fields degrades to in progress",
			records: []InspectionOutcome{
				{},
			},
			wantClass: ClassPending, wantText: TextInProgress, wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(past, today, tt.records)
			assert.Equal(t, tt.wantClass, got.Class)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantCount, got.InspectionCount)
		})
	}
}

func TestReconcileDeterministic(t *testing.T) {
	today := day(2025, time.June, 15)
	past := day(2025, time.June, 10)
	records := []InspectionOutcome{
		{Status: "normal", InspectionStatus: "complete"},
		{Status: "fault", InspectionStatus: "pending"},
	}

	first := Reconcile(past, today, records)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Reconcile(past, today, records))
	}
}

func TestReconcileCompleteRequiresUnanimity(t *testing.T) {
	today := day(2025, time.June, 15)
	past := day(2025, time.June, 10)

	records := []InspectionOutcome{
		{Status: "normal", InspectionStatus: "complete"},
		{Status: "normal", InspectionStatus: "complete"},
		{Status: "normal", InspectionStatus: "complete"},
	}
	assert.Equal(t, ClassComplete, Reconcile(past, today, records).Class)

	// Flipping any single record out of "complete" drops the whole date
	// back to pending.
	for i := range records {
		mutated := make([]InspectionOutcome, len(records))
		copy(mutated, records)
		mutated[i].InspectionStatus = "pending"
		got := Reconcile(past, today, mutated)
		assert.Equal(t, ClassPending, got.Class, "record %d incomplete", i)
		assert.Equal(t, TextInProgress, got.Text)
	}
}
