package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestOutstandingIssued(t *testing.T) {
	tests := []struct {
		name     string
		log      []IssueEntry
		expected int
	}{
		{"empty log", nil, 0},
		{"single issued", []IssueEntry{{Quantity: 4, Status: IssueStatusIssued}}, 4},
		{"reversed ignored", []IssueEntry{
			{Quantity: 4, Status: IssueStatusIssued},
			{Quantity: 3, Status: IssueStatusReversed},
		}, 4},
		{"multiple issued", []IssueEntry{
			{Quantity: 4, Status: IssueStatusIssued},
			{Quantity: 2, Status: IssueStatusIssued},
		}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Consumable{IssueLog: tt.log}
			if got := c.OutstandingIssued(); got != tt.expected {
				t.Errorf("OutstandingIssued() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFindIssueEntry(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	c := Consumable{IssueLog: []IssueEntry{{ID: first}, {ID: second}}}

	if idx := c.FindIssueEntry(second); idx != 1 {
		t.Errorf("FindIssueEntry(second) = %d, want 1", idx)
	}
	if idx := c.FindIssueEntry(uuid.New()); idx != -1 {
		t.Errorf("FindIssueEntry(unknown) = %d, want -1", idx)
	}
}

func TestSeatsLeft(t *testing.T) {
	s := Software{Seats: 3, AssignedTo: []SoftwareAssignment{{EmployeeID: uuid.New()}}}
	if got := s.SeatsLeft(); got != 2 {
		t.Errorf("SeatsLeft() = %d, want 2", got)
	}
}
