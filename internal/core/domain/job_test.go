package domain

import (
	"errors"
	"testing"
)

func TestParseJobSort(t *testing.T) {
	cases := []struct {
		raw  string
		want JobSort
	}{
		{"", DefaultJobSort},
		{"salary", JobSort{Field: SortBySalary}},
		{"-salary", JobSort{Field: SortBySalary, Descending: true}},
		{"title", JobSort{Field: SortByTitle}},
		{"-created_at", JobSort{Field: SortByCreatedAt, Descending: true}},
		{"createdAt", JobSort{Field: SortByCreatedAt}},
		{" -company ", JobSort{Field: SortByCompany, Descending: true}},
		{"password", DefaultJobSort},
		{"-", DefaultJobSort},
	}

	for _, tc := range cases {
		got := ParseJobSort(tc.raw)
		if got != tc.want {
			t.Errorf("ParseJobSort(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

func TestJobSort_String(t *testing.T) {
	if s := (JobSort{Field: SortBySalary, Descending: true}).String(); s != "-salary" {
		t.Errorf("expected -salary, got %s", s)
	}
	if s := (JobSort{Field: SortByTitle}).String(); s != "title" {
		t.Errorf("expected title, got %s", s)
	}
}

func TestValidationError_Is(t *testing.T) {
	err := error(NewValidationError("title is required"))
	if !errors.Is(err, ErrValidation) {
		t.Fatal("ValidationError must match ErrValidation")
	}
	if err.Error() != "title is required" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleAdmin) || !ValidRole(RoleUser) {
		t.Fatal("known roles must be valid")
	}
	if ValidRole("superuser") || ValidRole("") {
		t.Fatal("unknown roles must be rejected")
	}
}
