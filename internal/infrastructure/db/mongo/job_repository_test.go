package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/99minutos/job-board/internal/core/domain"
	"github.com/99minutos/job-board/internal/core/ports"
)

func TestJobFilter_EmptyIsUnconstrained(t *testing.T) {
	if got := jobFilter(ports.ListJobsFilter{}); len(got) != 0 {
		t.Fatalf("expected empty filter, got %v", got)
	}
}

func TestJobFilter_LocationAndSearch(t *testing.T) {
	got := jobFilter(ports.ListJobsFilter{Location: "Remote", Search: "developer"})

	if got["location"] != "Remote" {
		t.Fatalf("expected exact location match, got %v", got["location"])
	}
	re, ok := got["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected title regex, got %T", got["title"])
	}
	if re.Pattern != "developer" || re.Options != "i" {
		t.Fatalf("unexpected regex %+v", re)
	}
}

func TestJobFilter_SearchIsLiteral(t *testing.T) {
	got := jobFilter(ports.ListJobsFilter{Search: "c++ (senior)"})
	re := got["title"].(primitive.Regex)
	if re.Pattern != `c\+\+ \(senior\)` {
		t.Fatalf("expected escaped pattern, got %q", re.Pattern)
	}
}

func TestJobSort(t *testing.T) {
	tests := []struct {
		name string
		in   domain.JobSort
		want bson.D
	}{
		{
			name: "default newest first",
			in:   domain.DefaultJobSort,
			want: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		},
		{
			name: "title ascending",
			in:   domain.JobSort{Field: domain.SortByTitle},
			want: bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}},
		},
		{
			name: "salary descending",
			in:   domain.JobSort{Field: domain.SortBySalary, Descending: true},
			want: bson.D{{Key: "salary", Value: -1}, {Key: "_id", Value: -1}},
		},
		{
			name: "unknown falls back",
			in:   domain.JobSort{Field: "bogus"},
			want: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jobSort(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Key != tt.want[i].Key || got[i].Value != tt.want[i].Value {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestJobUpdate_OnlyProvidedFields(t *testing.T) {
	title := "Senior Dev"
	salary := 0.0
	update := jobUpdate(ports.JobPatch{Title: &title, Salary: &salary})

	set, ok := update["$set"].(bson.M)
	if !ok || len(update) != 1 {
		t.Fatalf("expected only a $set stage, got %v", update)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 fields, got %v", set)
	}
	if set["title"] != "Senior Dev" || set["salary"] != 0.0 {
		t.Fatalf("unexpected $set %v", set)
	}
	if _, ok := set["created_at"]; ok {
		t.Fatalf("created_at must never be updated")
	}
}

func TestJobUpdate_ClearSalary(t *testing.T) {
	update := jobUpdate(ports.JobPatch{ClearSalary: true})

	if _, ok := update["$set"]; ok {
		t.Fatalf("expected no $set stage, got %v", update)
	}
	unset, ok := update["$unset"].(bson.M)
	if !ok {
		t.Fatalf("expected $unset stage, got %v", update)
	}
	if _, ok := unset["salary"]; !ok || len(unset) != 1 {
		t.Fatalf("expected salary to be unset, got %v", unset)
	}
}

func TestJobUpdate_SalaryWinsOverClear(t *testing.T) {
	salary := 100.0
	update := jobUpdate(ports.JobPatch{Salary: &salary, ClearSalary: true})

	if _, ok := update["$unset"]; ok {
		t.Fatalf("a provided salary must not be unset: %v", update)
	}
	if set := update["$set"].(bson.M); set["salary"] != 100.0 {
		t.Fatalf("unexpected $set %v", set)
	}
}

func TestJobUpdate_EmptyPatch(t *testing.T) {
	if update := jobUpdate(ports.JobPatch{}); len(update) != 0 {
		t.Fatalf("expected empty update, got %v", update)
	}
}

func TestMongoJob_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	job := mongoJob{ID: oid, Title: "Dev", Company: "Acme"}.toDomain()
	if job.ID != oid.Hex() {
		t.Fatalf("expected hex id %s, got %s", oid.Hex(), job.ID)
	}
}
