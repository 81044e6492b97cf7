package repositories

import (
	"strings"
	"testing"

	"github.com/rmoreira/capacita/internal/app/models/dto"
)

// The certificate pipeline needs course, professor and workload data on
// every student it loads, so all joined lookups (single and batch) must
// build from the same relation-joining query.
func TestJoinedStudentQueryLoadsRelations(t *testing.T) {
	query := joinedStudentQuery("s.id = ANY($1)")

	for _, clause := range []string{
		"JOIN courses c ON c.id = s.course_id",
		"JOIN professors p ON p.id = s.professor_id",
		"JOIN course_hours h ON h.id = s.course_hours_id",
		"s.id = ANY($1)",
		"s.deleted_at IS NULL",
	} {
		if !strings.Contains(query, clause) {
			t.Errorf("joined student query is missing %q", clause)
		}
	}

	for _, column := range []string{"c.certificate_phrase", "p.signature_path", "h.hours"} {
		if !strings.Contains(query, column) {
			t.Errorf("joined student query does not select %q", column)
		}
	}
}

func TestBuildFilter(t *testing.T) {
	certified := true

	tests := []struct {
		name     string
		filter   dto.StudentFilter
		want     string
		wantArgs int
	}{
		{
			name:     "empty filter keeps soft delete guard",
			filter:   dto.StudentFilter{},
			want:     "s.deleted_at IS NULL",
			wantArgs: 0,
		},
		{
			name:     "course filter",
			filter:   dto.StudentFilter{CourseID: 3},
			want:     "s.course_id = $1",
			wantArgs: 1,
		},
		{
			name:     "certified filter",
			filter:   dto.StudentFilter{Certified: &certified},
			want:     "s.certificate_generated = $1",
			wantArgs: 1,
		},
		{
			name:     "search matches name and code",
			filter:   dto.StudentFilter{Search: "maria"},
			want:     "(s.name ILIKE $1 OR s.code ILIKE $1)",
			wantArgs: 1,
		},
		{
			name:     "combined filters number args in order",
			filter:   dto.StudentFilter{CourseID: 3, ProfessorID: 5, Status: "ACTIVE"},
			want:     "s.status = $3",
			wantArgs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildFilter(tt.filter)
			if !strings.Contains(where, tt.want) {
				t.Errorf("buildFilter where = %q, missing %q", where, tt.want)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("buildFilter args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}
