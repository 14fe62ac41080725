package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "Go,Postgres", []string{"Go", "Postgres"}},
		{"whitespace", " Go , Postgres ,  Redis", []string{"Go", "Postgres", "Redis"}},
		{"empty entries", "Go,,Postgres,", []string{"Go", "Postgres"}},
		{"blank", "  ", []string{}},
		{"order preserved", "C,B,A", []string{"C", "B", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkills(tt.input))
		})
	}
}

func TestAddExperience_HeadInsertion(t *testing.T) {
	p := &Profile{}

	e1 := p.AddExperience(Experience{Title: "Junior Dev", Company: "Acme", From: time.Now()})
	e2 := p.AddExperience(Experience{Title: "Senior Dev", Company: "Globex", From: time.Now()})

	require.Len(t, p.Experience, 2)
	assert.Equal(t, e2.ID, p.Experience[0].ID)
	assert.Equal(t, e1.ID, p.Experience[1].ID)
	assert.NotEqual(t, e1.ID, e2.ID)
	assert.NotEqual(t, uuid.Nil, e1.ID)
}

func TestRemoveExperience(t *testing.T) {
	p := &Profile{}
	e1 := p.AddExperience(Experience{Title: "Junior Dev", Company: "Acme"})
	e2 := p.AddExperience(Experience{Title: "Senior Dev", Company: "Globex"})

	p.RemoveExperience(e1.ID)

	require.Len(t, p.Experience, 1)
	assert.Equal(t, e2.ID, p.Experience[0].ID)
}

func TestRemoveExperience_UnknownIDIsNoOp(t *testing.T) {
	p := &Profile{}
	p.AddExperience(Experience{Title: "Junior Dev", Company: "Acme"})

	p.RemoveExperience(uuid.New())

	assert.Len(t, p.Experience, 1)
}

func TestAddEducation_HeadInsertion(t *testing.T) {
	p := &Profile{}

	e1 := p.AddEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"})
	e2 := p.AddEducation(Education{School: "Stanford", Degree: "MSc", FieldOfStudy: "CS"})

	require.Len(t, p.Education, 2)
	assert.Equal(t, e2.ID, p.Education[0].ID)
	assert.Equal(t, e1.ID, p.Education[1].ID)
}

func TestRemoveEducation(t *testing.T) {
	p := &Profile{}
	e1 := p.AddEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"})

	p.RemoveEducation(e1.ID)
	assert.Empty(t, p.Education)

	p.RemoveEducation(uuid.New())
	assert.Empty(t, p.Education)
}
