package parsing

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/campus-match/internal/ingestion"
	"github.com/jonathan/campus-match/internal/types"
	"github.com/jonathan/campus-match/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJob = `Software Engineer Intern
Role: Backend Engineering

We are hiring final year B.Tech / BE students in Computer Science or IT.
Required: Python, SQL and REST APIs.
Experience with Docker, Kubernetes and message queues.
Candidates should have 1-2 years of experience building web services.
Minimum CGPA of 7.5 with no active backlogs.
Must have strong communication skills.
Certification in AWS Cloud Practitioner preferred.`

func TestExtractJobRequirement_Sample(t *testing.T) {
	req := ExtractJobRequirement(sampleJob)
	require.NotNil(t, req)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "Software Engineer Intern", req.Title)
	assert.Equal(t, "Backend Engineering", req.Role)

	assert.Subset(t, req.RequiredSkills, []string{"Python", "SQL", "REST API", "Docker", "Kubernetes"})
	assert.Contains(t, req.RequiredSkills, "message queues")
	assert.LessOrEqual(t, len(req.RequiredSkills), types.MaxRequiredSkills)

	assert.Equal(t, []string{"B.Tech", "Computer Science"}, req.Eligibility.Education)
	assert.Equal(t, 2, req.Eligibility.ExperienceYears)
	assert.Equal(t, 7.5, req.Eligibility.CGPAMinimum)
	assert.Equal(t, []int{4}, req.Eligibility.EligibleYears)
	assert.Equal(t, []string{
		"1-2 years of experience building web services",
		"Strong communication skills",
		"AWS Cloud Practitioner preferred",
	}, req.Eligibility.SpecificRequirements)

	assert.NoError(t, req.Validate())
}

func TestExtractJobRequirement_Empty(t *testing.T) {
	for _, text := range []string{"", "  \n "} {
		req := ExtractJobRequirement(text)
		require.NotNil(t, req)
		assert.Empty(t, req.RequiredSkills)
		assert.NotNil(t, req.RequiredSkills)
		assert.Empty(t, req.Eligibility.Education)
		assert.Equal(t, 0, req.Eligibility.ExperienceYears)
		assert.Equal(t, 0.0, req.Eligibility.CGPAMinimum)
		assert.Equal(t, []int{1, 2, 3, 4}, req.Eligibility.EligibleYears)
	}
}

func TestExtractJobRequirement_DefaultEligibleYears(t *testing.T) {
	req := ExtractJobRequirement("We need a data analyst comfortable with Excel and Tableau.")
	assert.Equal(t, []int{1, 2, 3, 4}, req.Eligibility.EligibleYears)
}

func TestExtractJobRequirement_Idempotent(t *testing.T) {
	assert.Equal(t, ExtractJobRequirement(sampleJob), ExtractJobRequirement(sampleJob))
}

func TestExtractJobRequirement_DefaultYearsNotShared(t *testing.T) {
	first := ExtractJobRequirement("")
	first.Eligibility.EligibleYears[0] = 9

	second := ExtractJobRequirement("")
	assert.Equal(t, []int{1, 2, 3, 4}, second.Eligibility.EligibleYears)
	assert.Equal(t, []int{1, 2, 3, 4}, types.AllYears)
}

func TestExtractRequiredSkills(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "vocabulary only",
			text:     "Looking for Java and Spring Boot developers",
			expected: []string{"Java", "Spring Boot"},
		},
		{
			name:     "java does not match javascript",
			text:     "Frontend role using JavaScript",
			expected: []string{"JavaScript"},
		},
		{
			name:     "technologies phrase adds unknown skills",
			text:     "Technologies: Kafka, Airflow/dbt",
			expected: []string{"Kafka", "Airflow", "Dbt"},
		},
		{
			name:     "stoplist and length window",
			text:     "Experience with 3 years of work, ML, good judgment and a very long description of nothing in particular",
			expected: []string{},
		},
		{
			name:     "dedup keeps first seen",
			text:     "Experience in python and Python scripting. Required: PYTHON",
			expected: []string{"Python", "Python scripting"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractRequiredSkills(tt.text))
		})
	}
}

func TestExtractRequiredSkills_CappedAtTen(t *testing.T) {
	text := "Python, Java, JavaScript, TypeScript, Rust, Kotlin, Swift, Ruby, PHP, Scala, Dart, Perl"
	assert.Len(t, ExtractRequiredSkills(text), types.MaxRequiredSkills)
}

func TestExtractEducation(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"btech variants", "btech or b.tech or b. tech", []string{"B.Tech"}},
		{"masters", "m.tech / mca graduates", []string{"M.Tech", "MCA"}},
		{"bachelor degree and field", "bachelor's degree in computer science", []string{"Bachelor's", "Computer Science"}},
		{"scrum master is not a degree", "work with the scrum master daily", []string{}},
		{"none", "no degree needed", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractEducation(ingestion.Normalize(tt.text)))
		})
	}
}

func TestExtractExperienceYears(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"plus", "2+ years of experience in backend development", 2},
		{"range takes upper bound", "0-1 years of relevant experience", 1},
		{"maximum of mentions", "1 year of python experience, 3 years of total experience", 3},
		{"experience first", "Experience: minimum 4 years", 4},
		{"at least", "at least 5 yrs in industry", 5},
		{"none", "freshers welcome", 0},
		{"degree length ignored", "Requirements: 4 year degree with Python experience.", 0},
		{"course length ignored", "3 year course with internship experience", 0},
		{"degree length beside real requirement", "4 year b.tech degree. 2 years of experience in Java", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractExperienceYears(ingestion.Normalize(tt.text)))
		})
	}
}

func TestExtractCGPAMinimum(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"minimum of", "Minimum CGPA of 7.5", 7.5},
		{"above", "CGPA above 8", 8},
		{"trailing", "7+ CGPA required", 7},
		{"maximum mention", "GPA: 6.5 overall, CGPA 7 in major", 7},
		{"out of scale ignored", "CGPA: 75 percent or GPA 6", 6},
		{"scale after minimum", "Minimum 7.5/10 CGPA required.", 7.5},
		{"scale before keyword", "Candidates with 7.5/10 cgpa or above", 7.5},
		{"scale after keyword", "CGPA: 7.5/10", 7.5},
		{"spelled out scale", "8 out of 10 CGPA", 8},
		{"none", "No academic cutoff", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCGPAMinimum(ingestion.Normalize(tt.text)))
		})
	}
}

func TestExtractEligibleYears(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []int
	}{
		{"final year", "Open to final year students", []int{4}},
		{"pre-final only", "Pre-final year students only", []int{3}},
		{"third and fourth", "3rd and 4th year students", []int{3, 4}},
		{"second year", "2nd year undergraduates", []int{2}},
		{"freshers", "Freshers can apply", []int{4}},
		{"batch", "2025 batch graduates", []int{4}},
		{"no signal", "Anyone passionate about software", []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractEligibleYears(ingestion.Normalize(tt.text)))
		})
	}
}

func TestExtractSpecificRequirements(t *testing.T) {
	text := "Must have: excellent problem solving. Should have a portfolio website. Preferred: ok"

	assert.Equal(t, []string{
		"Excellent problem solving",
		"A portfolio website",
	}, ExtractSpecificRequirements(text))
}

func TestExtractSpecificRequirements_TooLong(t *testing.T) {
	text := "Must have " + strings.Repeat("x", 200)
	assert.Empty(t, ExtractSpecificRequirements(text))
}

func TestDetectTitle(t *testing.T) {
	assert.Equal(t, "Data Analyst", detectTitle("Position: Data Analyst\nAbout us"))
	assert.Equal(t, "Frontend Developer", detectTitle("\nFrontend Developer\nWe build things."))
	assert.Equal(t, "", detectTitle("We are a fast growing startup looking for engineers."))
}

func TestExtractJobDocument(t *testing.T) {
	req, err := ExtractJobDocument([]byte(sampleJob))
	require.NoError(t, err)
	assert.Equal(t, []int{4}, req.Eligibility.EligibleYears)

	_, err = ExtractJobDocument([]byte{0xde, 0xad, 0xbe, 0xef})
	var invalid *validation.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}
