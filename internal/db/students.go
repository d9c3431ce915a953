package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/campus-match/internal/types"
	"go.uber.org/zap"
)

// studentSelect joins the student record with the account profile that holds
// the name and school-level percentages.
const studentSelect = `
	SELECT s.id::text,
	       COALESCE(p.full_name, ''),
	       COALESCE(s.skills, '{}'),
	       s.education, s.experience, s.projects,
	       COALESCE(s.has_internship, false),
	       COALESCE(s.ats_score, 0)::int,
	       COALESCE(s.year, ''),
	       COALESCE(s.gpa, ''),
	       COALESCE(s.department, ''),
	       p.tenth_percentage::float8,
	       p.twelfth_percentage::float8
	FROM students s
	LEFT JOIN profiles p ON p.id = s.id`

// StudentRow is the raw shape of a joined student record
type StudentRow struct {
	ID                string
	FullName          string
	Skills            []string
	Education         []byte
	Experience        []byte
	Projects          []byte
	HasInternship     bool
	ATSScore          int
	Year              string
	GPA               string
	Department        string
	TenthPercentage   *float64
	TwelfthPercentage *float64
}

// GetStudent loads one student as a candidate profile
func (db *DB) GetStudent(ctx context.Context, id string) (*types.CandidateProfile, error) {
	row, err := scanStudent(db.pool.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "student", ID: id}
		}
		return nil, fmt.Errorf("failed to get student %s: %w", id, err)
	}
	return row.Profile()
}

// ListStudents loads every student with at least one skill, ordered by ID.
// Students whose stored JSON cannot be decoded are logged and left out.
func (db *DB) ListStudents(ctx context.Context) ([]*types.CandidateProfile, error) {
	rows, err := db.pool.Query(ctx, studentSelect+` WHERE cardinality(s.skills) > 0 ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*StudentRow
	for rows.Next() {
		row, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}
	return profilesFromRows(students, db.logger)
}

// profilesFromRows converts scanned rows, skipping those with undecodable columns
func profilesFromRows(rows []*StudentRow, logger *zap.Logger) ([]*types.CandidateProfile, error) {
	profiles := make([]*types.CandidateProfile, 0, len(rows))
	for _, row := range rows {
		profile, err := row.Profile()
		if err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				logger.Warn("skipping student with malformed record",
					zap.String("student", row.ID),
					zap.String("column", decodeErr.Column),
					zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("failed to convert student %s: %w", row.ID, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func scanStudent(row pgx.Row) (*StudentRow, error) {
	var s StudentRow
	err := row.Scan(
		&s.ID, &s.FullName, &s.Skills,
		&s.Education, &s.Experience, &s.Projects,
		&s.HasInternship, &s.ATSScore, &s.Year, &s.GPA, &s.Department,
		&s.TenthPercentage, &s.TwelfthPercentage,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Profile converts the row to the profile shape the scorer consumes
func (s *StudentRow) Profile() (*types.CandidateProfile, error) {
	education, err := decodeEducation(s.Education)
	if err != nil {
		return nil, err
	}
	experience, err := decodeEntries("students.experience", s.Experience)
	if err != nil {
		return nil, err
	}
	projects, err := decodeEntries("students.projects", s.Projects)
	if err != nil {
		return nil, err
	}

	skills := s.Skills
	if skills == nil {
		skills = []string{}
	}

	return &types.CandidateProfile{
		ID:     s.ID,
		Name:   s.FullName,
		Skills: skills,
		AcademicInfo: types.AcademicInfo{
			TenthPercentage:   s.TenthPercentage,
			TwelfthPercentage: s.TwelfthPercentage,
		},
		Projects:          projects,
		ExperienceEntries: experience,
		HasInternship:     s.HasInternship,
		ATSScore:          clampATSScore(s.ATSScore),
		Education:         education,
		Year:              ParseYear(s.Year),
		GPA:               s.GPA,
		Department:        s.Department,
	}, nil
}

func clampATSScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > types.MaxATSScore {
		return types.MaxATSScore
	}
	return score
}
