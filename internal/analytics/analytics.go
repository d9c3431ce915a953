// Package analytics summarizes the candidate pool of a hiring session.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/campus-match/internal/ranking"
	"github.com/jonathan/campus-match/internal/types"
)

const (
	maxCommonSkills = 10
	maxPerformers   = 5

	unknownBucket = "Unknown"
)

// Entry is one session candidate together with the profile it was scored from.
// Profile may be nil when the student record could not be loaded.
type Entry struct {
	Candidate types.SessionCandidate
	Profile   *types.CandidateProfile
}

// Compute builds the analytics for a session. Every status counts toward the
// totals, applied included.
func Compute(session *types.HiringSession, entries []Entry) *types.SessionAnalytics {
	result := &types.SessionAnalytics{
		CandidateStats: types.CandidateStats{
			TotalCandidates:        len(entries),
			StatusDistribution:     statusDistribution(entries),
			MatchScoreDistribution: scoreDistribution(entries),
			YearDistribution:       map[string]int{},
			DepartmentDistribution: map[string]int{},
		},
		PipelineMetrics: types.PipelineMetrics{
			TopPerformers: topPerformers(entries),
		},
	}
	if session != nil {
		result.SessionInfo = types.SessionInfo{
			Title:        session.Title,
			Role:         session.Role,
			TargetHires:  session.TargetHires,
			CurrentHires: session.CurrentHires,
		}
	}

	stats := &result.CandidateStats
	var profiles []*types.CandidateProfile
	for _, e := range entries {
		if e.Profile == nil {
			continue
		}
		profiles = append(profiles, e.Profile)
		stats.YearDistribution[yearBucket(e.Profile.Year)]++
		stats.DepartmentDistribution[departmentBucket(e.Profile.Department)]++
	}

	stats.SkillsAnalysis = skillsAnalysis(profiles)
	stats.AcademicStats = academicStats(profiles)
	result.PipelineMetrics.ConversionRates = conversionRates(stats.StatusDistribution, len(entries), result.SessionInfo)

	return result
}

func statusDistribution(entries []Entry) map[string]int {
	dist := make(map[string]int, len(types.CandidateStatuses))
	for _, status := range types.CandidateStatuses {
		dist[status] = 0
	}
	for _, e := range entries {
		status := strings.ToLower(strings.TrimSpace(e.Candidate.Status))
		if status == "" {
			status = types.StatusApplied
		}
		dist[status]++
	}
	return dist
}

func scoreDistribution(entries []Entry) types.MatchScoreDistribution {
	var dist types.MatchScoreDistribution
	for _, e := range entries {
		switch ranking.MatchLabel(e.Candidate.MatchScore) {
		case ranking.LabelExcellent:
			dist.Excellent++
		case ranking.LabelGood:
			dist.Good++
		case ranking.LabelFair:
			dist.Fair++
		default:
			dist.Poor++
		}
	}
	return dist
}

func yearBucket(year int) string {
	if year <= 0 {
		return unknownBucket
	}
	return "Year " + strconv.Itoa(year)
}

func departmentBucket(department string) string {
	if d := strings.TrimSpace(department); d != "" {
		return d
	}
	return unknownBucket
}

// skillsAnalysis counts each skill once per candidate, case-insensitively,
// reporting it under the spelling seen first.
func skillsAnalysis(profiles []*types.CandidateProfile) types.SkillsAnalysis {
	analysis := types.SkillsAnalysis{MostCommonSkills: []types.SkillCount{}}
	if len(profiles) == 0 {
		return analysis
	}

	counts := map[string]int{}
	display := map[string]string{}
	total := 0
	for _, p := range profiles {
		total += len(p.Skills)
		seen := map[string]bool{}
		for _, skill := range p.Skills {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			if _, ok := display[key]; !ok {
				display[key] = strings.TrimSpace(skill)
			}
			counts[key]++
		}
	}

	for key, count := range counts {
		analysis.MostCommonSkills = append(analysis.MostCommonSkills, types.SkillCount{Skill: display[key], Count: count})
	}
	sort.Slice(analysis.MostCommonSkills, func(i, j int) bool {
		a, b := analysis.MostCommonSkills[i], analysis.MostCommonSkills[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Skill < b.Skill
	})
	if len(analysis.MostCommonSkills) > maxCommonSkills {
		analysis.MostCommonSkills = analysis.MostCommonSkills[:maxCommonSkills]
	}

	analysis.AverageSkillCount = round2(float64(total) / float64(len(profiles)))
	return analysis
}

func academicStats(profiles []*types.CandidateProfile) types.AcademicStats {
	var stats types.AcademicStats
	if len(profiles) == 0 {
		return stats
	}

	var gpaSum, atsSum float64
	gpaCount, interns := 0, 0
	for _, p := range profiles {
		if gpa, ok := ranking.CandidateGPA(p); ok {
			gpaSum += gpa
			gpaCount++
		}
		atsSum += float64(p.ATSScore)
		if p.HasInternship {
			interns++
		}
	}

	if gpaCount > 0 {
		stats.AverageGPA = round2(gpaSum / float64(gpaCount))
	}
	stats.AverageATSScore = round2(atsSum / float64(len(profiles)))
	stats.InternshipPercentage = percent(interns, len(profiles))
	return stats
}

// conversionRates reports the share of the pool at each pipeline stage, plus
// how much of the hiring target has been filled.
func conversionRates(status map[string]int, total int, info types.SessionInfo) map[string]float64 {
	rates := map[string]float64{
		"shortlist_rate": percent(status[types.StatusShortlisted]+status[types.StatusHired], total),
		"waitlist_rate":  percent(status[types.StatusWaitlisted], total),
		"hire_rate":      percent(status[types.StatusHired], total),
		"rejection_rate": percent(status[types.StatusRejected], total),
	}
	if info.TargetHires > 0 {
		rates["target_fill_rate"] = percent(info.CurrentHires, info.TargetHires)
	}
	return rates
}

func topPerformers(entries []Entry) []types.TopPerformer {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Candidate.MatchScore > sorted[j].Candidate.MatchScore
	})
	if len(sorted) > maxPerformers {
		sorted = sorted[:maxPerformers]
	}

	performers := make([]types.TopPerformer, 0, len(sorted))
	for _, e := range sorted {
		p := types.TopPerformer{
			CandidateID: e.Candidate.ID,
			StudentID:   e.Candidate.StudentID,
			MatchScore:  e.Candidate.MatchScore,
			Status:      e.Candidate.Status,
		}
		if e.Profile != nil {
			p.SkillsCount = len(e.Profile.Skills)
			p.GPA = e.Profile.GPA
			p.Year = e.Profile.Year
		}
		performers = append(performers, p)
	}
	return performers
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
