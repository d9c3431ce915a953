// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/campus-match/internal/skills"
	"github.com/jonathan/campus-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most limit runes, ending in "..." when cut
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// writeList writes up to maxItemsToShow bullet items and a remainder line
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// writeSkillGroups lists skills under their vocabulary category.
// Skills outside the vocabulary are listed as unlisted.
func writeSkillGroups(sb *strings.Builder, names []string) {
	have := make(map[string]bool, len(names))
	for _, name := range names {
		have[strings.ToLower(name)] = true
	}

	grouped := skills.CandidateVocabulary().ExtractByCategory(strings.Join(names, ", "))
	placed := make(map[string]bool, len(names))
	for _, category := range skills.Categories {
		var members []string
		for _, name := range grouped[category] {
			key := strings.ToLower(name)
			if have[key] && !placed[key] {
				placed[key] = true
				members = append(members, name)
			}
		}
		if len(members) > 0 {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", category, strings.Join(members, ", ")))
		}
	}

	var unlisted []string
	for _, name := range names {
		if !placed[strings.ToLower(name)] {
			unlisted = append(unlisted, name)
		}
	}
	if len(unlisted) > 0 {
		sb.WriteString(fmt.Sprintf("  unlisted: %s\n", strings.Join(unlisted, ", ")))
	}
}

func formatPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

// PrintCandidateProfile outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintCandidateProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:       %s\n", profile.Name))
	}
	sb.WriteString(fmt.Sprintf("ATS score:  %d\n", profile.ATSScore))
	sb.WriteString(fmt.Sprintf("Internship: %t\n", profile.HasInternship))
	sb.WriteString(fmt.Sprintf("CGPA: %s  10th: %s  12th: %s\n",
		formatPercent(profile.AcademicInfo.CGPA),
		formatPercent(profile.AcademicInfo.TenthPercentage),
		formatPercent(profile.AcademicInfo.TwelfthPercentage)))

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(profile.Skills), strings.Join(profile.Skills, ", ")))
		writeSkillGroups(&sb, profile.Skills)
	}
	writeList(&sb, "Projects", profile.Projects)
	writeList(&sb, "Experience", profile.ExperienceEntries)

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobRequirement outputs a human-readable summary of the parsed job requirement.
func (p *Printer) PrintJobRequirement(job *types.JobRequirement) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:  %s\n", job.Title))
	if job.Role != "" {
		sb.WriteString(fmt.Sprintf("Role:   %s\n", job.Role))
	}
	sb.WriteString("\n")

	writeList(&sb, "Required Skills", job.RequiredSkills)

	e := job.Eligibility
	if len(e.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education: %s\n", strings.Join(e.Education, ", ")))
	}
	if e.ExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("Experience: %d+ years\n", e.ExperienceYears))
	}
	if e.CGPAMinimum > 0 {
		sb.WriteString(fmt.Sprintf("Minimum CGPA: %.1f\n", e.CGPAMinimum))
	}
	if e.RestrictsYears() {
		sb.WriteString(fmt.Sprintf("Eligible years: %s\n", joinInts(e.EligibleYears)))
	} else {
		sb.WriteString("Eligible years: all\n")
	}
	writeList(&sb, "Specific Requirements", e.SpecificRequirements)

	p.printBox("PARSED JOB REQUIREMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchResult outputs the factor breakdown of one candidate's match.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.CandidateRef != "" {
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", result.CandidateRef))
	}
	sb.WriteString(fmt.Sprintf("Overall:   %.2f (%s)\n\n", result.OverallScore, result.Label))

	factors := []struct {
		name  string
		score types.FactorScore
	}{
		{"Skills", result.Skills.FactorScore},
		{"Education", result.Education.FactorScore},
		{"Experience", result.Experience.FactorScore},
		{"Academic", result.Academic.FactorScore},
		{"Year", result.YearEligibility.FactorScore},
	}
	for _, f := range factors {
		sb.WriteString(fmt.Sprintf("%-11s %6.2f  x %.2f\n", f.name, f.score.Score, f.score.Weight))
	}
	sb.WriteString("\n")

	if len(result.Skills.MissingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Missing: %s\n", strings.Join(result.Skills.MissingSkills, ", ")))
	}
	writeList(&sb, "Recommendations", result.Recommendations)

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedCandidates outputs the top N ranked candidates with scores and labels.
func (p *Printer) PrintRankedCandidates(ranked *types.RankedCandidates) {
	if ranked == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates at or above %.0f: %d\n", ranked.MinScore, len(ranked.Ranked)))
	if ranked.Skipped > 0 {
		sb.WriteString(fmt.Sprintf("Skipped (scoring failed): %d\n", ranked.Skipped))
	}

	count := min(len(ranked.Ranked), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		c := ranked.Ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, c.CandidateRef))
		sb.WriteString(fmt.Sprintf("    Score: %.2f  %s\n", c.Score, c.Label))
	}

	if len(ranked.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked.Ranked)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSessionAnalytics outputs the pool statistics of a hiring session.
func (p *Printer) PrintSessionAnalytics(a *types.SessionAnalytics) {
	if a == nil {
		return
	}

	var sb strings.Builder
	info := a.SessionInfo
	sb.WriteString(fmt.Sprintf("Session: %s (%s)\n", info.Title, info.Role))
	sb.WriteString(fmt.Sprintf("Hires:   %d / %d\n\n", info.CurrentHires, info.TargetHires))

	stats := a.CandidateStats
	sb.WriteString(fmt.Sprintf("Candidates: %d\n", stats.TotalCandidates))
	for _, status := range types.CandidateStatuses {
		sb.WriteString(fmt.Sprintf("  %-12s %d\n", status, stats.StatusDistribution[status]))
	}
	d := stats.MatchScoreDistribution
	sb.WriteString(fmt.Sprintf("Excellent %d  Good %d  Fair %d  Poor %d\n\n", d.Excellent, d.Good, d.Fair, d.Poor))

	skills := make([]string, 0, len(stats.SkillsAnalysis.MostCommonSkills))
	for _, s := range stats.SkillsAnalysis.MostCommonSkills {
		skills = append(skills, fmt.Sprintf("%s (%d)", s.Skill, s.Count))
	}
	writeList(&sb, "Top Skills", skills)

	ac := stats.AcademicStats
	sb.WriteString(fmt.Sprintf("Avg GPA %.2f  Avg ATS %.2f  Interns %.2f%%\n", ac.AverageGPA, ac.AverageATSScore, ac.InternshipPercentage))

	rates := make([]string, 0, len(a.PipelineMetrics.ConversionRates))
	for name, rate := range a.PipelineMetrics.ConversionRates {
		rates = append(rates, fmt.Sprintf("%s %.2f%%", name, rate))
	}
	sort.Strings(rates)
	writeList(&sb, "Conversion", rates)

	p.printBox("SESSION ANALYTICS", strings.TrimSuffix(sb.String(), "\n"))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
