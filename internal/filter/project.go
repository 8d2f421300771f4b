package filter

import (
	"sort"
	"strings"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
)

// ProjectApplications returns the subset and ordering of rows to render.
// Pure function of (rows, f): the input slice is not modified and ties keep
// the pre-filter order, so output is deterministic for a fixed input.
func ProjectApplications(rows []model.Application, f ApplicationFilter) []model.Application {
	out := make([]model.Application, 0, len(rows))
	for _, row := range rows {
		if !matchesSearch(f.Search, row.Job.Title, row.Job.Company.Name,
			row.Talent.FirstName+" "+row.Talent.LastName, row.Talent.Title) {
			continue
		}
		if len(f.Statuses) > 0 && !Contains(f.Statuses, row.Status) {
			continue
		}
		out = append(out, row)
	}

	switch f.SortBy {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt.Before(out[j].AppliedAt) })
	case SortStatus:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	default: // SortRecent
		sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	}

	return out
}

// ProjectJobs returns the subset and ordering of job posts to render.
func ProjectJobs(rows []model.JobPost, f JobFilter) []model.JobPost {
	out := make([]model.JobPost, 0, len(rows))
	for _, row := range rows {
		if !matchesSearch(f.Search, row.Title, row.Company.Name, row.Location) {
			continue
		}
		if len(f.Statuses) > 0 && !Contains(f.Statuses, row.Status) {
			continue
		}
		if !salaryOverlaps(row, f.SalaryMin, f.SalaryMax) {
			continue
		}
		if f.RemoteOnly != nil && *f.RemoteOnly && (row.Remote == nil || !*row.Remote) {
			continue
		}
		out = append(out, row)
	}

	switch f.SortBy {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PostTime.Before(out[j].PostTime) })
	case SortStatus:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PostTime.After(out[j].PostTime) })
	}

	return out
}

// ProjectTalents returns the subset of talent profiles to render, keeping
// the input order.
func ProjectTalents(rows []model.TalentProfile, f TalentFilter) []model.TalentProfile {
	out := make([]model.TalentProfile, 0, len(rows))
	for _, row := range rows {
		if !matchesSearch(f.Search, row.FirstName+" "+row.LastName, row.Title) {
			continue
		}
		if !hasAllSkills(row, f.Skills) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// matchesSearch is a case-insensitive substring match against a fixed set of
// display fields. Empty search matches everything.
func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// salaryOverlaps keeps jobs whose advertised range intersects [min, max].
// Jobs without salary info are always kept.
func salaryOverlaps(row model.JobPost, min, max int) bool {
	if row.SalaryMin == nil && row.SalaryMax == nil {
		return true
	}
	lo, hi := min, max
	if row.SalaryMin != nil && *row.SalaryMin > hi {
		return false
	}
	if row.SalaryMax != nil && *row.SalaryMax < lo {
		return false
	}
	return true
}

func hasAllSkills(row model.TalentProfile, skills []string) bool {
	for _, want := range skills {
		found := false
		for _, have := range row.Skills {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Contains checks if a string is present in a slice of strings.
func Contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
