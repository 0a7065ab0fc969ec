// Package directory derives the filtered, paginated chef list from the full
// set of candidate records. Everything here is a pure function of its inputs.
package directory

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"chefdhundo-backend/internal/domain"
)

const PageSize = 12

// All disables a filter dimension.
const All = "all"

// Experience buckets over total years.
type Experience string

const (
	ExperienceAll     Experience = All
	ExperienceFresher Experience = "fresher"
	ExperienceMedium  Experience = "medium"
	ExperienceHigh    Experience = "high"
	ExperiencePro     Experience = "pro"
)

// ParseExperience accepts a bucket name. Empty means all.
func ParseExperience(s string) (Experience, error) {
	switch e := Experience(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return ExperienceAll, nil
	case ExperienceAll, ExperienceFresher, ExperienceMedium, ExperienceHigh, ExperiencePro:
		return e, nil
	}
	return "", fmt.Errorf("unknown experience filter %q", s)
}

// Bucket classifies total years of experience.
func Bucket(years int) Experience {
	switch {
	case years < 3:
		return ExperienceFresher
	case years <= 6:
		return ExperienceMedium
	case years <= 10:
		return ExperienceHigh
	default:
		return ExperiencePro
	}
}

// Query is one request against the directory.
type Query struct {
	Search     string
	Experience Experience
	Profession string
	Page       int
}

type Result struct {
	Items      []domain.Candidate `json:"items"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
	Page       int                `json:"page"`
}

// Matches reports whether c passes all three filters of q.
func Matches(c domain.Candidate, q Query) bool {
	return matchesSearch(c, q.Search) &&
		matchesExperience(c, q.Experience) &&
		matchesProfession(c, q.Profession)
}

func matchesSearch(c domain.Candidate, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{
		c.Name,
		c.Email,
		c.Mobile,
		strconv.Itoa(c.TotalExperienceYears),
		c.JobType,
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesExperience(c domain.Candidate, e Experience) bool {
	if e == "" || e == ExperienceAll {
		return true
	}
	return Bucket(c.TotalExperienceYears) == e
}

func matchesProfession(c domain.Candidate, profession string) bool {
	if profession == "" || profession == All {
		return true
	}
	return c.JobType == profession
}

// Filter returns the records matching q in their original order.
func Filter(records []domain.Candidate, q Query) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(records))
	for _, c := range records {
		if Matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

// TotalPages is ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// ClampPage keeps page within [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Apply filters records and cuts out the requested page.
func Apply(records []domain.Candidate, q Query) Result {
	filtered := Filter(records, q)
	total := len(filtered)
	pages := TotalPages(total)
	page := ClampPage(q.Page, pages)

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Items:      filtered[start:end],
		Total:      total,
		TotalPages: pages,
		Page:       page,
	}
}

// Professions lists the distinct job types of the unfiltered records,
// sorted ascending. Empty values are dropped.
func Professions(records []domain.Candidate) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, c := range records {
		if c.JobType == "" {
			continue
		}
		if _, ok := seen[c.JobType]; ok {
			continue
		}
		seen[c.JobType] = struct{}{}
		out = append(out, c.JobType)
	}
	sort.Strings(out)
	return out
}
