package domain

import (
	"context"
	"time"
)

// Job types offered on the resume form and used as the profession filter.
const (
	JobTypeFullTime  = "full-time"
	JobTypePartTime  = "part-time"
	JobTypeContract  = "contract"
	JobTypeFreelance = "freelance"
)

const (
	BusinessTypeOld = "old"
	BusinessTypeNew = "new"
	BusinessTypeAny = "any"
)

// Joining types. The submission form only offers immediate/specific, the
// dashboard also offers notice-period durations.
const (
	JoiningImmediate = "immediate"
	JoiningSpecific  = "specific"
	Joining2Weeks    = "2-weeks"
	Joining1Month    = "1-month"
	Joining2Months   = "2-months"
	Joining3Months   = "3-months"
)

const (
	TrainingYes = "yes"
	TrainingNo  = "no"
	TrainingTry = "try"
)

// Candidate is one resume submission as decoded from the document store.
type Candidate struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Mobile               string    `json:"mobile"`
	Location             string    `json:"location"`
	Age                  int       `json:"age"`
	Experience           string    `json:"experience"`
	JobType              string    `json:"jobType"`
	Cuisines             string    `json:"cuisines"`
	TotalExperienceYears int       `json:"totalExperienceYears"`
	CurrentPosition      string    `json:"currentPosition"`
	CurrentSalary        string    `json:"currentSalary"`
	ExpectedSalary       string    `json:"expectedSalary"`
	PreferredLocation    string    `json:"preferredLocation"`
	PassportNo           string    `json:"passportNo"`
	ProbationPeriod      bool      `json:"probationPeriod"`
	BusinessType         string    `json:"businessType"`
	JoiningType          string    `json:"joiningType"`
	ReadyForTraining     string    `json:"readyForTraining"`
	CandidateConsent     bool      `json:"candidateConsent"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ResumeSubmission is the payload of the resume form. Everything required by
// the form is checked before the document store is called.
type ResumeSubmission struct {
	Name                 string `json:"name" validate:"required,max=120,valid_name,no_emoji"`
	Email                string `json:"email" validate:"required,email"`
	Mobile               string `json:"mobile" validate:"required,valid_phone"`
	Location             string `json:"location" validate:"max=200"`
	Age                  int    `json:"age" validate:"omitempty,min=14,max=100"`
	Experience           string `json:"experience" validate:"required,max=2000"`
	JobType              string `json:"jobType" validate:"required,oneof=full-time part-time contract freelance"`
	Cuisines             string `json:"cuisines" validate:"required,max=500"`
	TotalExperienceYears *int   `json:"totalExperienceYears" validate:"required,min=0,max=70"`
	CurrentPosition      string `json:"currentPosition" validate:"max=200"`
	CurrentSalary        string `json:"currentSalary" validate:"max=100"`
	ExpectedSalary       string `json:"expectedSalary" validate:"max=100"`
	PreferredLocation    string `json:"preferredLocation" validate:"required,max=200"`
	PassportNo           string `json:"passportNo" validate:"max=20"`
	ProbationPeriod      bool   `json:"probationPeriod"`
	BusinessType         string `json:"businessType" validate:"omitempty,oneof=old new any"`
	JoiningType          string `json:"joiningType" validate:"omitempty,oneof=immediate specific 2-weeks 1-month 2-months 3-months"`
	ReadyForTraining     string `json:"readyForTraining" validate:"omitempty,oneof=yes no try"`
	CandidateConsent     bool   `json:"candidateConsent" validate:"required"`
}

// ApplyDefaults fills the form defaults for optional selects.
func (s *ResumeSubmission) ApplyDefaults() {
	if s.BusinessType == "" {
		s.BusinessType = BusinessTypeAny
	}
	if s.JoiningType == "" {
		s.JoiningType = JoiningImmediate
	}
	if s.ReadyForTraining == "" {
		s.ReadyForTraining = TrainingYes
	}
}

// Candidate converts the submission into a record without an id.
func (s *ResumeSubmission) Candidate() *Candidate {
	years := 0
	if s.TotalExperienceYears != nil {
		years = *s.TotalExperienceYears
	}
	return &Candidate{
		Name:                 s.Name,
		Email:                s.Email,
		Mobile:               s.Mobile,
		Location:             s.Location,
		Age:                  s.Age,
		Experience:           s.Experience,
		JobType:              s.JobType,
		Cuisines:             s.Cuisines,
		TotalExperienceYears: years,
		CurrentPosition:      s.CurrentPosition,
		CurrentSalary:        s.CurrentSalary,
		ExpectedSalary:       s.ExpectedSalary,
		PreferredLocation:    s.PreferredLocation,
		PassportNo:           s.PassportNo,
		ProbationPeriod:      s.ProbationPeriod,
		BusinessType:         s.BusinessType,
		JoiningType:          s.JoiningType,
		ReadyForTraining:     s.ReadyForTraining,
		CandidateConsent:     s.CandidateConsent,
	}
}

// FindCandidateByEmail returns the first record whose email equals email
// exactly (case-sensitive). Empty email never matches.
func FindCandidateByEmail(candidates []Candidate, email string) (*Candidate, bool) {
	if email == "" {
		return nil, false
	}
	for i := range candidates {
		if candidates[i].Email == email {
			c := candidates[i]
			return &c, true
		}
	}
	return nil, false
}

type CandidateRepository interface {
	List(ctx context.Context) ([]Candidate, error)
	Create(ctx context.Context, candidate *Candidate) error
	Update(ctx context.Context, id string, patch CandidatePatch) error
	FindByEmail(ctx context.Context, email string) (*Candidate, error)
}
