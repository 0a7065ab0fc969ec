package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CandidatePatch is a partial update of a Candidate. Nil fields are left
// untouched. Email is the join key and cannot be patched.
type CandidatePatch struct {
	Name                 *string `json:"name,omitempty" validate:"omitempty,max=120,valid_name,no_emoji"`
	Mobile               *string `json:"mobile,omitempty" validate:"omitempty,valid_phone"`
	Location             *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Age                  *int    `json:"age,omitempty" validate:"omitempty,min=0,max=100"`
	Experience           *string `json:"experience,omitempty" validate:"omitempty,max=2000"`
	JobType              *string `json:"jobType,omitempty" validate:"omitempty,oneof=full-time part-time contract freelance"`
	Cuisines             *string `json:"cuisines,omitempty" validate:"omitempty,max=500"`
	TotalExperienceYears *int    `json:"totalExperienceYears,omitempty" validate:"omitempty,min=0,max=70"`
	CurrentPosition      *string `json:"currentPosition,omitempty" validate:"omitempty,max=200"`
	CurrentSalary        *string `json:"currentSalary,omitempty" validate:"omitempty,max=100"`
	ExpectedSalary       *string `json:"expectedSalary,omitempty" validate:"omitempty,max=100"`
	PreferredLocation    *string `json:"preferredLocation,omitempty" validate:"omitempty,max=200"`
	PassportNo           *string `json:"passportNo,omitempty" validate:"omitempty,max=20"`
	ProbationPeriod      *bool   `json:"probationPeriod,omitempty"`
	BusinessType         *string `json:"businessType,omitempty" validate:"omitempty,oneof=old new any"`
	JoiningType          *string `json:"joiningType,omitempty" validate:"omitempty,oneof=immediate specific 2-weeks 1-month 2-months 3-months"`
	ReadyForTraining     *string `json:"readyForTraining,omitempty" validate:"omitempty,oneof=yes no try"`
	CandidateConsent     *bool   `json:"candidateConsent,omitempty"`
}

// Patchable field names, in form order.
const (
	FieldName                 = "name"
	FieldMobile               = "mobile"
	FieldLocation             = "location"
	FieldAge                  = "age"
	FieldExperience           = "experience"
	FieldJobType              = "jobType"
	FieldCuisines             = "cuisines"
	FieldTotalExperienceYears = "totalExperienceYears"
	FieldCurrentPosition      = "currentPosition"
	FieldCurrentSalary        = "currentSalary"
	FieldExpectedSalary       = "expectedSalary"
	FieldPreferredLocation    = "preferredLocation"
	FieldPassportNo           = "passportNo"
	FieldProbationPeriod      = "probationPeriod"
	FieldBusinessType         = "businessType"
	FieldJoiningType          = "joiningType"
	FieldReadyForTraining     = "readyForTraining"
	FieldCandidateConsent     = "candidateConsent"
)

// Fields lists the names of the fields present in the patch.
func (p CandidatePatch) Fields() []string {
	var fields []string
	add := func(present bool, name string) {
		if present {
			fields = append(fields, name)
		}
	}
	add(p.Name != nil, FieldName)
	add(p.Mobile != nil, FieldMobile)
	add(p.Location != nil, FieldLocation)
	add(p.Age != nil, FieldAge)
	add(p.Experience != nil, FieldExperience)
	add(p.JobType != nil, FieldJobType)
	add(p.Cuisines != nil, FieldCuisines)
	add(p.TotalExperienceYears != nil, FieldTotalExperienceYears)
	add(p.CurrentPosition != nil, FieldCurrentPosition)
	add(p.CurrentSalary != nil, FieldCurrentSalary)
	add(p.ExpectedSalary != nil, FieldExpectedSalary)
	add(p.PreferredLocation != nil, FieldPreferredLocation)
	add(p.PassportNo != nil, FieldPassportNo)
	add(p.ProbationPeriod != nil, FieldProbationPeriod)
	add(p.BusinessType != nil, FieldBusinessType)
	add(p.JoiningType != nil, FieldJoiningType)
	add(p.ReadyForTraining != nil, FieldReadyForTraining)
	add(p.CandidateConsent != nil, FieldCandidateConsent)
	return fields
}

func (p CandidatePatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply merges the present fields into c.
func (p CandidatePatch) Apply(c *Candidate) {
	setString(&c.Name, p.Name)
	setString(&c.Mobile, p.Mobile)
	setString(&c.Location, p.Location)
	if p.Age != nil {
		c.Age = *p.Age
	}
	setString(&c.Experience, p.Experience)
	setString(&c.JobType, p.JobType)
	setString(&c.Cuisines, p.Cuisines)
	if p.TotalExperienceYears != nil {
		c.TotalExperienceYears = *p.TotalExperienceYears
	}
	setString(&c.CurrentPosition, p.CurrentPosition)
	setString(&c.CurrentSalary, p.CurrentSalary)
	setString(&c.ExpectedSalary, p.ExpectedSalary)
	setString(&c.PreferredLocation, p.PreferredLocation)
	setString(&c.PassportNo, p.PassportNo)
	if p.ProbationPeriod != nil {
		c.ProbationPeriod = *p.ProbationPeriod
	}
	setString(&c.BusinessType, p.BusinessType)
	setString(&c.JoiningType, p.JoiningType)
	setString(&c.ReadyForTraining, p.ReadyForTraining)
	if p.CandidateConsent != nil {
		c.CandidateConsent = *p.CandidateConsent
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// PatchForField builds a single-field patch from a loosely typed value, as
// sent by the dashboard editor (strings, JSON numbers or booleans).
func PatchForField(field string, value interface{}) (CandidatePatch, error) {
	var p CandidatePatch

	text := func() (*string, error) {
		switch v := value.(type) {
		case string:
			return &v, nil
		case float64:
			s := strconv.FormatFloat(v, 'f', -1, 64)
			return &s, nil
		case int:
			s := strconv.Itoa(v)
			return &s, nil
		}
		return nil, fmt.Errorf("field %s expects text", field)
	}
	number := func() (*int, error) {
		switch v := value.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("field %s expects a whole number", field)
			}
			n := int(v)
			return &n, nil
		case int:
			return &v, nil
		case string:
			v = strings.TrimSpace(v)
			if v == "" {
				n := 0
				return &n, nil
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("field %s expects a whole number", field)
			}
			return &n, nil
		}
		return nil, fmt.Errorf("field %s expects a whole number", field)
	}
	boolean := func() (*bool, error) {
		switch v := value.(type) {
		case bool:
			return &v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("field %s expects true or false", field)
			}
			return &b, nil
		}
		return nil, fmt.Errorf("field %s expects true or false", field)
	}

	var err error
	switch field {
	case FieldName:
		p.Name, err = text()
	case FieldMobile:
		p.Mobile, err = text()
	case FieldLocation:
		p.Location, err = text()
	case FieldAge:
		p.Age, err = number()
	case FieldExperience:
		p.Experience, err = text()
	case FieldJobType:
		p.JobType, err = text()
	case FieldCuisines:
		p.Cuisines, err = text()
	case FieldTotalExperienceYears:
		p.TotalExperienceYears, err = number()
	case FieldCurrentPosition:
		p.CurrentPosition, err = text()
	case FieldCurrentSalary:
		p.CurrentSalary, err = text()
	case FieldExpectedSalary:
		p.ExpectedSalary, err = text()
	case FieldPreferredLocation:
		p.PreferredLocation, err = text()
	case FieldPassportNo:
		p.PassportNo, err = text()
	case FieldProbationPeriod:
		p.ProbationPeriod, err = boolean()
	case FieldBusinessType:
		p.BusinessType, err = text()
	case FieldJoiningType:
		p.JoiningType, err = text()
	case FieldReadyForTraining:
		p.ReadyForTraining, err = text()
	case FieldCandidateConsent:
		p.CandidateConsent, err = boolean()
	default:
		return p, fmt.Errorf("field %s cannot be edited", field)
	}
	return p, err
}
