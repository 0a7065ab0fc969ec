package notion

import (
	"context"
	"fmt"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/pkg/notion"
)

// Resume database property names.
const (
	propName                 = "Name"
	propEmail                = "Email"
	propMobile               = "Mobile"
	propLocation             = "Location"
	propAge                  = "Age"
	propExperience           = "Experience"
	propJobType              = "JobType"
	propCuisines             = "Cuisines"
	propTotalExperienceYears = "TotalExperienceYears"
	propCurrentPosition      = "CurrentPosition"
	propCurrentSalary        = "CurrentSalary"
	propExpectedSalary       = "ExpectedSalary"
	propPreferredLocation    = "PreferredLocation"
	propPassportNo           = "PassportNo"
	propProbationPeriod      = "ProbationPeriod"
	propBusinessType         = "BusinessType"
	propJoiningType          = "JoiningType"
	propReadyForTraining     = "ReadyForTraining"
	propCandidateConsent     = "CandidateConsent"
)

type candidateRepo struct {
	pages      Pages
	databaseID string
}

func NewCandidateRepository(pages Pages, databaseID string) domain.CandidateRepository {
	return &candidateRepo{pages: pages, databaseID: databaseID}
}

func (r *candidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	pages, err := r.pages.QueryDatabase(ctx, r.databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("query resumes: %w", err)
	}

	out := make([]domain.Candidate, 0, len(pages))
	for i := range pages {
		out = append(out, candidateFromPage(&pages[i]))
	}
	return out, nil
}

func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	page, err := r.pages.CreatePage(ctx, r.databaseID, candidateProperties(c))
	if err != nil {
		return fmt.Errorf("create resume: %w", err)
	}
	c.ID = page.ID
	c.CreatedAt = page.CreatedTime
	c.UpdatedAt = page.LastEditedTime
	return nil
}

func (r *candidateRepo) Update(ctx context.Context, id string, patch domain.CandidatePatch) error {
	if _, err := r.pages.UpdatePage(ctx, id, patchProperties(patch)); err != nil {
		return fmt.Errorf("update resume %s: %w", id, err)
	}
	return nil
}

func (r *candidateRepo) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := domain.FindCandidateByEmail(all, email)
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	return c, nil
}

func candidateFromPage(p *notion.Page) domain.Candidate {
	props := p.Properties
	return domain.Candidate{
		ID:                   p.ID,
		Name:                 props.Text(propName, notion.KindTitle),
		Email:                props.Text(propEmail, notion.KindEmail),
		Mobile:               props.Text(propMobile, notion.KindPhone),
		Location:             props.Text(propLocation, notion.KindRichText),
		Age:                  props.Int(propAge),
		Experience:           props.Text(propExperience, notion.KindRichText),
		JobType:              props.Text(propJobType, notion.KindSelect),
		Cuisines:             props.Text(propCuisines, notion.KindRichText),
		TotalExperienceYears: props.Int(propTotalExperienceYears),
		CurrentPosition:      props.Text(propCurrentPosition, notion.KindRichText),
		CurrentSalary:        props.Text(propCurrentSalary, notion.KindRichText),
		ExpectedSalary:       props.Text(propExpectedSalary, notion.KindRichText),
		PreferredLocation:    props.Text(propPreferredLocation, notion.KindRichText),
		PassportNo:           props.Text(propPassportNo, notion.KindRichText),
		ProbationPeriod:      props.Checkbox(propProbationPeriod),
		BusinessType:         props.Text(propBusinessType, notion.KindSelect),
		JoiningType:          props.Text(propJoiningType, notion.KindSelect),
		ReadyForTraining:     props.Text(propReadyForTraining, notion.KindSelect),
		CandidateConsent:     props.Checkbox(propCandidateConsent),
		CreatedAt:            p.CreatedTime,
		UpdatedAt:            p.LastEditedTime,
	}
}

func candidateProperties(c *domain.Candidate) notion.Properties {
	return notion.Properties{
		propName:                 notion.Title(c.Name),
		propEmail:                notion.Email(c.Email),
		propMobile:               notion.Phone(c.Mobile),
		propLocation:             notion.Text(c.Location),
		propAge:                  notion.Number(optionalNumber(c.Age)),
		propExperience:           notion.Text(c.Experience),
		propJobType:              notion.Select(c.JobType),
		propCuisines:             notion.Text(c.Cuisines),
		propTotalExperienceYears: notion.Number(optionalNumber(c.TotalExperienceYears)),
		propCurrentPosition:      notion.Text(c.CurrentPosition),
		propCurrentSalary:        notion.Text(c.CurrentSalary),
		propExpectedSalary:       notion.Text(c.ExpectedSalary),
		propPreferredLocation:    notion.Text(c.PreferredLocation),
		propPassportNo:           notion.Text(c.PassportNo),
		propProbationPeriod:      notion.Checkbox(c.ProbationPeriod),
		propBusinessType:         notion.Select(c.BusinessType),
		propJoiningType:          notion.Select(c.JoiningType),
		propReadyForTraining:     notion.Select(c.ReadyForTraining),
		propCandidateConsent:     notion.Checkbox(c.CandidateConsent),
	}
}

// patchProperties builds the update body from the fields present in patch.
// A zero number clears the property.
func patchProperties(p domain.CandidatePatch) notion.Properties {
	props := notion.Properties{}
	text := func(name string, v *string, build func(string) notion.Property) {
		if v != nil {
			props[name] = build(*v)
		}
	}
	number := func(name string, v *int) {
		if v != nil {
			props[name] = notion.Number(optionalNumber(*v))
		}
	}
	check := func(name string, v *bool) {
		if v != nil {
			props[name] = notion.Checkbox(*v)
		}
	}

	text(propName, p.Name, notion.Title)
	text(propMobile, p.Mobile, notion.Phone)
	text(propLocation, p.Location, notion.Text)
	number(propAge, p.Age)
	text(propExperience, p.Experience, notion.Text)
	text(propJobType, p.JobType, notion.Select)
	text(propCuisines, p.Cuisines, notion.Text)
	number(propTotalExperienceYears, p.TotalExperienceYears)
	text(propCurrentPosition, p.CurrentPosition, notion.Text)
	text(propCurrentSalary, p.CurrentSalary, notion.Text)
	text(propExpectedSalary, p.ExpectedSalary, notion.Text)
	text(propPreferredLocation, p.PreferredLocation, notion.Text)
	text(propPassportNo, p.PassportNo, notion.Text)
	check(propProbationPeriod, p.ProbationPeriod)
	text(propBusinessType, p.BusinessType, notion.Select)
	text(propJoiningType, p.JoiningType, notion.Select)
	text(propReadyForTraining, p.ReadyForTraining, notion.Select)
	check(propCandidateConsent, p.CandidateConsent)
	return props
}
