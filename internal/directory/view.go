package directory

import "chefdhundo-backend/internal/domain"

// View is the per-viewer filter state. Changing any filter resets the page
// to 1; the page is clamped against the filtered set on every change.
type View struct {
	search     string
	experience Experience
	profession string
	page       int
}

func NewView() *View {
	return &View{experience: ExperienceAll, profession: All, page: 1}
}

func (v *View) Query() Query {
	return Query{Search: v.search, Experience: v.experience, Profession: v.profession, Page: v.page}
}

func (v *View) Page() int { return v.page }

func (v *View) SetSearch(term string) {
	v.search = term
	v.page = 1
}

func (v *View) SetExperience(e Experience) {
	if e == "" {
		e = ExperienceAll
	}
	v.experience = e
	v.page = 1
}

func (v *View) SetProfession(p string) {
	if p == "" {
		p = All
	}
	v.profession = p
	v.page = 1
}

// SetPage moves to page, clamped against the current filtered records.
func (v *View) SetPage(records []domain.Candidate, page int) {
	q := v.Query()
	v.page = ClampPage(page, TotalPages(len(Filter(records, q))))
}

// Clear resets every filter and returns to page 1.
func (v *View) Clear() {
	*v = *NewView()
}

// Result evaluates the view against records.
func (v *View) Result(records []domain.Candidate) Result {
	res := Apply(records, v.Query())
	v.page = res.Page
	return res
}
