package domain_test

import (
	"testing"

	"chefdhundo-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchForField(t *testing.T) {
	t.Run("Should accept JSON numbers and numeric strings for number fields", func(t *testing.T) {
		p, err := domain.PatchForField(domain.FieldAge, float64(28))
		require.NoError(t, err)
		assert.Equal(t, 28, *p.Age)

		p, err = domain.PatchForField(domain.FieldTotalExperienceYears, " 7 ")
		require.NoError(t, err)
		assert.Equal(t, 7, *p.TotalExperienceYears)

		p, err = domain.PatchForField(domain.FieldAge, "")
		require.NoError(t, err)
		assert.Equal(t, 0, *p.Age)

		_, err = domain.PatchForField(domain.FieldAge, 2.5)
		assert.Error(t, err)
	})

	t.Run("Should accept booleans and boolean strings", func(t *testing.T) {
		p, err := domain.PatchForField(domain.FieldProbationPeriod, "true")
		require.NoError(t, err)
		assert.True(t, *p.ProbationPeriod)

		_, err = domain.PatchForField(domain.FieldCandidateConsent, "maybe")
		assert.Error(t, err)
	})

	t.Run("Should build a single-field patch", func(t *testing.T) {
		p, err := domain.PatchForField(domain.FieldLocation, "Goa")
		require.NoError(t, err)
		assert.Equal(t, []string{domain.FieldLocation}, p.Fields())
	})

	t.Run("Should refuse the email join key", func(t *testing.T) {
		_, err := domain.PatchForField("email", "x@y.com")
		assert.EqualError(t, err, "field email cannot be edited")
	})
}

func TestPatchApply(t *testing.T) {
	name := "Ravi K"
	zero := 0
	c := domain.Candidate{Name: "Ravi", Age: 30, Location: "Pune"}

	domain.CandidatePatch{Name: &name, Age: &zero}.Apply(&c)

	assert.Equal(t, "Ravi K", c.Name)
	assert.Equal(t, 0, c.Age)
	assert.Equal(t, "Pune", c.Location)
	assert.True(t, domain.CandidatePatch{}.IsEmpty())
}
