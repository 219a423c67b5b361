package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deuxal/insurance-portal/internal/catalog"
)

type recordingSubmitter struct {
	calls []Form
	err   error
}

func (s *recordingSubmitter) Submit(_ context.Context, form Form) error {
	s.calls = append(s.calls, form)
	return s.err
}

func str(v string) *string { return &v }

func validController() *Controller {
	c := New()
	c.Update(Patch{
		FirstName:  str("Kossi"),
		LastName:   str("Mensah"),
		Phone:      str("+228 90 00 00 00"),
		Address:    str("Lomé, Bè"),
		Energy:     str("essence"),
		Seats:      str("4"),
		Horsepower: str("7"),
	})
	c.AttachDocument(Document{Name: "carte.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})
	c.ToggleGuarantee("vol_incendie", true)
	c.ToggleCompany("NSIA Assurances", true)
	c.ToggleDuration("1_an", true)
	for c.Next() {
	}
	return c
}

func TestNextPrevBounds(t *testing.T) {
	c := New()
	assert.Equal(t, StepPersonalInfo, c.Step())
	assert.False(t, c.Prev())
	assert.Equal(t, StepPersonalInfo, c.Step())

	for i := 2; i <= StepCount; i++ {
		require.True(t, c.Next())
		assert.Equal(t, Step(i), c.Step())
	}
	assert.False(t, c.Next())
	assert.Equal(t, StepVerification, c.Step())

	for i := StepCount - 1; i >= 1; i-- {
		require.True(t, c.Prev())
		assert.Equal(t, Step(i), c.Step())
	}
	assert.False(t, c.Prev())
}

func TestMandatoryGuaranteesCannotBeRemoved(t *testing.T) {
	c := New()
	assert.Equal(t, []string{"rc", "protection"}, c.Form().Guarantees)

	assert.False(t, c.ToggleGuarantee("rc", false))
	assert.False(t, c.ToggleGuarantee("protection", false))
	assert.Contains(t, c.Form().Guarantees, "rc")
	assert.Contains(t, c.Form().Guarantees, "protection")

	assert.True(t, c.ToggleGuarantee("assistance", true))
	assert.False(t, c.ToggleGuarantee("assistance", true))
	assert.True(t, c.ToggleGuarantee("assistance", false))
	assert.False(t, c.ToggleGuarantee("unknown", true))
	assert.Equal(t, []string{"rc", "protection"}, c.Form().Guarantees)
}

func TestSelectionCaps(t *testing.T) {
	c := New()
	companies := catalog.InsuranceCompanies()
	for _, name := range companies[:3] {
		require.True(t, c.ToggleCompany(name, true))
	}
	assert.False(t, c.ToggleCompany(companies[3], true))
	assert.Len(t, c.Form().InsuranceCompanies, 3)

	require.True(t, c.ToggleCompany(companies[0], false))
	assert.True(t, c.ToggleCompany(companies[3], true))

	require.True(t, c.ToggleDuration("1_mois", true))
	require.True(t, c.ToggleDuration("3_mois", true))
	assert.False(t, c.ToggleDuration("1_an", true))
	assert.Equal(t, []string{"1_mois", "3_mois"}, c.Form().ContractDurations)
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Controller)
		wantStep  Step
		wantGroup string
	}{
		{
			name:      "empty address",
			mutate:    func(c *Controller) { c.Update(Patch{Address: str("")}) },
			wantStep:  StepPersonalInfo,
			wantGroup: GroupPersonal,
		},
		{
			name:      "blank horsepower",
			mutate:    func(c *Controller) { c.Update(Patch{Horsepower: str("  ")}) },
			wantStep:  StepVehicleInfo,
			wantGroup: GroupVehicle,
		},
		{
			name:      "no document",
			mutate:    func(c *Controller) { c.RemoveDocument() },
			wantStep:  StepVehicleInfo,
			wantGroup: GroupDocument,
		},
		{
			name:      "no company",
			mutate:    func(c *Controller) { c.ToggleCompany("NSIA Assurances", false) },
			wantStep:  StepCompanies,
			wantGroup: GroupCompanies,
		},
		{
			name:      "no duration",
			mutate:    func(c *Controller) { c.ToggleDuration("1_an", false) },
			wantStep:  StepDurations,
			wantGroup: GroupDurations,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validController()
			tt.mutate(c)
			sub := &recordingSubmitter{}

			err := c.Submit(context.Background(), sub)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantGroup, verr.Group)
			assert.Equal(t, tt.wantStep, c.Step())
			assert.Empty(t, sub.calls)
		})
	}
}

func TestSubmitOnlyFromVerification(t *testing.T) {
	c := validController()
	c.Prev()
	sub := &recordingSubmitter{}

	err := c.Submit(context.Background(), sub)

	assert.ErrorIs(t, err, ErrNotOnVerification)
	assert.Equal(t, StepDurations, c.Step())
	assert.Empty(t, sub.calls)
}

func TestSubmitSuccessResets(t *testing.T) {
	c := validController()
	sub := &recordingSubmitter{}

	require.NoError(t, c.Submit(context.Background(), sub))

	require.Len(t, sub.calls, 1)
	got := sub.calls[0]
	assert.Equal(t, "4", got.Seats)
	assert.Equal(t, []string{"rc", "protection", "vol_incendie"}, got.Guarantees)
	assert.Equal(t, []string{"NSIA Assurances"}, got.InsuranceCompanies)
	require.NotNil(t, got.Document)

	assert.Equal(t, StepPersonalInfo, c.Step())
	assert.Equal(t, NewForm(), c.Form())
}

func TestSubmitFailureKeepsState(t *testing.T) {
	c := validController()
	before := c.State()
	sub := &recordingSubmitter{err: errors.New("Erreur lors de la soumission: boom")}

	err := c.Submit(context.Background(), sub)

	assert.EqualError(t, err, "Erreur lors de la soumission: boom")
	assert.Equal(t, StepVerification, c.Step())
	assert.Equal(t, before, c.State())
}

func TestRestoreNormalizes(t *testing.T) {
	c := Restore(State{Step: 42, Form: Form{Guarantees: []string{"assistance"}}})

	assert.Equal(t, StepPersonalInfo, c.Step())
	assert.ElementsMatch(t, []string{"rc", "protection", "assistance"}, c.Form().Guarantees)
	assert.NotNil(t, c.Form().InsuranceCompanies)
	assert.NotNil(t, c.Form().ContractDurations)
}

func TestStateIsACopy(t *testing.T) {
	c := New()
	s := c.State()
	s.Form.Guarantees[0] = "changed"
	assert.Equal(t, "rc", c.Form().Guarantees[0])
}
