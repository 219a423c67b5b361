package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestLabel(t *testing.T) {
	tests := []struct {
		name        string
		requestType string
		category    string
		want        string
	}{
		{name: "insurance claim", requestType: "insurance", category: "claim", want: "Déclarer un sinistre"},
		{name: "service washing", requestType: "service", category: "washing", want: "Lavage"},
		{name: "type is ignored in lookup", requestType: "service", category: "renew", want: "Renouveler la police"},
		{name: "unknown category passthrough", requestType: "service", category: "unknown_code", want: "unknown_code"},
		{name: "empty category passthrough", requestType: "insurance", category: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequestLabel(tt.requestType, tt.category))
		})
	}
}

func TestMandatoryGuarantees(t *testing.T) {
	assert.Equal(t, []string{GuaranteeCivilLiability, GuaranteeDriverProtection}, MandatoryGuarantees())
	assert.True(t, IsMandatoryGuarantee("rc"))
	assert.True(t, IsMandatoryGuarantee("protection"))
	assert.False(t, IsMandatoryGuarantee("vol_incendie"))
	assert.False(t, IsMandatoryGuarantee("nope"))
}

func TestLabelsFallbackToCode(t *testing.T) {
	assert.Equal(t, "Tierce Complète", GuaranteeLabel("tierce_complete"))
	assert.Equal(t, "mystery", GuaranteeLabel("mystery"))
	assert.Equal(t, "6 mois", DurationLabel("6_mois"))
	assert.Equal(t, "2_ans", DurationLabel("2_ans"))
	assert.Equal(t, "Électrique", EnergyLabel("electrique"))
}

func TestRequestCategories(t *testing.T) {
	assert.Len(t, RequestCategories(RequestTypeInsurance), 4)
	assert.Len(t, RequestCategories(RequestTypeService), 12)
	assert.Nil(t, RequestCategories("other"))

	assert.True(t, HasRequestCategory(RequestTypeInsurance, "suspend"))
	assert.False(t, HasRequestCategory(RequestTypeInsurance, "washing"))
	assert.True(t, HasRequestCategory(RequestTypeService, "fuel_voucher"))
}

func TestTablesAreCopies(t *testing.T) {
	g := Guarantees()
	g[0].Label = "changed"
	assert.Equal(t, "Responsabilité Civile", GuaranteeLabel("rc"))

	c := InsuranceCompanies()
	c[0] = "changed"
	assert.True(t, HasCompany("NSIA Assurances"))
	assert.False(t, HasCompany("changed"))
}
