package wizard

import (
	"slices"
	"strings"

	"github.com/deuxal/insurance-portal/internal/catalog"
)

// IndicatorItem - элемент индикатора прогресса над формой.
type IndicatorItem struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Current   bool   `json:"current"`
	Completed bool   `json:"completed"`
}

// Field - текстовое поле шага.
type Field struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Type        string           `json:"type"`
	Value       string           `json:"value"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Min         *int             `json:"min,omitempty"`
	Max         *int             `json:"max,omitempty"`
	Options     []catalog.Option `json:"options,omitempty"`
}

// Choice - пункт чек-листа. Disabled выставляется для обязательных гарантий
// и для невыбранных пунктов, когда лимит выбора исчерпан.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Checked  bool   `json:"checked"`
	Disabled bool   `json:"disabled"`
	Required bool   `json:"required,omitempty"`
}

// DocumentInfo - сведения о выбранном файле без его содержимого.
type DocumentInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	IsImage     bool   `json:"is_image"`
}

// Summary - содержимое шага проверки, с подписями вместо кодов.
type Summary struct {
	FullName           string   `json:"full_name"`
	Phone              string   `json:"phone"`
	Address            string   `json:"address"`
	Energy             string   `json:"energy"`
	Seats              string   `json:"seats"`
	Horsepower         string   `json:"horsepower"`
	Document           string   `json:"document,omitempty"`
	Guarantees         []string `json:"guarantees"`
	InsuranceCompanies []string `json:"insurance_companies"`
	ContractDurations  []string `json:"contract_durations"`
}

// StepView - всё, что нужно клиенту для отрисовки текущего шага.
type StepView struct {
	Number    int             `json:"number"`
	Total     int             `json:"total"`
	Heading   string          `json:"heading"`
	Hint      string          `json:"hint,omitempty"`
	Indicator []IndicatorItem `json:"indicator"`
	Fields    []Field         `json:"fields,omitempty"`
	Document  *DocumentInfo   `json:"document,omitempty"`
	Choices   []Choice        `json:"choices,omitempty"`
	Selected  int             `json:"selected,omitempty"`
	Limit     int             `json:"limit,omitempty"`
	Summary   *Summary        `json:"summary,omitempty"`
	CanPrev   bool            `json:"can_prev"`
	CanNext   bool            `json:"can_next"`
	CanSubmit bool            `json:"can_submit"`
}

type stepBuilder func(f Form, v *StepView)

var builders = map[Step]stepBuilder{
	StepPersonalInfo: personalInfoStep,
	StepVehicleInfo:  vehicleInfoStep,
	StepGuarantees:   guaranteesStep,
	StepCompanies:    companiesStep,
	StepDurations:    durationsStep,
	StepVerification: verificationStep,
}

// Render строит представление шага из состояния мастера. Функция чистая:
// состояние не меняется.
func Render(s State) StepView {
	step := s.Step
	if !step.Valid() {
		step = StepPersonalInfo
	}

	v := StepView{
		Number:    int(step),
		Total:     StepCount,
		Indicator: indicator(step),
		CanPrev:   step > StepPersonalInfo,
		CanNext:   step < StepVerification,
		CanSubmit: step == StepVerification,
	}
	builders[step](s.Form, &v)
	return v
}

// View - представление текущего шага контроллера.
func (c *Controller) View() StepView { return Render(c.state) }

func indicator(current Step) []IndicatorItem {
	items := make([]IndicatorItem, 0, StepCount)
	for s := StepPersonalInfo; s <= StepVerification; s++ {
		items = append(items, IndicatorItem{
			Number:    int(s),
			Title:     s.Title(),
			Current:   s == current,
			Completed: s < current,
		})
	}
	return items
}

func personalInfoStep(f Form, v *StepView) {
	v.Heading = "Vos informations personnelles"
	v.Fields = []Field{
		{Name: "first_name", Label: "Prénom", Type: "text", Value: f.FirstName, Placeholder: "Votre prénom", Required: true},
		{Name: "last_name", Label: "Nom", Type: "text", Value: f.LastName, Placeholder: "Votre nom", Required: true},
		{Name: "phone", Label: "Téléphone", Type: "tel", Value: f.Phone, Placeholder: "+228 XX XX XX XX", Required: true},
		{Name: "address", Label: "Adresse", Type: "text", Value: f.Address, Placeholder: "Votre adresse complète", Required: true},
	}
}

func vehicleInfoStep(f Form, v *StepView) {
	v.Heading = "Informations du véhicule"
	v.Hint = "Formats acceptés : images ou PDF"
	v.Fields = []Field{
		{Name: "energy", Label: "Énergie", Type: "select", Value: f.Energy, Placeholder: "Sélectionnez le type d'énergie", Required: true, Options: catalog.Energies()},
		{Name: "seats", Label: "Nombre de places", Type: "number", Value: f.Seats, Required: true, Min: intPtr(2), Max: intPtr(50)},
		{Name: "horsepower", Label: "Puissance fiscale (CV)", Type: "number", Value: f.Horsepower, Required: true, Min: intPtr(1)},
	}
	if f.Document != nil {
		v.Document = &DocumentInfo{
			Name:        f.Document.Name,
			ContentType: f.Document.ContentType,
			Size:        len(f.Document.Data),
			IsImage:     strings.HasPrefix(f.Document.ContentType, "image/"),
		}
	}
}

func guaranteesStep(f Form, v *StepView) {
	v.Heading = "Sélectionnez vos garanties"
	v.Hint = "La Responsabilité Civile et la Protection du Conducteur sont obligatoires"
	for _, g := range catalog.Guarantees() {
		v.Choices = append(v.Choices, Choice{
			Value:    g.Value,
			Label:    g.Label,
			Checked:  g.Required || slices.Contains(f.Guarantees, g.Value),
			Disabled: g.Required,
			Required: g.Required,
		})
	}
	v.Selected = len(f.Guarantees)
}

func companiesStep(f Form, v *StepView) {
	v.Heading = "Compagnies d'assurance (maximum 3)"
	v.Limit = catalog.MaxInsuranceCompanies
	v.Selected = len(f.InsuranceCompanies)
	for _, name := range catalog.InsuranceCompanies() {
		checked := slices.Contains(f.InsuranceCompanies, name)
		v.Choices = append(v.Choices, Choice{
			Value:    name,
			Label:    name,
			Checked:  checked,
			Disabled: !checked && v.Selected >= v.Limit,
		})
	}
}

func durationsStep(f Form, v *StepView) {
	v.Heading = "Durée du contrat (maximum 2)"
	v.Limit = catalog.MaxContractDurations
	v.Selected = len(f.ContractDurations)
	for _, d := range catalog.ContractDurations() {
		checked := slices.Contains(f.ContractDurations, d.Value)
		v.Choices = append(v.Choices, Choice{
			Value:    d.Value,
			Label:    d.Label,
			Checked:  checked,
			Disabled: !checked && v.Selected >= v.Limit,
		})
	}
}

func verificationStep(f Form, v *StepView) {
	v.Heading = "Vérification des informations"
	s := &Summary{
		FullName:           strings.TrimSpace(f.FirstName + " " + f.LastName),
		Phone:              f.Phone,
		Address:            f.Address,
		Energy:             catalog.EnergyLabel(f.Energy),
		Seats:              f.Seats,
		Horsepower:         f.Horsepower,
		InsuranceCompanies: slices.Clone(f.InsuranceCompanies),
	}
	if f.Document != nil {
		s.Document = f.Document.Name
	}
	for _, g := range f.Guarantees {
		s.Guarantees = append(s.Guarantees, catalog.GuaranteeLabel(g))
	}
	for _, d := range f.ContractDurations {
		s.ContractDurations = append(s.ContractDurations, catalog.DurationLabel(d))
	}
	v.Summary = s
}

func intPtr(v int) *int { return &v }
