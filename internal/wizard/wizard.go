// Package wizard реализует мастер оформления автостраховки: шесть шагов,
// агрегированную форму и финальную проверку перед отправкой.
//
// Controller не выполняет сетевых вызовов сам: отправка делегируется Submitter,
// а состояние (State) сериализуется в JSON, чтобы его можно было хранить между запросами.
package wizard

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/deuxal/insurance-portal/internal/catalog"
)

// Step - номер шага мастера, от StepPersonalInfo до StepVerification.
type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepVehicleInfo
	StepGuarantees
	StepCompanies
	StepDurations
	StepVerification
)

// StepCount - количество шагов мастера.
const StepCount = int(StepVerification)

var stepTitles = map[Step]string{
	StepPersonalInfo: "Informations personnelles",
	StepVehicleInfo:  "Véhicule",
	StepGuarantees:   "Garanties",
	StepCompanies:    "Compagnies",
	StepDurations:    "Durée",
	StepVerification: "Vérification",
}

// Title возвращает название шага для индикатора.
func (s Step) Title() string { return stepTitles[s] }

// Valid сообщает, что номер шага лежит в диапазоне мастера.
func (s Step) Valid() bool { return s >= StepPersonalInfo && s <= StepVerification }

// ErrNotOnVerification возвращается при попытке отправить форму не с последнего шага.
var ErrNotOnVerification = errors.New("submission is only allowed from the verification step")

// Document - загруженный пользователем файл карты техпаспорта (carte grise).
type Document struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Form - агрегированные данные всех шагов. Числовые поля хранятся строками
// и приводятся к целым только при отправке.
type Form struct {
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	Energy             string    `json:"energy"`
	Seats              string    `json:"seats"`
	Horsepower         string    `json:"horsepower"`
	Document           *Document `json:"document,omitempty"`
	Guarantees         []string  `json:"guarantees"`
	InsuranceCompanies []string  `json:"insurance_companies"`
	ContractDurations  []string  `json:"contract_durations"`
}

// NewForm возвращает пустую форму с уже выбранными обязательными гарантиями.
func NewForm() Form {
	return Form{
		Guarantees:         catalog.MandatoryGuarantees(),
		InsuranceCompanies: []string{},
		ContractDurations:  []string{},
	}
}

func (f Form) clone() Form {
	res := f
	res.Guarantees = slices.Clone(f.Guarantees)
	res.InsuranceCompanies = slices.Clone(f.InsuranceCompanies)
	res.ContractDurations = slices.Clone(f.ContractDurations)
	if f.Document != nil {
		doc := *f.Document
		res.Document = &doc
	}
	return res
}

// Patch - частичное изменение текстовых полей формы; nil-поля не трогаются.
type Patch struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Energy     *string `json:"energy" validate:"omitempty,oneof=essence diesel electrique hybride"`
	Seats      *string `json:"seats"`
	Horsepower *string `json:"horsepower"`
}

// State - сериализуемое состояние мастера.
type State struct {
	Step Step `json:"step"`
	Form Form `json:"form"`
}

// Submitter сохраняет проверенную форму. Реализуется сервисом подписок.
type Submitter interface {
	Submit(ctx context.Context, form Form) error
}

// SubmitterFunc позволяет использовать функцию как Submitter.
type SubmitterFunc func(ctx context.Context, form Form) error

func (f SubmitterFunc) Submit(ctx context.Context, form Form) error { return f(ctx, form) }

// Группы полей финальной проверки.
const (
	GroupPersonal  = "personal"
	GroupVehicle   = "vehicle"
	GroupDocument  = "document"
	GroupCompanies = "companies"
	GroupDurations = "durations"
)

// ValidationError описывает первую не прошедшую проверку группу полей
// и шаг, на который мастер вернулся.
type ValidationError struct {
	Group   string
	Step    Step
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Controller владеет номером шага и формой.
type Controller struct {
	state State
}

// New создаёт мастер на первом шаге с пустой формой.
func New() *Controller {
	return &Controller{state: State{Step: StepPersonalInfo, Form: NewForm()}}
}

// Restore восстанавливает мастер из сохранённого состояния. Шаг вне диапазона
// сбрасывается на первый, обязательные гарантии добавляются, если их нет.
func Restore(s State) *Controller {
	c := &Controller{state: State{Step: s.Step, Form: s.Form.clone()}}
	if !c.state.Step.Valid() {
		c.state.Step = StepPersonalInfo
	}
	var missing []string
	for _, code := range catalog.MandatoryGuarantees() {
		if !slices.Contains(c.state.Form.Guarantees, code) {
			missing = append(missing, code)
		}
	}
	c.state.Form.Guarantees = append(missing, c.state.Form.Guarantees...)
	if c.state.Form.InsuranceCompanies == nil {
		c.state.Form.InsuranceCompanies = []string{}
	}
	if c.state.Form.ContractDurations == nil {
		c.state.Form.ContractDurations = []string{}
	}
	return c
}

// State возвращает копию текущего состояния.
func (c *Controller) State() State {
	return State{Step: c.state.Step, Form: c.state.Form.clone()}
}

func (c *Controller) Step() Step { return c.state.Step }

func (c *Controller) Form() Form { return c.state.Form.clone() }

// Next переходит на следующий шаг. На последнем шаге ничего не делает и возвращает false.
func (c *Controller) Next() bool {
	if c.state.Step >= StepVerification {
		return false
	}
	c.state.Step++
	return true
}

// Prev возвращается на предыдущий шаг. На первом шаге ничего не делает и возвращает false.
func (c *Controller) Prev() bool {
	if c.state.Step <= StepPersonalInfo {
		return false
	}
	c.state.Step--
	return true
}

// Update применяет изменения текстовых полей.
func (c *Controller) Update(p Patch) {
	f := &c.state.Form
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.FirstName, p.FirstName)
	set(&f.LastName, p.LastName)
	set(&f.Phone, p.Phone)
	set(&f.Address, p.Address)
	set(&f.Energy, p.Energy)
	set(&f.Seats, p.Seats)
	set(&f.Horsepower, p.Horsepower)
}

// AttachDocument заменяет выбранный файл карты техпаспорта.
func (c *Controller) AttachDocument(d Document) {
	c.state.Form.Document = &d
}

func (c *Controller) RemoveDocument() {
	c.state.Form.Document = nil
}

// ToggleGuarantee отмечает или снимает гарантию. Обязательные гарантии снять нельзя,
// неизвестные коды игнорируются. Возвращает true, если форма изменилась.
func (c *Controller) ToggleGuarantee(code string, checked bool) bool {
	if !catalog.HasGuarantee(code) {
		return false
	}
	if !checked && catalog.IsMandatoryGuarantee(code) {
		return false
	}
	return toggle(&c.state.Form.Guarantees, code, checked, 0)
}

// ToggleCompany отмечает или снимает страховую компанию, не больше MaxInsuranceCompanies.
func (c *Controller) ToggleCompany(name string, checked bool) bool {
	if !catalog.HasCompany(name) {
		return false
	}
	return toggle(&c.state.Form.InsuranceCompanies, name, checked, catalog.MaxInsuranceCompanies)
}

// ToggleDuration отмечает или снимает срок договора, не больше MaxContractDurations.
func (c *Controller) ToggleDuration(code string, checked bool) bool {
	if !catalog.HasDuration(code) {
		return false
	}
	return toggle(&c.state.Form.ContractDurations, code, checked, catalog.MaxContractDurations)
}

// toggle добавляет или удаляет значение; limit == 0 означает отсутствие ограничения.
func toggle(list *[]string, value string, checked bool, limit int) bool {
	idx := slices.Index(*list, value)
	if checked {
		if idx >= 0 {
			return false
		}
		if limit > 0 && len(*list) >= limit {
			return false
		}
		*list = append(*list, value)
		return true
	}
	if idx < 0 {
		return false
	}
	*list = slices.Delete(*list, idx, idx+1)
	return true
}

// Validate проверяет всю форму, а не только текущий шаг, и возвращает
// *ValidationError для первой не заполненной группы.
func (c *Controller) Validate() error {
	f := c.state.Form
	switch {
	case blank(f.FirstName, f.LastName, f.Phone, f.Address):
		return &ValidationError{Group: GroupPersonal, Step: StepPersonalInfo,
			Message: "Veuillez remplir toutes les informations personnelles"}
	case blank(f.Energy, f.Seats, f.Horsepower):
		return &ValidationError{Group: GroupVehicle, Step: StepVehicleInfo,
			Message: "Veuillez remplir toutes les informations du véhicule"}
	case f.Document == nil:
		return &ValidationError{Group: GroupDocument, Step: StepVehicleInfo,
			Message: "Veuillez télécharger la carte grise"}
	case len(f.InsuranceCompanies) == 0:
		return &ValidationError{Group: GroupCompanies, Step: StepCompanies,
			Message: "Veuillez sélectionner au moins une compagnie d'assurance"}
	case len(f.ContractDurations) == 0:
		return &ValidationError{Group: GroupDurations, Step: StepDurations,
			Message: "Veuillez sélectionner au moins une durée de contrat"}
	}
	return nil
}

// Submit отправляет форму. Разрешён только с шага проверки. При ошибке валидации
// мастер переходит на шаг, которому принадлежит группа; при ошибке Submitter
// остаётся на последнем шаге с нетронутой формой; при успехе сбрасывается.
func (c *Controller) Submit(ctx context.Context, s Submitter) error {
	if c.state.Step != StepVerification {
		return ErrNotOnVerification
	}
	if err := c.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.state.Step = verr.Step
		}
		return err
	}
	if err := s.Submit(ctx, c.state.Form.clone()); err != nil {
		return err
	}
	c.Reset()
	return nil
}

// Reset возвращает мастер к первому шагу с пустой формой.
func (c *Controller) Reset() {
	c.state = State{Step: StepPersonalInfo, Form: NewForm()}
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
