// Package catalog содержит статические справочники портала: гарантии, страховые компании,
// сроки договора, типы топлива и категории клиентских заявок.
// Все таблицы - чистые данные, коды совпадают с теми, что хранятся в базе.
package catalog

// Option - элемент справочника: код, который хранится в базе, и подпись для отображения.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Required bool   `json:"required,omitempty"`
}

const (
	// GuaranteeCivilLiability - обязательная гарантия "Responsabilité Civile".
	GuaranteeCivilLiability = "rc"
	// GuaranteeDriverProtection - обязательная гарантия "Protection du Conducteur".
	GuaranteeDriverProtection = "protection"
)

const (
	// MaxInsuranceCompanies - сколько компаний можно выбрать в мастере.
	MaxInsuranceCompanies = 3
	// MaxContractDurations - сколько сроков договора можно выбрать в мастере.
	MaxContractDurations = 2
)

const (
	RequestTypeInsurance = "insurance"
	RequestTypeService   = "service"
)

var guarantees = []Option{
	{Value: GuaranteeCivilLiability, Label: "Responsabilité Civile", Required: true},
	{Value: GuaranteeDriverProtection, Label: "Protection du Conducteur", Required: true},
	{Value: "vol_incendie", Label: "Vol et Incendie"},
	{Value: "tierce_complete", Label: "Tierce Complète"},
	{Value: "tierce_collision", Label: "Tierce Collision"},
	{Value: "assistance_reparation", Label: "Assistance à la Réparation"},
	{Value: "recours_anticipe", Label: "Recours Anticipé"},
	{Value: "assistance", Label: "Assistance"},
}

var insuranceCompanies = []string{
	"NSIA Assurances",
	"SAHAM Assurance",
	"OGAR Assurances",
	"Allianz Togo",
	"Beneficial Life",
}

var contractDurations = []Option{
	{Value: "1_mois", Label: "1 mois"},
	{Value: "3_mois", Label: "3 mois"},
	{Value: "6_mois", Label: "6 mois"},
	{Value: "1_an", Label: "1 an"},
}

var energies = []Option{
	{Value: "essence", Label: "Essence"},
	{Value: "diesel", Label: "Diesel"},
	{Value: "electrique", Label: "Électrique"},
	{Value: "hybride", Label: "Hybride"},
}

var requestTypes = []Option{
	{Value: RequestTypeInsurance, Label: "Police d'assurance"},
	{Value: RequestTypeService, Label: "Service complémentaire"},
}

var insuranceRequests = []Option{
	{Value: "suspend", Label: "Suspendre la police"},
	{Value: "cancel", Label: "Annuler la police"},
	{Value: "renew", Label: "Renouveler la police"},
	{Value: "claim", Label: "Déclarer un sinistre"},
}

var additionalServices = []Option{
	{Value: "technical_visit", Label: "Visite technique"},
	{Value: "tvm", Label: "TVM"},
	{Value: "location", Label: "Location de voiture"},
	{Value: "fuel_voucher", Label: "Bon de carburant"},
	{Value: "washing", Label: "Lavage"},
	{Value: "vulcanization", Label: "Vulcanisation"},
	{Value: "mechanics", Label: "Mécanique"},
	{Value: "electricity", Label: "Électricité"},
	{Value: "bodywork_painting", Label: "Carrosserie-peinture"},
	{Value: "geo", Label: "Géolocalisation"},
	{Value: "permis", Label: "Permis de conduire"},
	{Value: "other", Label: "Autres"},
}

// Guarantees возвращает копию таблицы гарантий.
func Guarantees() []Option { return clone(guarantees) }

// MandatoryGuarantees возвращает коды гарантий, которые нельзя снять в мастере.
func MandatoryGuarantees() []string {
	var res []string
	for _, g := range guarantees {
		if g.Required {
			res = append(res, g.Value)
		}
	}
	return res
}

// IsMandatoryGuarantee сообщает, является ли гарантия обязательной.
func IsMandatoryGuarantee(code string) bool {
	for _, g := range guarantees {
		if g.Value == code {
			return g.Required
		}
	}
	return false
}

// InsuranceCompanies возвращает список страховых компаний-партнёров.
func InsuranceCompanies() []string {
	res := make([]string, len(insuranceCompanies))
	copy(res, insuranceCompanies)
	return res
}

func ContractDurations() []Option { return clone(contractDurations) }

func Energies() []Option { return clone(energies) }

func RequestTypes() []Option { return clone(requestTypes) }

// RequestCategories возвращает категории для типа заявки; для неизвестного типа - nil.
func RequestCategories(requestType string) []Option {
	switch requestType {
	case RequestTypeInsurance:
		return clone(insuranceRequests)
	case RequestTypeService:
		return clone(additionalServices)
	default:
		return nil
	}
}

// HasGuarantee, HasCompany, HasDuration и HasEnergy проверяют принадлежность кода справочнику.
func HasGuarantee(code string) bool { return find(guarantees, code) != nil }

func HasCompany(name string) bool {
	for _, c := range insuranceCompanies {
		if c == name {
			return true
		}
	}
	return false
}

func HasDuration(code string) bool { return find(contractDurations, code) != nil }

func HasEnergy(code string) bool { return find(energies, code) != nil }

// HasRequestCategory проверяет, что категория относится к таблице своего типа заявки.
func HasRequestCategory(requestType, category string) bool {
	return find(RequestCategories(requestType), category) != nil
}

// GuaranteeLabel возвращает подпись гарантии либо сам код, если он неизвестен.
func GuaranteeLabel(code string) string { return labelOr(guarantees, code) }

// DurationLabel возвращает подпись срока договора либо сам код.
func DurationLabel(code string) string { return labelOr(contractDurations, code) }

func EnergyLabel(code string) string { return labelOr(energies, code) }

// RequestLabel ищет категорию в объединении таблиц страховых действий и дополнительных
// услуг. Тип заявки в поиске не участвует. Неизвестная категория возвращается как есть.
func RequestLabel(_ string, category string) string {
	if o := find(insuranceRequests, category); o != nil {
		return o.Label
	}
	return labelOr(additionalServices, category)
}

func find(opts []Option, value string) *Option {
	for i := range opts {
		if opts[i].Value == value {
			return &opts[i]
		}
	}
	return nil
}

func labelOr(opts []Option, value string) string {
	if o := find(opts, value); o != nil {
		return o.Label
	}
	return value
}

func clone(opts []Option) []Option {
	res := make([]Option, len(opts))
	copy(res, opts)
	return res
}
