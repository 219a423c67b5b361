// Package catalog отдаёт справочники для отрисовки форм: гарантии, компании,
// сроки, энергию, категории заявок и плашки статусов.
package catalog

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/catalog"
	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/status"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// ServeHTTP godoc
// @Summary Référentiels
// @Tags Public
// @Produce json
// @Success 200 {object} response.Response
// @Router /catalog [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(Tables()))
}

// Tables собирает все справочники в одну структуру ответа.
func Tables() map[string]any {
	return map[string]any{
		"guarantees":              catalog.Guarantees(),
		"insurance_companies":     catalog.InsuranceCompanies(),
		"max_insurance_companies": catalog.MaxInsuranceCompanies,
		"contract_durations":      catalog.ContractDurations(),
		"max_contract_durations":  catalog.MaxContractDurations,
		"energies":                catalog.Energies(),
		"request_types":           catalog.RequestTypes(),
		"request_categories": map[string][]catalog.Option{
			catalog.RequestTypeInsurance: catalog.RequestCategories(catalog.RequestTypeInsurance),
			catalog.RequestTypeService:   catalog.RequestCategories(catalog.RequestTypeService),
		},
		"subscription_statuses": status.SubscriptionOptions(),
		"request_statuses":      status.RequestOptions(),
	}
}
