// Package info отдаёт публичные сведения о сервисе для главной страницы и страницы "à propos".
package info

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/deuxal/insurance-portal/internal/catalog"
	"github.com/deuxal/insurance-portal/internal/http/response"
)

// Page - публичная страница.
type Page string

const (
	PageHome  Page = "home"
	PageAbout Page = "about"
)

var pages = map[Page]map[string]any{
	PageHome: {
		"title": "2AL Insurance",
		"features": []string{
			"Protection Complète",
			"Souscription Rapide",
			"Espace Personnel",
		},
		"services": []string{
			"Assurance Auto",
			"Visite Technique",
			"Services TVM",
		},
		"contact": map[string]string{
			"phone": "+228 70 44 33 22",
			"email": "contact@2al-insurance.tg",
		},
	},
	PageAbout: {
		"title":    "À propos de 2AL Insurance",
		"sections": []string{"Notre Mission", "Notre Vision", "Service Client"},
		"commitments": map[string][]string{
			"Pour Nos Clients": {
				"Transparence totale dans nos tarifs et conditions",
				"Support client disponible 6j/7",
				"Traitement rapide des sinistres",
				"Innovation continue de nos services",
			},
			"Pour la Communauté": {
				"Sensibilisation à la sécurité routière",
				"Partenariats avec les entreprises locales",
				"Formation de nos équipes",
				"Contribution au développement économique",
			},
		},
	},
}

type Handler struct {
	page Page
}

func New(page Page) *Handler {
	return &Handler{page: page}
}

// ServeHTTP godoc
// @Summary Informations publiques
// @Tags Public
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
// @Router /about [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"page":      h.page,
		"content":   pages[h.page],
		"companies": catalog.InsuranceCompanies(),
	}
	if h.page == PageHome {
		data["guarantees"] = catalog.Guarantees()
	}
	render.JSON(w, r, response.StatusOKWithData(data))
}
