// Package listview фильтрует уже загруженные списки для панелей клиента
// и администратора: поиск по подстроке и выбор статуса. Пагинации нет.
package listview

import (
	"strings"

	"github.com/deuxal/insurance-portal/internal/catalog"
	"github.com/deuxal/insurance-portal/internal/models"
	"github.com/deuxal/insurance-portal/internal/status"
)

// FilterSubscriptions оставляет подписки, у которых имя или фамилия содержат
// строку поиска без учёта регистра либо телефон содержит её как есть,
// и статус совпадает с выбранным.
func FilterSubscriptions(rows []models.Subscription, f models.Filter) []models.Subscription {
	q := strings.TrimSpace(f.Search)
	res := make([]models.Subscription, 0, len(rows))
	for _, s := range rows {
		if !statusMatches(s.Status, f.Status) {
			continue
		}
		if q != "" && !containsFold(q, s.FirstName, s.LastName) && !strings.Contains(s.Phone, q) {
			continue
		}
		res = append(res, s)
	}
	return res
}

// SubscriptionCounts считает подписки по статусам. Ключ models.StatusAll - общее число;
// статусы без подписок присутствуют с нулём.
func SubscriptionCounts(rows []models.Subscription) map[string]int {
	counts := map[string]int{models.StatusAll: len(rows)}
	for _, d := range status.SubscriptionOptions() {
		counts[d.Code] = 0
	}
	for _, s := range rows {
		counts[status.Subscription(s.Status).Code]++
	}
	return counts
}

// FilterRequests ищет по имени автора, описанию и подписи категории.
func FilterRequests(rows []models.ClientRequestWithProfile, f models.Filter) []models.ClientRequestWithProfile {
	q := strings.TrimSpace(f.Search)
	res := make([]models.ClientRequestWithProfile, 0, len(rows))
	for _, r := range rows {
		if !statusMatches(r.Status, f.Status) {
			continue
		}
		if q != "" {
			fields := []string{r.Description, catalog.RequestLabel(r.RequestType, r.Category)}
			if r.Profile != nil {
				fields = append(fields, r.Profile.FirstName, r.Profile.LastName)
			}
			if !containsFold(q, fields...) {
				continue
			}
		}
		res = append(res, r)
	}
	return res
}

// FilterProfiles ищет пользователей по имени, фамилии (без учёта регистра) и телефону.
func FilterProfiles(rows []models.Profile, search string) []models.Profile {
	q := strings.TrimSpace(search)
	res := make([]models.Profile, 0, len(rows))
	for _, p := range rows {
		if q != "" {
			phone := ""
			if p.Phone != nil {
				phone = *p.Phone
			}
			if !containsFold(q, p.FirstName, p.LastName) && !strings.Contains(phone, q) {
				continue
			}
		}
		res = append(res, p)
	}
	return res
}

func statusMatches(actual, wanted string) bool {
	return wanted == "" || wanted == models.StatusAll || actual == wanted
}

func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// SubscriptionRow - подписка вместе с плашкой статуса.
type SubscriptionRow struct {
	models.Subscription
	Badge status.Display `json:"badge"`
}

// SubscriptionRows добавляет к подпискам плашки статуса.
func SubscriptionRows(rows []models.Subscription) []SubscriptionRow {
	res := make([]SubscriptionRow, 0, len(rows))
	for _, s := range rows {
		res = append(res, SubscriptionRow{Subscription: s, Badge: status.Subscription(s.Status)})
	}
	return res
}

// RequestRow - заявка с плашкой статуса и подписью категории.
type RequestRow struct {
	models.ClientRequest
	Profile       *models.ProfileSummary `json:"profiles,omitempty"`
	CategoryLabel string                 `json:"category_label"`
	Badge         status.Display         `json:"badge"`
}

// RequestRows готовит заявки клиента к показу.
func RequestRows(rows []models.ClientRequest) []RequestRow {
	res := make([]RequestRow, 0, len(rows))
	for _, r := range rows {
		res = append(res, requestRow(r, nil))
	}
	return res
}

// RequestRowsWithProfile готовит заявки всех клиентов к показу в админке.
func RequestRowsWithProfile(rows []models.ClientRequestWithProfile) []RequestRow {
	res := make([]RequestRow, 0, len(rows))
	for _, r := range rows {
		res = append(res, requestRow(r.ClientRequest, r.Profile))
	}
	return res
}

func requestRow(r models.ClientRequest, p *models.ProfileSummary) RequestRow {
	return RequestRow{
		ClientRequest: r,
		Profile:       p,
		CategoryLabel: catalog.RequestLabel(r.RequestType, r.Category),
		Badge:         status.Request(r.Status),
	}
}
