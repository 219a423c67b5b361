package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deuxal/insurance-portal/internal/models"
)

func ids[T any](rows []T, id func(T) string) []string {
	res := []string{}
	for _, r := range rows {
		res = append(res, id(r))
	}
	return res
}

var subscriptions = []models.Subscription{
	{ID: "1", FirstName: "Kossi", LastName: "Mensah", Phone: "+228 90 11 22 33", Status: "pending"},
	{ID: "2", FirstName: "Ama", LastName: "Kodjo", Phone: "+228 91 00 00 00", Status: "approved"},
	{ID: "3", FirstName: "Yao", LastName: "MENSAH", Phone: "+228 92 00 00 00", Status: "approved"},
}

func subID(s models.Subscription) string { return s.ID }

func TestFilterSubscriptions(t *testing.T) {
	tests := []struct {
		name   string
		filter models.Filter
		want   []string
	}{
		{name: "no filter", filter: models.Filter{}, want: []string{"1", "2", "3"}},
		{name: "all status", filter: models.Filter{Status: "all"}, want: []string{"1", "2", "3"}},
		{name: "last name case-insensitive", filter: models.Filter{Search: "mensah"}, want: []string{"1", "3"}},
		{name: "phone substring", filter: models.Filter{Search: "91 00"}, want: []string{"2"}},
		{name: "status only", filter: models.Filter{Status: "approved"}, want: []string{"2", "3"}},
		{name: "search and status", filter: models.Filter{Search: "MEN", Status: "approved"}, want: []string{"3"}},
		{name: "nothing matches", filter: models.Filter{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterSubscriptions(subscriptions, tt.filter), subID))
		})
	}
}

func TestSubscriptionCounts(t *testing.T) {
	counts := SubscriptionCounts(append(subscriptions, models.Subscription{ID: "4", Status: "bogus"}))

	assert.Equal(t, 4, counts["all"])
	assert.Equal(t, 2, counts["pending"])
	assert.Equal(t, 2, counts["approved"])
	assert.Equal(t, 0, counts["rejected"])
	assert.Contains(t, counts, "in_review")
}

func TestFilterRequests(t *testing.T) {
	rows := []models.ClientRequestWithProfile{
		{ClientRequest: models.ClientRequest{ID: "1", RequestType: "insurance", Category: "claim", Description: "choc", Status: "pending"},
			Profile: &models.ProfileSummary{FirstName: "Kossi", LastName: "Mensah"}},
		{ClientRequest: models.ClientRequest{ID: "2", RequestType: "service", Category: "washing", Description: "lavage complet", Status: "completed"}},
	}
	reqID := func(r models.ClientRequestWithProfile) string { return r.ID }

	assert.Equal(t, []string{"1"}, ids(FilterRequests(rows, models.Filter{Search: "sinistre"}), reqID))
	assert.Equal(t, []string{"1"}, ids(FilterRequests(rows, models.Filter{Search: "kossi"}), reqID))
	assert.Equal(t, []string{"2"}, ids(FilterRequests(rows, models.Filter{Search: "LAVAGE"}), reqID))
	assert.Equal(t, []string{"2"}, ids(FilterRequests(rows, models.Filter{Status: "completed"}), reqID))
}

func TestFilterProfiles(t *testing.T) {
	phone := "+228 90 00 00 00"
	rows := []models.Profile{
		{ID: "1", FirstName: "Kossi", LastName: "Mensah", Phone: &phone},
		{ID: "2", FirstName: "Ama", LastName: "Kodjo"},
	}
	profileID := func(p models.Profile) string { return p.ID }

	assert.Equal(t, []string{"1", "2"}, ids(FilterProfiles(rows, ""), profileID))
	assert.Equal(t, []string{"2"}, ids(FilterProfiles(rows, "kod"), profileID))
	assert.Equal(t, []string{"1"}, ids(FilterProfiles(rows, "90 00"), profileID))
}

func TestRows(t *testing.T) {
	subs := SubscriptionRows([]models.Subscription{{ID: "1", Status: "bogus"}})
	assert.Equal(t, "En attente", subs[0].Badge.Label)

	reqs := RequestRows([]models.ClientRequest{{ID: "1", RequestType: "service", Category: "unknown_code", Status: "completed"}})
	assert.Equal(t, "unknown_code", reqs[0].CategoryLabel)
	assert.Equal(t, "Terminé", reqs[0].Badge.Label)
	assert.Nil(t, reqs[0].Profile)
}
