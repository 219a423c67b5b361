package models

// Stats - агрегаты для панели администратора.
type Stats struct {
	TotalUsers                int `json:"total_users"`
	TotalSubscriptions        int `json:"total_subscriptions"`
	NewUsersThisMonth         int `json:"new_users_this_month"`
	NewSubscriptionsThisMonth int `json:"new_subscriptions_this_month"`
}
