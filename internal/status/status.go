// Package status отображает коды статусов подписок и клиентских заявок
// в подписи и стили бейджей.
//
// Для неизвестного кода возвращается первая запись таблицы ("pending"),
// ошибка в этом случае не возникает.
package status

// Display - подпись и стиль бейджа для кода статуса.
type Display struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Style string `json:"style"`
	Icon  string `json:"icon,omitempty"`
}

// Статусы подписки.
const (
	SubscriptionPending    = "pending"
	SubscriptionInReview   = "in_review"
	SubscriptionProcessing = "processing"
	SubscriptionApproved   = "approved"
	SubscriptionRejected   = "rejected"
)

// Статусы клиентской заявки.
const (
	RequestPending    = "pending"
	RequestProcessing = "processing"
	RequestCompleted  = "completed"
	RequestRejected   = "rejected"
)

var subscriptionTable = []Display{
	{Code: SubscriptionPending, Label: "En attente", Style: "bg-yellow-100 text-yellow-800 border-yellow-200", Icon: "clock"},
	{Code: SubscriptionInReview, Label: "En cours d'examen", Style: "bg-blue-100 text-blue-800 border-blue-200", Icon: "settings"},
	{Code: SubscriptionProcessing, Label: "En traitement", Style: "bg-purple-100 text-purple-800 border-purple-200", Icon: "settings"},
	{Code: SubscriptionApproved, Label: "Approuvée", Style: "bg-green-100 text-green-800 border-green-200", Icon: "check-circle"},
	{Code: SubscriptionRejected, Label: "Rejetée", Style: "bg-red-100 text-red-800 border-red-200", Icon: "x-circle"},
}

var requestTable = []Display{
	{Code: RequestPending, Label: "En attente", Style: "secondary"},
	{Code: RequestProcessing, Label: "En cours", Style: "default"},
	{Code: RequestCompleted, Label: "Terminé", Style: "default"},
	{Code: RequestRejected, Label: "Rejeté", Style: "destructive"},
}

// Subscription возвращает отображение статуса подписки.
func Subscription(code string) Display { return lookup(subscriptionTable, code) }

// Request возвращает отображение статуса клиентской заявки.
func Request(code string) Display { return lookup(requestTable, code) }

// SubscriptionOptions возвращает все статусы подписки в порядке жизненного цикла.
func SubscriptionOptions() []Display { return clone(subscriptionTable) }

func RequestOptions() []Display { return clone(requestTable) }

// IsSubscriptionStatus проверяет, что код входит в перечисление статусов подписки.
func IsSubscriptionStatus(code string) bool { return known(subscriptionTable, code) }

func IsRequestStatus(code string) bool { return known(requestTable, code) }

func lookup(table []Display, code string) Display {
	for _, d := range table {
		if d.Code == code {
			return d
		}
	}
	return table[0]
}

func known(table []Display, code string) bool {
	for _, d := range table {
		if d.Code == code {
			return true
		}
	}
	return false
}

func clone(table []Display) []Display {
	res := make([]Display, len(table))
	copy(res, table)
	return res
}
