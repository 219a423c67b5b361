package models

// Filter - параметры локальной фильтрации списков: строка поиска и статус.
// Пустой статус или "all" означает отсутствие фильтра по статусу.
type Filter struct {
	Search string
	Status string
}

// StatusAll - значение селектора статуса "Tous les statuts".
const StatusAll = "all"
