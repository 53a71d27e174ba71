package models

import "github.com/shopspring/decimal"

// CatalogService is a popular service offered as a one-tap quick-add.
type CatalogService struct {
	Key      string
	Name     string
	Price    decimal.Decimal
	Category string
}

var quickAddCatalog = []CatalogService{
	{Key: "yandex_plus", Name: "Яндекс Плюс", Price: decimal.NewFromInt(299), Category: CategoryStreaming},
	{Key: "vk_combo", Name: "VK Combo", Price: decimal.NewFromInt(199), Category: CategoryStreaming},
	{Key: "kinopoisk", Name: "Кинопоиск", Price: decimal.NewFromInt(269), Category: CategoryStreaming},
	{Key: "telegram_premium", Name: "Telegram Premium", Price: decimal.NewFromInt(299), Category: CategoryCommunication},
}

// QuickAddCatalog returns the quick-add services in display order.
func QuickAddCatalog() []CatalogService {
	out := make([]CatalogService, len(quickAddCatalog))
	copy(out, quickAddCatalog)
	return out
}

func LookupCatalogService(key string) (CatalogService, bool) {
	for _, svc := range quickAddCatalog {
		if svc.Key == key {
			return svc, true
		}
	}
	return CatalogService{}, false
}
