package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/feedcalc/internal/model"
)

// SortKey задаёт поле сортировки списка кормов в панели администратора.
type SortKey string

const (
	SortByCode  SortKey = "code"
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
)

// Filter описывает параметры поиска и сортировки списка кормов.
type Filter struct {
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       SortKey
	Descending bool
}

// Apply возвращает отфильтрованную и отсортированную копию списка кормов.
func (f Filter) Apply(products []model.FeedProduct) []model.FeedProduct {
	search := strings.ToLower(f.Search)

	res := make([]model.FeedProduct, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Code), search) &&
			!strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if f.MinPrice != nil && p.UnitPrice.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.UnitPrice.GreaterThan(*f.MaxPrice) {
			continue
		}
		res = append(res, p)
	}

	key := f.Sort
	if key == "" {
		key = SortByCode
	}

	sort.SliceStable(res, func(i, j int) bool {
		var cmp int
		switch key {
		case SortByName:
			cmp = strings.Compare(res[i].Name, res[j].Name)
		case SortByPrice:
			cmp = res[i].UnitPrice.Cmp(res[j].UnitPrice)
		default:
			cmp = strings.Compare(res[i].Code, res[j].Code)
		}
		if f.Descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return res
}
