// Package pricing рассчитывает стоимость строки корзины и итоги корзины.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

var (
	// DefaultDiscountPercent применяется, если скидка не указана.
	DefaultDiscountPercent = decimal.RequireFromString("6.5")
	// DefaultCommissionPerTon применяется, если комиссия не указана.
	DefaultCommissionPerTon = decimal.NewFromInt(5000)

	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// ErrInvalidItem возвращается, если корм не выбран или количество мешков некорректно.
var ErrInvalidItem = validation.Errorf("❌ একটি ফিড নির্বাচন করুন এবং সঠিক ব্যাগ সংখ্যা দিন")

// ParseDiscount разбирает процент скидки по числу в начале строки: пустое значение даёт 6.5, строка без числа даёт 0.
func ParseDiscount(s string) decimal.Decimal {
	return parseOrDefault(s, DefaultDiscountPercent)
}

// ParseCommission разбирает комиссию за тонну: пустое значение даёт 5000, неразборчивое даёт 0.
func ParseCommission(s string) decimal.Decimal {
	return parseOrDefault(s, DefaultCommissionPerTon)
}

func parseOrDefault(s string, def decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, ok := validation.LeadingDecimal(s)
	if !ok {
		return decimal.Zero
	}
	return v
}

// ParseBagCount разбирает количество мешков. Допускается только целое число больше нуля.
func ParseBagCount(s string) (int, error) {
	n, ok := validation.ParsePositiveInt(s)
	if !ok {
		return 0, ErrInvalidItem
	}
	return n, nil
}

// ComputeLineItem рассчитывает строку корзины. Порядок вычислений:
// вес, валовая цена, скидка от валовой цены, комиссия за тонну, итоговая цена.
// Итоговая цена не ограничивается снизу и может быть отрицательной.
func ComputeLineItem(product *model.FeedProduct, bagCount int, discountPercent, commissionPerTon decimal.Decimal) (model.LineItem, error) {
	if product == nil || bagCount <= 0 {
		return model.LineItem{}, ErrInvalidItem
	}

	bags := decimal.NewFromInt(int64(bagCount))

	totalKg := float64(bagCount) * product.BagWeightKg
	grossPrice := bags.Mul(product.UnitPrice)
	discountAmount := grossPrice.Mul(discountPercent).Div(hundred)
	commissionAmount := decimal.NewFromFloat(totalKg).Div(thousand).Mul(commissionPerTon)
	finalPrice := grossPrice.Sub(discountAmount).Sub(commissionAmount)

	return model.LineItem{
		Code:       product.Code,
		Name:       product.Name,
		BagCount:   bagCount,
		TotalKg:    totalKg,
		FinalPrice: finalPrice,
	}, nil
}

// Totals суммирует мешки, вес и итоговые цены строк корзины.
func Totals(items []model.LineItem) model.CartTotals {
	totals := model.CartTotals{TotalAmount: decimal.Zero}
	for _, it := range items {
		totals.TotalBags += it.BagCount
		totals.TotalKg += it.TotalKg
		totals.TotalAmount = totals.TotalAmount.Add(it.FinalPrice)
	}
	return totals
}
