package farmcalc

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

var (
	// ErrProfitFieldsRequired возвращается, если не заполнено хотя бы одно поле.
	ErrProfitFieldsRequired = validation.Errorf("⚠️ সব ঘর পূরণ করুন")
	// ErrProfitInvalidNumber возвращается, если значение поля не является числом.
	ErrProfitInvalidNumber = validation.Errorf("⚠️ অনুগ্রহ করে সঠিক সংখ্যা ইনপুট দিন।")
)

// ProfitForm содержит поля формы расчёта прибыли в том виде, в каком их ввёл пользователь.
type ProfitForm struct {
	TotalChicks  string `json:"total_chicks"`
	ChickPrice   string `json:"chick_price"`
	FeedCost     string `json:"total_feed_cost"`
	MedicineCost string `json:"total_medicine_cost"`
	UtilityCost  string `json:"total_utility_cost"`
	LaborCost    string `json:"total_labor_cost"`
	WeightSold   string `json:"total_weight_sold"`
	PricePerKg   string `json:"price_per_kg"`
}

// Profit проверяет форму и рассчитывает затраты, выручку и прибыль партии.
func Profit(form ProfitForm) (model.ProfitInput, model.ProfitResult, error) {
	fields := []string{
		form.TotalChicks, form.ChickPrice, form.FeedCost, form.MedicineCost,
		form.UtilityCost, form.LaborCost, form.WeightSold, form.PricePerKg,
	}
	if !validation.AllPresent(fields...) {
		return model.ProfitInput{}, model.ProfitResult{}, ErrProfitFieldsRequired
	}

	chicks, ok := validation.LeadingInt(form.TotalChicks)
	if !ok {
		return model.ProfitInput{}, model.ProfitResult{}, ErrProfitInvalidNumber
	}

	nums := make([]decimal.Decimal, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := decimal.NewFromString(strings.TrimSpace(f))
		if err != nil {
			return model.ProfitInput{}, model.ProfitResult{}, ErrProfitInvalidNumber
		}
		nums = append(nums, v)
	}

	in := model.ProfitInput{
		TotalChicks:  chicks,
		ChickPrice:   nums[0],
		FeedCost:     nums[1],
		MedicineCost: nums[2],
		UtilityCost:  nums[3],
		LaborCost:    nums[4],
		WeightSold:   nums[5],
		PricePerKg:   nums[6],
	}

	return in, ProfitMetrics(in), nil
}

// ProfitMetrics рассчитывает результат по уже проверенным данным.
func ProfitMetrics(in model.ProfitInput) model.ProfitResult {
	chicks := decimal.NewFromInt(int64(in.TotalChicks))

	totalCost := chicks.Mul(in.ChickPrice).
		Add(in.FeedCost).
		Add(in.MedicineCost).
		Add(in.UtilityCost).
		Add(in.LaborCost)
	totalIncome := in.WeightSold.Mul(in.PricePerKg)
	netProfit := totalIncome.Sub(totalCost)

	profitPerBird := decimal.Zero
	if in.TotalChicks > 0 {
		profitPerBird = netProfit.Div(chicks)
	}
	costPerKg := decimal.Zero
	if in.WeightSold.IsPositive() {
		costPerKg = totalCost.Div(in.WeightSold)
	}

	return model.ProfitResult{
		TotalCost:     totalCost,
		TotalIncome:   totalIncome,
		NetProfit:     netProfit,
		ProfitPerBird: profitPerBird,
		CostPerKg:     costPerKg,
	}
}
