package farmcalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroiler(t *testing.T) {
	form := BroilerForm{
		FarmerName:    "Karim",
		FarmerMobile:  "01700000000",
		FarmerAddress: "Gazipur",
		TotalBirds:    "1000",
		FeedConsumed:  "3000",
		TotalWeight:   "2000",
		Age:           "32",
	}

	in, res, err := Broiler(form)
	require.NoError(t, err)

	assert.Equal(t, 1000, in.TotalBirds)
	assert.Equal(t, 32, in.Age)
	assert.Equal(t, "2.00", res.AvgWeightPerBird)
	assert.Equal(t, "1.50", res.FCR)
	assert.Equal(t, "33.33", res.PerBagWeight)
}

func TestBroilerZeroFeed(t *testing.T) {
	in, res, err := Broiler(BroilerForm{
		FarmerName: "a", FarmerMobile: "b", FarmerAddress: "c",
		TotalBirds: "10", FeedConsumed: "0", TotalWeight: "20", Age: "5",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, in.FeedConsumed)
	assert.Equal(t, "0.00", res.PerBagWeight)
	assert.Equal(t, "0.00", res.FCR)
}

func TestBroilerValidation(t *testing.T) {
	valid := BroilerForm{
		FarmerName: "a", FarmerMobile: "b", FarmerAddress: "c",
		TotalBirds: "10", FeedConsumed: "30", TotalWeight: "20", Age: "5",
	}

	tests := []struct {
		name   string
		mutate func(f *BroilerForm)
	}{
		{name: "missing name", mutate: func(f *BroilerForm) { f.FarmerName = " " }},
		{name: "missing mobile", mutate: func(f *BroilerForm) { f.FarmerMobile = "" }},
		{name: "birds not a number", mutate: func(f *BroilerForm) { f.TotalBirds = "many" }},
		{name: "zero birds", mutate: func(f *BroilerForm) { f.TotalBirds = "0" }},
		{name: "weight not a number", mutate: func(f *BroilerForm) { f.TotalWeight = "" }},
		{name: "age missing", mutate: func(f *BroilerForm) { f.Age = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			_, _, err := Broiler(f)
			assert.ErrorIs(t, err, ErrBroilerFieldsRequired)
		})
	}
}

func TestProfit(t *testing.T) {
	form := ProfitForm{
		TotalChicks:  "1000",
		ChickPrice:   "50",
		FeedCost:     "150000",
		MedicineCost: "10000",
		UtilityCost:  "5000",
		LaborCost:    "15000",
		WeightSold:   "1800",
		PricePerKg:   "160",
	}

	in, res, err := Profit(form)
	require.NoError(t, err)

	assert.Equal(t, 1000, in.TotalChicks)
	assert.True(t, res.TotalCost.Equal(decimal.NewFromInt(230000)), "cost = %s", res.TotalCost)
	assert.True(t, res.TotalIncome.Equal(decimal.NewFromInt(288000)), "income = %s", res.TotalIncome)
	assert.True(t, res.NetProfit.Equal(decimal.NewFromInt(58000)), "net = %s", res.NetProfit)
	assert.True(t, res.ProfitPerBird.Equal(decimal.NewFromInt(58)), "per bird = %s", res.ProfitPerBird)
	assert.Equal(t, "127.78", res.CostPerKg.StringFixed(2))
}

func TestProfitZeroDivisors(t *testing.T) {
	_, res, err := Profit(ProfitForm{
		TotalChicks: "0", ChickPrice: "0", FeedCost: "100", MedicineCost: "0",
		UtilityCost: "0", LaborCost: "0", WeightSold: "0", PricePerKg: "0",
	})
	require.NoError(t, err)
	assert.True(t, res.NetProfit.Equal(decimal.NewFromInt(-100)))
	assert.True(t, res.ProfitPerBird.IsZero())
	assert.True(t, res.CostPerKg.IsZero())
}

func TestProfitValidation(t *testing.T) {
	_, _, err := Profit(ProfitForm{TotalChicks: "10"})
	assert.ErrorIs(t, err, ErrProfitFieldsRequired)

	_, _, err = Profit(ProfitForm{
		TotalChicks: "10", ChickPrice: "abc", FeedCost: "1", MedicineCost: "1",
		UtilityCost: "1", LaborCost: "1", WeightSold: "1", PricePerKg: "1",
	})
	assert.ErrorIs(t, err, ErrProfitInvalidNumber)
}
