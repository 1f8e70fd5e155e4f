// Package farmcalc содержит калькуляторы конверсии корма бройлеров и прибыли фермы.
package farmcalc

import (
	"strconv"
	"strings"

	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

// FeedBagKg задаёт вес стандартного мешка корма, по которому считается вес на мешок.
const FeedBagKg = 50.0

// ErrBroilerFieldsRequired возвращается, если не заполнены все поля расчёта FCR.
var ErrBroilerFieldsRequired = validation.Errorf("⚠️ সব ঘর পূরণ করুন")

// BroilerForm содержит поля формы расчёта FCR в том виде, в каком их ввёл пользователь.
type BroilerForm struct {
	FarmerName    string `json:"farmer_name"`
	FarmerMobile  string `json:"farmer_mobile"`
	FarmerAddress string `json:"farmer_address"`
	TotalBirds    string `json:"total_birds"`
	FeedConsumed  string `json:"feed_consumed"`
	TotalWeight   string `json:"total_weight"`
	Age           string `json:"age"`
}

// Broiler проверяет форму и рассчитывает средний вес птицы, FCR и вес на мешок корма.
func Broiler(form BroilerForm) (model.BroilerInput, model.BroilerResult, error) {
	if !validation.AllPresent(form.FarmerName, form.FarmerMobile, form.FarmerAddress) {
		return model.BroilerInput{}, model.BroilerResult{}, ErrBroilerFieldsRequired
	}

	birds, okBirds := validation.LeadingInt(form.TotalBirds)
	age, okAge := validation.LeadingInt(form.Age)
	feed, okFeed := parseFloat(form.FeedConsumed)
	weight, okWeight := parseFloat(form.TotalWeight)
	if !okBirds || !okAge || !okFeed || !okWeight || birds <= 0 || weight <= 0 {
		return model.BroilerInput{}, model.BroilerResult{}, ErrBroilerFieldsRequired
	}

	in := model.BroilerInput{
		FarmerName:    strings.TrimSpace(form.FarmerName),
		FarmerMobile:  strings.TrimSpace(form.FarmerMobile),
		FarmerAddress: strings.TrimSpace(form.FarmerAddress),
		TotalBirds:    birds,
		FeedConsumed:  feed,
		TotalWeight:   weight,
		Age:           age,
	}

	return in, BroilerMetrics(in), nil
}

// BroilerMetrics рассчитывает показатели по уже проверенным данным.
func BroilerMetrics(in model.BroilerInput) model.BroilerResult {
	bags := in.FeedConsumed / FeedBagKg
	perBag := 0.0
	if bags > 0 {
		perBag = in.TotalWeight / bags
	}

	return model.BroilerResult{
		AvgWeightPerBird: format2(in.TotalWeight / float64(in.TotalBirds)),
		FCR:              format2(in.FeedConsumed / in.TotalWeight),
		PerBagWeight:     format2(perBag),
	}
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func format2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
