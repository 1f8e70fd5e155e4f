// Package model содержит доменные сущности сервиса расчётов для дистрибьютора кормов.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeedProduct описывает позицию прайс-листа кормов.
type FeedProduct struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"price"`
	BagWeightKg float64         `json:"kg"`
}

// LineItem описывает строку корзины, рассчитанную в момент добавления.
type LineItem struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	BagCount   int             `json:"bags"`
	TotalKg    float64         `json:"kg"`
	FinalPrice decimal.Decimal `json:"final"`
}

// CartTotals содержит агрегированные итоги корзины.
type CartTotals struct {
	TotalBags   int             `json:"total_bags"`
	TotalKg     float64         `json:"total_kg"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// DefaultShopName подставляется, если название магазина не указано.
const DefaultShopName = "দোকানের নাম নেই"

// HistoryRecord описывает сохранённую закупку кормов.
type HistoryRecord struct {
	ID          int64           `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	ShopName    string          `json:"shop_name"`
	Items       []LineItem      `json:"items"`
	TotalBags   int             `json:"total_bags"`
	TotalKg     float64         `json:"total_kg"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// RecordID возвращает идентификатор записи.
func (r HistoryRecord) RecordID() int64 { return r.ID }

// BroilerInput содержит исходные данные расчёта конверсии корма.
type BroilerInput struct {
	FarmerName    string  `json:"farmer_name"`
	FarmerMobile  string  `json:"farmer_mobile"`
	FarmerAddress string  `json:"farmer_address"`
	TotalBirds    int     `json:"total_birds"`
	FeedConsumed  float64 `json:"feed_consumed"`
	TotalWeight   float64 `json:"total_weight"`
	Age           int     `json:"age"`
}

// BroilerResult содержит результаты расчёта, округлённые до двух знаков.
type BroilerResult struct {
	AvgWeightPerBird string `json:"avg_weight_per_bird"`
	FCR              string `json:"fcr"`
	PerBagWeight     string `json:"per_bag_weight"`
}

// BroilerRecord описывает сохранённый расчёт FCR.
type BroilerRecord struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	BroilerInput
	BroilerResult
}

// RecordID возвращает идентификатор записи.
func (r BroilerRecord) RecordID() int64 { return r.ID }

// ProfitInput содержит затраты и выручку по партии бройлеров.
type ProfitInput struct {
	TotalChicks  int             `json:"total_chicks"`
	ChickPrice   decimal.Decimal `json:"chick_price"`
	FeedCost     decimal.Decimal `json:"total_feed_cost"`
	MedicineCost decimal.Decimal `json:"total_medicine_cost"`
	UtilityCost  decimal.Decimal `json:"total_utility_cost"`
	LaborCost    decimal.Decimal `json:"total_labor_cost"`
	WeightSold   decimal.Decimal `json:"total_weight_sold"`
	PricePerKg   decimal.Decimal `json:"price_per_kg"`
}

// ProfitResult содержит результат расчёта прибыли.
type ProfitResult struct {
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	ProfitPerBird decimal.Decimal `json:"profit_per_bird"`
	CostPerKg     decimal.Decimal `json:"cost_per_kg"`
}

// ProfitRecord описывает сохранённый расчёт прибыли.
type ProfitRecord struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ProfitInput
	ProfitResult
}

// RecordID возвращает идентификатор записи.
func (r ProfitRecord) RecordID() int64 { return r.ID }

// Notice описывает объявление, показываемое пользователям.
type Notice struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	IsActive bool      `json:"is_active"`
}

// FeedMill описывает кормовой завод компании.
type FeedMill struct {
	Location          string `json:"location"`
	Capacity          string `json:"capacity"`
	MonthlyProduction string `json:"monthlyProduction"`
}

// ManagementMember описывает члена руководства.
type ManagementMember struct {
	Title string `json:"title"`
	Name  string `json:"name"`
}

// ProductService описывает направление деятельности компании.
type ProductService struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CompanyInfo содержит справочную информацию о компании.
type CompanyInfo struct {
	Introduction         string             `json:"introduction"`
	FeedMills            []FeedMill         `json:"feedMills"`
	Depots               []string           `json:"depots"`
	Products             []ProductService   `json:"products"`
	Management           []ManagementMember `json:"management"`
	CEONote              string             `json:"ceoNote"`
	SocialResponsibility string             `json:"socialResponsibility"`
}

// FarmSetup содержит рекомендации по размещению фермы.
type FarmSetup struct {
	Location  []string `json:"location"`
	Structure []string `json:"structure"`
	Space     []string `json:"space"`
}

// AgeCare содержит рекомендации по уходу в зависимости от возраста птицы.
type AgeCare struct {
	Title   string   `json:"title"`
	Details []string `json:"details"`
}

// Vaccine описывает строку графика вакцинации.
type Vaccine struct {
	ID      string `json:"id"`
	Age     string `json:"age"`
	Vaccine string `json:"vaccine"`
	Disease string `json:"disease"`
}

// FarmInfo содержит справочную информацию для фермеров.
type FarmInfo struct {
	Setup           FarmSetup `json:"setup"`
	Equipment       []string  `json:"equipment"`
	BroilerCare     AgeCare   `json:"broilerCare"`
	LayerCare       AgeCare   `json:"layerCare"`
	VaccineSchedule []Vaccine `json:"vaccineSchedule"`
	Health          []string  `json:"health"`
	Economics       []string  `json:"economics"`
	Tips            []string  `json:"tips"`
}

// ChatReply содержит ответ AI-ассистента.
type ChatReply struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
