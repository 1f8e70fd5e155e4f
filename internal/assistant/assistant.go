// Package assistant отвечает на вопросы фермеров через внешний генеративный AI-сервис.
package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

// Greeting содержит первое сообщение ассистента в чате.
const Greeting = "আসসালামু আলাইকুম! আমি আপনার AI কৃষি বিশেষজ্ঞ। খামার সংক্রান্ত যেকোনো প্রশ্ন করতে পারেন।"

var (
	// ErrEmptyResponse возвращается, если AI-сервис вернул пустой ответ.
	ErrEmptyResponse = errors.New("received an empty response from the AI")
	// ErrNotConfigured возвращается, если ключ AI-сервиса не задан.
	ErrNotConfigured = errors.New("ai assistant is not configured")
	// ErrEmptyMessage возвращается при пустом вопросе.
	ErrEmptyMessage = validation.Errorf("message is empty")
)

// Generator выполняет один запрос к генеративной модели.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, message string) (string, error)
}

// Cache хранит ранее полученные ответы.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Assistant связывает системную инструкцию, ограничение частоты запросов, кэш и генератор.
type Assistant struct {
	generator Generator
	limiter   *rate.Limiter
	cache     Cache
}

// Option настраивает Assistant.
type Option func(a *Assistant)

// WithLimiter задаёт ограничитель частоты запросов к AI-сервису.
func WithLimiter(l *rate.Limiter) Option {
	return func(a *Assistant) { a.limiter = l }
}

// WithCache включает кэширование ответов.
func WithCache(c Cache) Option {
	return func(a *Assistant) { a.cache = c }
}

// New создаёт ассистента. Если generator равен nil, Ask возвращает ErrNotConfigured.
func New(generator Generator, opts ...Option) *Assistant {
	a := &Assistant{generator: generator}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask отправляет вопрос пользователя вместе с системной инструкцией, построенной по справке фермы.
// Ошибки кэша не прерывают запрос.
func (a *Assistant) Ask(ctx context.Context, farm model.FarmInfo, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if a.generator == nil {
		return "", ErrNotConfigured
	}

	system := SystemInstruction(farm)
	key := cacheKey(system, message)

	if a.cache != nil {
		if answer, ok, err := a.cache.Get(ctx, key); err == nil && ok {
			return answer, nil
		}
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("wait rate limiter: %w", err)
		}
	}

	answer, err := a.generator.Generate(ctx, system, message)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ErrEmptyResponse
	}

	if a.cache != nil {
		_ = a.cache.Set(ctx, key, answer)
	}

	return answer, nil
}

// SystemInstruction строит системную инструкцию из фиксированных рекомендаций и графика вакцинации.
func SystemInstruction(farm model.FarmInfo) string {
	var sb strings.Builder

	sb.WriteString(`You are a helpful AI assistant for farmers in Bangladesh, named "Krishi Bisesoggo" (Agriculture Expert). `)
	sb.WriteString("Your primary role is to provide advice based on the provided farming information. Always respond in Bengali. ")
	sb.WriteString("The information is as follows:\n\n")

	sb.WriteString("Farm Setup: Location should be high, near a market, with good transport. Structure can be bamboo/tin. Space for broilers is 1 sq ft/bird, layers 2.5-3 sq ft/bird.\n")
	sb.WriteString("Equipment: 1 feeder and 1 drinker per 50 broilers or 25 layers.\n")
	sb.WriteString("Broiler Care: Day 1-7 temp is 32-35°C. Day 8-21 temp reduces to 28°C. Ready for market in 30-35 days.\n")
	sb.WriteString("Layer Care: Chicks (0-8 wks), Growers (9-18 wks), Layers (from 18 wks). Layers need 100-110g feed daily and 14-16 hrs of light.\n")

	sb.WriteString("Vaccine Schedule:\n")
	for _, v := range farm.VaccineSchedule {
		fmt.Fprintf(&sb, "- Age %s: %s for %s.\n", v.Age, v.Vaccine, v.Disease)
	}

	sb.WriteString("Health Tips: Clean water/feed bowls daily. Keep visitors away. Contact a vet for issues.\n")
	sb.WriteString("Economics: A broiler eats 3.5-4 kg of feed in 35 days. A layer produces 260-280 eggs per year.\n")

	sb.WriteString("\nBased on this information, answer the user's questions concisely and helpfully. ")
	sb.WriteString("If a question is outside this scope, you can use general knowledge but try to relate it back to these principles if possible. ")
	sb.WriteString("If you don't know, say so.")

	return sb.String()
}

func cacheKey(system, message string) string {
	sum := sha256.Sum256([]byte(system + "\x00" + message))
	return "assistant:" + hex.EncodeToString(sum[:])
}
