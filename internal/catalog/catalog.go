// Package catalog содержит прайс-лист кормов и поиск по коду для автодополнения.
package catalog

import (
	"strings"

	"github.com/mmeshcher/feedcalc/internal/model"
)

// Normalize приводит код корма к виду для сравнения: обрезает пробелы по краям,
// схлопывает внутренние пробельные последовательности и переводит в верхний регистр.
func Normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// Catalog хранит неизменяемый снимок прайс-листа. Изменения прайс-листа создают новый снимок.
type Catalog struct {
	products   []model.FeedProduct
	normalized []string
}

// New создаёт снимок каталога из списка кормов. Порядок списка сохраняется.
func New(products []model.FeedProduct) *Catalog {
	c := &Catalog{
		products:   make([]model.FeedProduct, len(products)),
		normalized: make([]string, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		c.normalized[i] = Normalize(p.Code)
	}
	return c
}

// Products возвращает копию списка кормов.
func (c *Catalog) Products() []model.FeedProduct {
	res := make([]model.FeedProduct, len(c.products))
	copy(res, c.products)
	return res
}

// Len возвращает количество позиций в каталоге.
func (c *Catalog) Len() int {
	return len(c.products)
}

// FindByPrefix возвращает все корма, нормализованный код которых начинается с нормализованного запроса.
// Пустой запрос не даёт подсказок.
func (c *Catalog) FindByPrefix(query string) []model.FeedProduct {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	var res []model.FeedProduct
	for i, code := range c.normalized {
		if strings.HasPrefix(code, q) {
			res = append(res, c.products[i])
		}
	}
	return res
}

// FindExact возвращает первый корм с точно совпадающим нормализованным кодом.
func (c *Catalog) FindExact(code string) (model.FeedProduct, bool) {
	q := Normalize(code)
	if q == "" {
		return model.FeedProduct{}, false
	}
	for i, n := range c.normalized {
		if n == q {
			return c.products[i], true
		}
	}
	return model.FeedProduct{}, false
}

// Contains сообщает, есть ли в каталоге корм с таким кодом без учёта регистра и пробелов по краям.
func (c *Catalog) Contains(code string) bool {
	_, ok := c.FindExact(code)
	return ok
}
