// Package cart реализует корзину закупки кормов и хранение корзин по сессиям.
package cart

import (
	"errors"

	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/pricing"
)

// State описывает состояние корзины.
type State string

const (
	StateEmpty        State = "empty"
	StateAccumulating State = "accumulating"
)

// ErrIndexOutOfRange возвращается при удалении строки по несуществующей позиции.
var ErrIndexOutOfRange = errors.New("cart item index out of range")

// Cart хранит упорядоченный список строк текущей закупки.
type Cart struct {
	items []model.LineItem
}

// Add добавляет строку в конец корзины.
func (c *Cart) Add(item model.LineItem) {
	c.items = append(c.items, item)
}

// Remove удаляет строку по позиции, сохраняя порядок остальных строк.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	items := make([]model.LineItem, 0, len(c.items)-1)
	items = append(items, c.items[:index]...)
	items = append(items, c.items[index+1:]...)
	c.items = items
	return nil
}

// Items возвращает копию строк корзины.
func (c *Cart) Items() []model.LineItem {
	res := make([]model.LineItem, len(c.items))
	copy(res, c.items)
	return res
}

// Len возвращает количество строк.
func (c *Cart) Len() int {
	return len(c.items)
}

// Totals пересчитывает итоги по текущим строкам.
func (c *Cart) Totals() model.CartTotals {
	return pricing.Totals(c.items)
}

// State возвращает текущее состояние корзины.
func (c *Cart) State() State {
	if len(c.items) == 0 {
		return StateEmpty
	}
	return StateAccumulating
}

// Reset очищает корзину.
func (c *Cart) Reset() {
	c.items = nil
}
