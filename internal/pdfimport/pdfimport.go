// Package pdfimport извлекает прайс-лист кормов из PDF-документа.
//
// Каждая строка текста страницы должна содержать четыре поля (код, название, цену и вес мешка),
// разделённые не менее чем двумя пробелами. Строки другого вида пропускаются.
package pdfimport

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

// ErrNoRows возвращается, если в документе не найдено ни одной строки прайс-листа.
var ErrNoRows = validation.Errorf("No valid feed data found in the PDF. Please ensure the PDF has 4 columns: Code, Name, Price, KG, separated by at least two spaces.")

// ErrMalformed возвращается, если документ не удалось разобрать.
var ErrMalformed = errors.New("malformed pdf")

var fieldSeparator = regexp.MustCompile(`\s{2,}`)

// Parse читает все страницы документа и возвращает найденные позиции прайс-листа.
func Parse(data []byte) (products []model.FeedProduct, err error) {
	defer func() {
		if r := recover(); r != nil {
			products = nil
			err = fmt.Errorf("%w: %v", ErrMalformed, r)
		}
	}()

	lines, err := pageLines(data)
	if err != nil {
		return nil, err
	}

	products = ParseLines(lines)
	if len(products) == 0 {
		return nil, ErrNoRows
	}
	return products, nil
}

func pageLines(data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrMalformed, i, err)
		}

		for _, row := range rows {
			var sb strings.Builder
			for _, text := range row.Content {
				sb.WriteString(text.S)
			}
			lines = append(lines, sb.String())
		}
	}
	return lines, nil
}

// ParseLines разбирает строки текста в позиции прайс-листа.
func ParseLines(lines []string) []model.FeedProduct {
	var res []model.FeedProduct
	for _, line := range lines {
		p, ok := ParseLine(line)
		if ok {
			res = append(res, p)
		}
	}
	return res
}

// ParseLine разбирает одну строку вида "код  название  цена  вес".
func ParseLine(line string) (model.FeedProduct, bool) {
	parts := fieldSeparator.Split(strings.TrimSpace(line), -1)
	if len(parts) != 4 {
		return model.FeedProduct{}, false
	}

	code := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if code == "" || name == "" {
		return model.FeedProduct{}, false
	}

	price, ok := validation.LeadingDecimal(parts[2])
	if !ok || price.IsNegative() {
		return model.FeedProduct{}, false
	}

	kg, ok := validation.LeadingInt(parts[3])
	if !ok || kg <= 0 {
		return model.FeedProduct{}, false
	}

	return model.FeedProduct{
		Code:        code,
		Name:        name,
		UnitPrice:   price,
		BagWeightKg: float64(kg),
	}, true
}
