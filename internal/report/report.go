// Package report формирует PDF-отчёты по корзине, истории закупок и прайс-листу.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

var (
	// ErrExportFailed возвращается при любой ошибке библиотеки формирования PDF.
	ErrExportFailed = errors.New("pdf export failed")
	// ErrNothingToExport возвращается, если экспортировать нечего.
	ErrNothingToExport = validation.Errorf("❌ কোনো হিসাব এক্সপোর্ট করার জন্য নেই।")
)

const (
	marginLeft  = 14.0
	rowHeight   = 8.0
	headerColor = 41
)

var purchaseColumns = []column{
	{title: "Code", width: 28, align: "L"},
	{title: "Name", width: 62, align: "L"},
	{title: "Bags", width: 22, align: "R"},
	{title: "KG", width: 26, align: "R"},
	{title: "Final Price (Tk)", width: 44, align: "R"},
}

type column struct {
	title string
	width float64
	align string
}

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument() *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, 15, marginLeft)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	return &document{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// FeedHistory формирует PDF со всеми сохранёнными закупками: для каждой записи
// название магазина, дату и таблицу строк со строкой итогов.
func FeedHistory(w io.Writer, records []model.HistoryRecord) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}

	d := newDocument()
	d.title("Feed Purchase History")

	y := 25.0
	_, pageHeight := d.pdf.GetPageSize()
	for _, rec := range records {
		if y+EstimatedHeight(len(rec.Items)) > pageHeight {
			d.pdf.AddPage()
			y = 15
		}

		d.pdf.SetXY(marginLeft, y)
		d.pdf.SetFont("Helvetica", "B", 12)
		d.pdf.CellFormat(0, 6, d.tr("Shop: "+rec.ShopName), "", 1, "L", false, 0, "")
		d.pdf.SetFont("Helvetica", "", 9)
		d.pdf.CellFormat(0, 5, "Date: "+rec.Timestamp.Format(time.DateTime), "", 1, "L", false, 0, "")

		d.purchaseTable(rec.Items, model.CartTotals{
			TotalBags:   rec.TotalBags,
			TotalKg:     rec.TotalKg,
			TotalAmount: rec.TotalAmount,
		})
		y = d.pdf.GetY() + 15
	}

	return d.output(w)
}

// Cart формирует PDF по текущей (несохранённой) корзине.
func Cart(w io.Writer, shopName string, items []model.LineItem, totals model.CartTotals) error {
	if len(items) == 0 {
		return ErrNothingToExport
	}

	d := newDocument()
	d.title("Feed Purchase")

	if shopName == "" {
		shopName = model.DefaultShopName
	}
	d.pdf.SetXY(marginLeft, 25)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(0, 6, d.tr("Shop: "+shopName), "", 1, "L", false, 0, "")
	d.purchaseTable(items, totals)

	return d.output(w)
}

// FeedList формирует PDF прайс-листа кормов с ценой за килограмм.
func FeedList(w io.Writer, feeds []model.FeedProduct) error {
	if len(feeds) == 0 {
		return ErrNothingToExport
	}

	d := newDocument()
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.Text(marginLeft, 16, "AG Agro Feed List")
	d.pdf.SetXY(marginLeft, 20)

	cols := []column{
		{title: "Code", width: 28, align: "L"},
		{title: "Name", width: 70, align: "L"},
		{title: "Price", width: 30, align: "R"},
		{title: "KG", width: 20, align: "R"},
		{title: "Price per KG", width: 34, align: "R"},
	}
	d.header(cols, 85)

	d.pdf.SetFont("Helvetica", "", 10)
	for _, f := range feeds {
		perKg := "N/A"
		if f.BagWeightKg != 0 {
			perKg = f.UnitPrice.Div(decimal.NewFromFloat(f.BagWeightKg)).StringFixed(2)
		}
		d.row(cols, []string{
			f.Code,
			f.Name,
			f.UnitPrice.StringFixed(2),
			formatKg(f.BagWeightKg),
			perKg,
		})
	}

	return d.output(w)
}

// EstimatedHeight оценивает высоту блока записи истории в миллиметрах.
func EstimatedHeight(items int) float64 {
	return float64(items+3)*10 + 20
}

func (d *document) title(text string) {
	d.pdf.SetFont("Helvetica", "B", 16)
	pageWidth, _ := d.pdf.GetPageSize()
	d.pdf.SetXY(0, 10)
	d.pdf.CellFormat(pageWidth, 10, text, "", 1, "C", false, 0, "")
}

func (d *document) purchaseTable(items []model.LineItem, totals model.CartTotals) {
	d.header(purchaseColumns, 0)

	d.pdf.SetFont("Helvetica", "", 10)
	for _, it := range items {
		d.row(purchaseColumns, []string{
			it.Code,
			it.Name,
			strconv.Itoa(it.BagCount),
			formatKg(it.TotalKg) + " kg",
			FormatMoney(it.FinalPrice),
		})
	}

	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(purchaseColumns[0].width+purchaseColumns[1].width, rowHeight, "Total", "1", 0, "R", false, 0, "")
	d.pdf.CellFormat(purchaseColumns[2].width, rowHeight, strconv.Itoa(totals.TotalBags), "1", 0, "R", false, 0, "")
	d.pdf.CellFormat(purchaseColumns[3].width, rowHeight, formatKg(totals.TotalKg)+" kg", "1", 0, "R", false, 0, "")
	d.pdf.CellFormat(purchaseColumns[4].width, rowHeight, FormatMoney(totals.TotalAmount), "1", 1, "R", false, 0, "")
}

func (d *document) header(cols []column, gray int) {
	d.pdf.SetFont("Helvetica", "B", 10)
	if gray > 0 {
		d.pdf.SetFillColor(gray, gray, gray)
	} else {
		d.pdf.SetFillColor(headerColor, 128, 185)
	}
	d.pdf.SetTextColor(255, 255, 255)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		d.pdf.CellFormat(c.width, rowHeight, c.title, "1", ln, "C", true, 0, "")
	}
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) row(cols []column, values []string) {
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		d.pdf.CellFormat(c.width, rowHeight, d.tr(values[i]), "1", ln, c.align, false, 0, "")
	}
}

func (d *document) output(w io.Writer) error {
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// FormatMoney форматирует сумму с двумя знаками и разделителями тысяч.
func FormatMoney(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var out []byte
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}

	res := string(out) + frac
	if v.IsNegative() {
		res = "-" + res
	}
	return res
}

func formatKg(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
