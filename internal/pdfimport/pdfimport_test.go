package pdfimport

import (
	"bytes"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		ok        bool
		wantCode  string
		wantName  string
		wantPrice string
		wantKg    float64
	}{
		{
			name:      "regular row",
			line:      "701 C  Broiler Starter  3432.50  50",
			ok:        true,
			wantCode:  "701 C",
			wantName:  "Broiler Starter",
			wantPrice: "3432.50",
			wantKg:    50,
		},
		{
			name:      "wide gaps and trailing spaces",
			line:      "  505 M/C     Layer Layer-1    2777.5      50   ",
			ok:        true,
			wantCode:  "505 M/C",
			wantName:  "Layer Layer-1",
			wantPrice: "2777.5",
			wantKg:    50,
		},
		{
			name:      "kg with unit",
			line:      "300 F  Nursery Powder  965  10 kg",
			ok:        true,
			wantCode:  "300 F",
			wantName:  "Nursery Powder",
			wantPrice: "965",
			wantKg:    10,
		},
		{name: "header row", line: "Code  Name  Price  KG", ok: false},
		{name: "three fields", line: "701 C  Broiler Starter  3432.50", ok: false},
		{name: "five fields", line: "701 C  Broiler  Starter  3432.50  50", ok: false},
		{name: "single spaces only", line: "701 C Broiler Starter 3432.50 50", ok: false},
		{name: "empty", line: "", ok: false},
		{name: "negative price", line: "701 C  Broiler Starter  -5  50", ok: false},
		{name: "zero bag weight", line: "701 C  Broiler Starter  3432.50  0", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ParseLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantCode, p.Code)
			assert.Equal(t, tt.wantName, p.Name)
			assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString(tt.wantPrice)), "price = %s", p.UnitPrice)
			assert.Equal(t, tt.wantKg, p.BagWeightKg)
		})
	}
}

func TestParseLinesSkipsInvalid(t *testing.T) {
	res := ParseLines([]string{
		"AG Agro Feed List",
		"Code  Name  Price  KG",
		"701 C  Broiler Starter  3432.50  50",
		"702 C  Broiler Grower  3432.50  50",
	})
	require.Len(t, res, 2)
	assert.Equal(t, "701 C", res[0].Code)
	assert.Equal(t, "702 C", res[1].Code)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("definitely not a pdf"))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParseDocumentWithoutRows(t *testing.T) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Text(20, 20, "Price list will be published soon")

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	_, err := Parse(buf.Bytes())
	require.Error(t, err)
}
