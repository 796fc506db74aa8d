package export

import (
	"fmt"
	"html"
	"strings"

	"cartao/internal/core"
)

// Spreadsheet renders records as a self-contained HTML table. Served with
// the application/vnd.ms-excel content type, spreadsheet programs open it
// as a worksheet.
func Spreadsheet(records []core.Record) []byte {
	var b strings.Builder
	b.WriteString(`<table border="1"><tr><th>ANO</th><th>MÊS</th><th>CARTÃO</th><th>VENCIMENTO</th><th>DATA</th><th>DESCRIÇÃO</th><th>CLASSIFICAÇÃO</th><th>VALOR TOTAL</th><th>PARC. ATUAL</th><th>QTD PARCELA</th><th>VALOR PARCELA</th><th>RESPONSÁVEL</th></tr>`)

	for _, r := range records {
		b.WriteString(fmt.Sprintf("<tr><td>%d</td><td>%d</td><td>%s</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			r.Year, r.Month, html.EscapeString(r.CardName), r.DueDay,
			html.EscapeString(r.PurchaseDate), html.EscapeString(r.Description),
			html.EscapeString(r.Classification), r.Total.Decimal(),
			r.InstallmentNo, r.Installments, r.Amount.Decimal(),
			html.EscapeString(r.Person)))
	}

	b.WriteString("</table>")
	return []byte(b.String())
}
