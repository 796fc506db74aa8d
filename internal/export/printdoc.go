package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"cartao/internal/core"
)

// DocumentTitle heads the printable and PDF exports.
const DocumentTitle = "Controle de Cartão Anauê"

var printTemplate = template.Must(template.New("print").Parse(`<h1>{{.Title}}</h1>
<p>Data de exportação: {{.ExportDate}}</p>
<table border="1" cellpadding="5" cellspacing="0" style="width:100%; font-size:10px;">
<tr><th>ANO</th><th>MÊS</th><th>CARTÃO</th><th>DATA</th><th>DESCRIÇÃO</th><th>CLASSIFICAÇÃO</th><th>VALOR</th><th>RESPONSÁVEL</th></tr>
{{range .Rows}}<tr><td>{{.Year}}</td><td>{{.Month}}</td><td>{{.Card}}</td><td>{{.Date}}</td><td>{{.Description}}</td><td>{{.Classification}}</td><td>{{.Amount}}</td><td>{{.Person}}</td></tr>
{{end}}</table>
`))

type printRow struct {
	Year           int
	Month          int
	Card           string
	Date           string
	Description    string
	Classification string
	Amount         string
	Person         string
}

type printData struct {
	Title      string
	ExportDate string
	Rows       []printRow
}

// PrintDocument renders a reduced-column HTML document meant for the
// browser's print dialog. Per-record amounts show the installment value,
// not the purchase total.
func PrintDocument(records []core.Record, exportedAt time.Time) ([]byte, error) {
	data := printData{
		Title:      DocumentTitle,
		ExportDate: exportedAt.Format("02/01/2006"),
		Rows:       make([]printRow, 0, len(records)),
	}
	for _, r := range records {
		data.Rows = append(data.Rows, printRow{
			Year:           r.Year,
			Month:          r.Month,
			Card:           r.CardName,
			Date:           r.PurchaseDate,
			Description:    r.Description,
			Classification: r.Classification,
			Amount:         fmt.Sprintf("R$ %.2f", float64(r.Amount.Cents)/100),
			Person:         r.Person,
		})
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render print document: %w", err)
	}
	return buf.Bytes(), nil
}
