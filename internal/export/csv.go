package export

import (
	"fmt"
	"strings"
	"time"

	"cartao/internal/core"
)

// CSVHeader is the fixed column order of the CSV export.
const CSVHeader = "ANO,MÊS,CARTÃO,VENCIMENTO,DATA,DESCRIÇÃO,CLASSIFICAÇÃO,VALOR TOTAL,PARC. ATUAL,QTD PARCELA,VALOR PARCELA,RESPONSÁVEL"

// CSV renders records as comma-separated text. Only the description column
// is quoted; embedded quotes are doubled. encoding/csv cannot express this
// selective quoting, so rows are assembled by hand.
func CSV(records []core.Record) []byte {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')

	for _, r := range records {
		b.WriteString(fmt.Sprintf("%d,%d,%s,%d,%s,%s,%s,%s,%d,%d,%s,%s\n",
			r.Year, r.Month, r.CardName, r.DueDay, r.PurchaseDate,
			quote(r.Description), r.Classification,
			r.Total.Decimal(), r.InstallmentNo, r.Installments,
			r.Amount.Decimal(), r.Person))
	}

	return []byte(b.String())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename builds the dated download name shared by all export formats.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("controle-cartao-%s.%s", now.Format("2006-01-02"), ext)
}
