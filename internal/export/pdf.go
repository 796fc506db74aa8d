package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"cartao/internal/core"
)

// PDF renders the reduced-column ledger report as a real PDF document.
func PDF(records []core.Record, exportedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, DocumentTitle, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Data de exportação: "+exportedAt.Format("02/01/2006"), props.Text{
			Size: 9,
		}),
	)

	// Table Header
	m.AddRow(8,
		text.NewCol(1, "ANO", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(1, "MÊS", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(2, "CARTÃO", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(1, "DATA", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(3, "DESCRIÇÃO", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(1, "CLASSIF.", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(1, "VALOR", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(2, "RESPONSÁVEL", props.Text{Style: fontstyle.Bold, Size: 8}),
	)

	m.AddRow(1, col.New(12))

	for _, r := range records {
		m.AddRow(7,
			text.NewCol(1, fmt.Sprintf("%d", r.Year), props.Text{Size: 8}),
			text.NewCol(1, fmt.Sprintf("%d", r.Month), props.Text{Size: 8}),
			text.NewCol(2, r.CardName, props.Text{Size: 8}),
			text.NewCol(1, r.PurchaseDate, props.Text{Size: 8}),
			text.NewCol(3, r.Description, props.Text{Size: 8}),
			text.NewCol(1, r.Classification, props.Text{Size: 8}),
			text.NewCol(1, fmt.Sprintf("R$ %.2f", float64(r.Amount.Cents)/100), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, r.Person, props.Text{Size: 8}),
		)
	}

	// Footer total across the exported rows
	m.AddRow(10,
		col.New(7),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, core.FormatBRL(core.Sum(records)), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}

	return doc.GetBytes(), nil
}
