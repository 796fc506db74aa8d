package export

import (
	"strings"
	"testing"
	"time"

	"cartao/internal/core"
)

func sampleRecords() []core.Record {
	return []core.Record{
		{
			ID: 1, Year: 2024, Month: 11, CardID: 1, CardName: "Visa", DueDay: 10,
			PurchaseDate: "15/11/2024", Description: `Sofa "retratil"`, Classification: "Casa",
			Total: core.Money{Cents: 100000}, InstallmentNo: 1, Installments: 4,
			Amount: core.Money{Cents: 25000}, Person: "Ana", ParentID: 77,
		},
		{
			ID: 2, Year: 2024, Month: 12, CardID: 1, CardName: "Visa", DueDay: 10,
			PurchaseDate: "15/11/2024", Description: "Mercado", Classification: "Mercado",
			Total: core.Money{Cents: 33330}, InstallmentNo: 1, Installments: 1,
			Amount: core.Money{Cents: 33330}, Person: "Bruno", ParentID: 78,
		},
	}
}

func TestCSVHeaderAndRows(t *testing.T) {
	out := string(CSV(sampleRecords()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != CSVHeader {
		t.Errorf("header = %q", lines[0])
	}
	want := `2024,11,Visa,10,15/11/2024,"Sofa ""retratil""",Casa,1000,1,4,250,Ana`
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
	if !strings.Contains(lines[2], "333.3") {
		t.Errorf("decimal amount lost trailing form: %q", lines[2])
	}
}

func TestCSVEmpty(t *testing.T) {
	out := string(CSV(nil))
	if out != CSVHeader+"\n" {
		t.Errorf("empty export = %q", out)
	}
}

func TestSpreadsheetEscapesHTML(t *testing.T) {
	records := sampleRecords()
	records[0].Description = "<script>alert(1)</script>"
	out := string(Spreadsheet(records))

	if !strings.HasPrefix(out, `<table border="1">`) {
		t.Errorf("missing table wrapper: %q", out[:40])
	}
	if strings.Contains(out, "<script>") {
		t.Error("description not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped description missing")
	}
	if !strings.Contains(out, "<th>RESPONSÁVEL</th>") {
		t.Error("header cells missing")
	}
}

func TestPrintDocument(t *testing.T) {
	out, err := PrintDocument(sampleRecords(), time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, "<h1>"+DocumentTitle+"</h1>") {
		t.Error("title missing")
	}
	if !strings.Contains(doc, "Data de exportação: 25/12/2024") {
		t.Error("export date missing")
	}
	if !strings.Contains(doc, "R$ 250.00") {
		t.Error("installment amount missing")
	}
	// Reduced column set: no due-day or installment-count columns.
	if strings.Contains(doc, "VENCIMENTO") || strings.Contains(doc, "QTD PARCELA") {
		t.Error("print document must use the reduced column set")
	}
}

func TestPDF(t *testing.T) {
	out, err := PDF(sampleRecords(), time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty pdf")
	}
	if !strings.HasPrefix(string(out[:5]), "%PDF-") {
		t.Errorf("not a pdf: %q", out[:5])
	}
}

func TestFilename(t *testing.T) {
	got := Filename("csv", time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC))
	if got != "controle-cartao-2024-03-07.csv" {
		t.Errorf("Filename() = %q", got)
	}
}
