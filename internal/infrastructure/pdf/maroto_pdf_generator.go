// Package pdf genera los documentos de alquiler (cotización, factura y nota de entrega)
// con Maroto v2.
//
// Las tres páginas A4 comparten el mismo esqueleto:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Tipo de documento + N° + Fecha          │
//	│  CLIENTE: Nombre + N° fiscal + contacto                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Material | Cant | Tarifa | Días | Total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES o FIRMAS                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Chrisx-39/FormMaster/internal/application/ports"
	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.DocumentGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.DocumentGenerator.
type MarotoPDFGenerator struct {
	company string
	printer *message.Printer
}

// NewMarotoPDFGenerator company va en el encabezado de cada documento.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company, printer: message.NewPrinter(language.English)}
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.company, true).
		Build()
	return maroto.New(cfg)
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// QuotationPDF cotización con tabla de tarifas y totales.
func (g *MarotoPDFGenerator) QuotationPDF(_ context.Context, doc ports.QuotationDocument) ([]byte, error) {
	q := doc.Quotation
	m := g.newDocument("Cotización " + q.QuotationNumber)

	m.AddRows(g.headerRow("COTIZACIÓN", q.QuotationNumber, "Válida hasta: "+q.ValidUntil.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(doc.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(rateTableHeader())
	m.AddRows(g.rateTableRows(doc.Lines, doc.Currency)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(
		[2]string{"Subtotal:", g.money(doc.Currency, q.Subtotal)},
		[2]string{"Transporte:", g.money(doc.Currency, q.TransportCost)},
		[2]string{"Impuesto (" + percent(q.TaxRate) + "):", g.money(doc.Currency, q.TaxAmount)},
		[2]string{"TOTAL:", g.money(doc.Currency, q.TotalAmount)},
	))
	m.AddRows(noteRow(fmt.Sprintf("Duración del alquiler: %d días. %s", q.HireDurationDays, q.Notes)))
	return render(m)
}

// InvoicePDF factura con saldo pendiente.
func (g *MarotoPDFGenerator) InvoicePDF(_ context.Context, doc ports.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice
	m := g.newDocument("Factura " + inv.InvoiceNumber)

	m.AddRows(g.headerRow("FACTURA "+inv.Type, inv.InvoiceNumber,
		"Fecha: "+inv.InvoiceDate.Format("02/01/2006")+"   Vence: "+inv.DueDate.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(doc.Client))
	if doc.Order != nil {
		m.AddRows(noteRow("Orden de alquiler: " + doc.Order.OrderNumber))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(doc.Lines) > 0 {
		m.AddRows(rateTableHeader())
		m.AddRows(g.rateTableRows(doc.Lines, doc.Currency)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}
	m.AddRows(g.totalsRow(
		[2]string{"Subtotal:", g.money(doc.Currency, inv.Subtotal)},
		[2]string{"Impuesto (" + percent(inv.TaxRate) + "):", g.money(doc.Currency, inv.TaxAmount)},
		[2]string{"Total:", g.money(doc.Currency, inv.TotalAmount)},
		[2]string{"Pagado:", g.money(doc.Currency, inv.AmountPaid)},
		[2]string{"SALDO:", g.money(doc.Currency, inv.BalanceDue)},
	))
	if inv.Notes != "" {
		m.AddRows(noteRow(inv.Notes))
	}
	return render(m)
}

// DeliveryNotePDF nota de entrega con casillas de firma.
func (g *MarotoPDFGenerator) DeliveryNotePDF(_ context.Context, doc ports.DeliveryNoteDocument) ([]byte, error) {
	n, d := doc.Note, doc.Delivery
	m := g.newDocument("Nota de entrega " + n.NoteNumber)

	kind := "NOTA DE ENTREGA"
	if d.Type == entity.DeliveryTypeReturn {
		kind = "NOTA DE DEVOLUCIÓN"
	}
	m.AddRows(g.headerRow(kind, n.NoteNumber, "Entrega: "+d.DeliveryNumber))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(doc.Client))
	m.AddRows(noteRow(fmt.Sprintf("Orden %s   |   Dirección: %s   |   Conductor: %s (%s)   |   Camión: %s",
		doc.Order.OrderNumber, nonEmpty(d.DeliveryAddress, "-"), nonEmpty(d.DriverName, "-"),
		nonEmpty(d.DriverPhone, "-"), nonEmpty(d.TruckRegistration, "-"))))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(quantityTableHeader())
	for _, l := range doc.Lines {
		m.AddRows(row.New(7).Add(
			col.New(2).Add(text.New(l.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.Condition, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}

	m.AddRows(line.NewRow(6))
	m.AddRows(signatureRow(
		signature{"Conductor", n.SignedByDriver},
		signature{"Andamiero", n.SignedByScaffolder},
		signature{"Seguridad", n.SignedBySecurity},
		signature{"Cliente", n.SignedByClient},
	))
	if n.Notes != "" {
		m.AddRows(noteRow(n.Notes))
	}
	return render(m)
}

func (g *MarotoPDFGenerator) headerRow(kind, number, subtitle string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New(kind, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New(subtitle, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func clientRow(c *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.Name+" ("+c.ClientNumber+")", props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(clientLine(c), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// clientLine datos de contacto bajo el nombre del cliente.
func clientLine(c *entity.Client) string {
	return fmt.Sprintf("N° fiscal: %s   |   Contacto: %s   |   Email: %s   |   Tel: %s",
		nonEmpty(c.TaxNumber, "-"),
		nonEmpty(c.ContactPerson, "-"),
		nonEmpty(c.Email, "-"),
		nonEmpty(c.Phone, "-"),
	)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
	}))
}

func rateTableHeader() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell("Código", 2, align.Left),
		headerCell("Material", 4, align.Left),
		headerCell("Cant.", 1, align.Center),
		headerCell("Tarifa/día", 2, align.Right),
		headerCell("Días", 1, align.Center),
		headerCell("Total", 2, align.Right),
	)
}

func quantityTableHeader() core.Row {
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell("Código", 2, align.Left),
		headerCell("Material", 6, align.Left),
		headerCell("Cantidad", 2, align.Center),
		headerCell("Estado", 2, align.Center),
	)
}

func (g *MarotoPDFGenerator) rateTableRows(lines []ports.MaterialLine, currency string) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(l.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.moneyString(currency, l.DailyRate), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.DurationDays), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.moneyString(currency, l.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// totalsRow la última pareja va resaltada.
func (g *MarotoPDFGenerator) totalsRow(pairs ...[2]string) core.Row {
	labels := col.New(3)
	values := col.New(3)
	for i, p := range pairs {
		top := float64(i) * 5
		style := props.Text{Size: 9, Align: align.Right, Right: 2, Top: top, Style: fontstyle.Bold}
		value := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if i == len(pairs)-1 {
			style.Color, style.Size = colorPrimary, 10
			value.Color, value.Size, value.Style = colorPrimary, 10, fontstyle.Bold
		}
		labels.Add(text.New(p[0], style))
		values.Add(text.New(p[1], value))
	}
	return row.New(float64(len(pairs))*5+4).Add(col.New(6), labels, values)
}

type signature struct {
	role   string
	signed bool
}

func signatureRow(sigs ...signature) core.Row {
	cols := make([]core.Col, 0, len(sigs))
	for _, s := range sigs {
		mark := "Pendiente"
		if s.signed {
			mark = "Firmado"
		}
		cols = append(cols, col.New(12/len(sigs)).Add(
			text.New("______________________", props.Text{Size: 8, Align: align.Center, Top: 4}),
			text.New(s.role, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 9}),
			text.New(mark, props.Text{Size: 7, Align: align.Center, Top: 13, Color: colorGray}),
		))
	}
	return row.New(20).Add(cols...)
}

func noteRow(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Size: 8, Color: colorGray, Top: 2}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money agrupa miles con el formato en-US: "USD 15,000.00".
func (g *MarotoPDFGenerator) money(currency string, d decimal.Decimal) string {
	return g.printer.Sprintf("%s %.2f", currency, d.Round(2).InexactFloat64())
}

// moneyString los montos de ports.MaterialLine ya vienen como texto con dos decimales.
func (g *MarotoPDFGenerator) moneyString(currency, s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return g.money(currency, d)
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}
