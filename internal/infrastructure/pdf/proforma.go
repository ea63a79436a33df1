package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"boaz/internal/domain/catalog"
	"boaz/internal/domain/subscription"
)

// GenerateProforma renders the proforma invoice listing the selected
// services and their prices, and returns the path of the written PDF.
func (g *Generator) GenerateProforma(
	sub *subscription.Subscription,
	services []catalog.Service,
	org *catalog.Organisation,
) (string, error) {
	m := g.newDocument()

	g.addHeader(m, org, "FACTURE PROFORMA")

	tenant := sub.Tenant()
	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("Référence : %s", sub.Reference()),
		props.Text{Size: 10, Style: fontstyle.Bold}))
	m.AddRow(6, text.NewCol(12,
		fmt.Sprintf("Client : %s %s — %s", tenant.FirstName, tenant.LastName, tenant.Email),
		props.Text{Size: 10}))
	m.AddRow(6, col.New(12))

	g.addServiceTable(m, services)

	g.addFooter(m, org)

	path := filepath.Join(g.outputDir, fmt.Sprintf("proforma_%s.pdf", sub.Reference()))
	if err := g.save(m, path); err != nil {
		return "", err
	}

	g.logger.Infow("proforma generated", "reference", sub.Reference(), "path", path)
	return path, nil
}

func (g *Generator) addServiceTable(m core.Maroto, services []catalog.Service) {
	m.AddRow(8,
		text.NewCol(8, "Service", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, "Validité", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Prix", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	var total float64
	for _, svc := range services {
		total += svc.Price
		m.AddRow(7,
			text.NewCol(8, svc.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d j", svc.ValidityDays), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%.2f EUR", svc.Price), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(9,
		text.NewCol(10, "Total", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, fmt.Sprintf("%.2f EUR", total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
}
