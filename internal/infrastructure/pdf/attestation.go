// Package pdf renders the housing attestation and proforma invoice
// documents delivered to tenants.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"boaz/internal/domain/catalog"
	"boaz/internal/domain/housing"
	"boaz/internal/domain/subscription"
	"boaz/internal/shared/biztime"
	sharedConfig "boaz/internal/shared/config"
	"boaz/internal/shared/logger"
)

type Generator struct {
	outputDir string
	logger    logger.Interface
}

func NewGenerator(cfg *sharedConfig.DocumentConfig, log logger.Interface) (*Generator, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document output dir: %w", err)
	}
	return &Generator{outputDir: cfg.OutputDir, logger: log}, nil
}

// GenerateAttestation renders the housing attestation for a delivered
// subscription and returns the path of the written PDF.
func (g *Generator) GenerateAttestation(
	sub *subscription.Subscription,
	unit *housing.HousingUnit,
	org *catalog.Organisation,
) (string, error) {
	m := g.newDocument()

	g.addHeader(m, org, "ATTESTATION DE LOGEMENT")

	tenant := sub.Tenant()
	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("Référence : %s", sub.Reference()),
		props.Text{Size: 10, Style: fontstyle.Bold}))
	m.AddRow(4, col.New(12))

	orgName := "l'organisme émetteur"
	if org != nil {
		orgName = org.Name
	}
	body := fmt.Sprintf(
		"Nous soussignés, %s, attestons que %s %s, de nationalité %s, "+
			"est logé(e) à l'adresse suivante :",
		orgName, tenant.FirstName, tenant.LastName, tenant.Nationality)
	m.AddRow(16, text.NewCol(12, body, props.Text{Size: 10}))

	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("%s, %s %s, %s", unit.Address(), unit.PostalCode(), unit.City(), unit.Country()),
		props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(4, col.New(12))

	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("Loyer mensuel : %.2f EUR (dont charges : %.2f EUR)", unit.Total(), unit.Charges()),
		props.Text{Size: 10}))
	m.AddRow(8, text.NewCol(12,
		fmt.Sprintf("Durée de location : %d mois", sub.DurationMonths()),
		props.Text{Size: 10}))

	if sub.DeliveredAt() != nil {
		m.AddRow(8, text.NewCol(12,
			fmt.Sprintf("Délivrée le : %s", biztime.FormatDate(*sub.DeliveredAt())),
			props.Text{Size: 10}))
	}
	if sub.ExpiresAt() != nil {
		m.AddRow(8, text.NewCol(12,
			fmt.Sprintf("Valable jusqu'au : %s", biztime.FormatDate(*sub.ExpiresAt())),
			props.Text{Size: 10}))
	}

	g.addFooter(m, org)

	path := filepath.Join(g.outputDir, fmt.Sprintf("attestation_%s.pdf", sub.Reference()))
	if err := g.save(m, path); err != nil {
		return "", err
	}

	g.logger.Infow("attestation generated", "reference", sub.Reference(), "path", path)
	return path, nil
}

func (g *Generator) newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	return maroto.New(cfg)
}

func (g *Generator) addHeader(m core.Maroto, org *catalog.Organisation, title string) {
	if org != nil {
		m.AddRow(8, text.NewCol(12, org.Name,
			props.Text{Size: 12, Style: fontstyle.Bold}))
		m.AddRow(5, text.NewCol(12,
			fmt.Sprintf("%s, %s %s — %s", org.Address, org.PostalCode, org.City, org.Country),
			props.Text{Size: 8}))
	}
	m.AddRow(6, col.New(12))
	m.AddRow(12, text.NewCol(12, title,
		props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}))
	m.AddRow(4, line.NewCol(12))
	m.AddRow(6, col.New(12))
}

func (g *Generator) addFooter(m core.Maroto, org *catalog.Organisation) {
	m.AddRow(10, col.New(12))
	city := ""
	if org != nil {
		city = org.City
	}
	m.AddRow(6, text.NewCol(12,
		fmt.Sprintf("Fait à %s, le %s", city, biztime.FormatDate(biztime.NowUTC())),
		props.Text{Size: 10, Align: align.Right}))

	if org != nil && org.Representative != "" {
		m.AddRow(6, text.NewCol(12, org.Representative,
			props.Text{Size: 10, Align: align.Right, Style: fontstyle.Bold}))
	}
}

func (g *Generator) save(m core.Maroto, path string) error {
	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("failed to save PDF: %w", err)
	}
	return nil
}
