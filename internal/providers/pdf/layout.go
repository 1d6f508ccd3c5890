package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func titleRow(m core.Maroto, title string) {
	m.AddRow(14,
		text.NewCol(12, title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
}

// issuerCol is the company identity block printed on every document.
func (r *Renderer) issuerCol() core.Col {
	c := col.New(6).Add(
		text.New(r.company.Name, props.Text{Style: fontstyle.Bold}),
		text.New(r.company.Address, props.Text{Top: 5}),
	)
	top := 10.0
	if r.company.SIRET != "" {
		c.Add(text.New("SIRET : "+r.company.SIRET, props.Text{Top: top}))
		top += 4
	}
	if r.company.TVANumber != "" {
		c.Add(text.New("N° TVA : "+r.company.TVANumber, props.Text{Top: top}))
		top += 4
	}
	if r.company.Email != "" {
		c.Add(text.New(r.company.Email, props.Text{Top: top}))
	}
	return c
}

// partyCol is a labelled recipient block, e.g. the billed client or the
// tenant.
func partyCol(label string, lines ...string) core.Col {
	c := col.New(6).Add(
		text.New(label, props.Text{Style: fontstyle.Bold}),
	)
	top := 5.0
	for _, line := range lines {
		if line == "" {
			continue
		}
		c.Add(text.New(line, props.Text{Top: top}))
		top += 4
	}
	return c
}

func totalRow(m core.Maroto, label, amount string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(8,
		col.New(6),
		text.NewCol(3, label, props.Text{Size: 9, Style: style}),
		text.NewCol(3, amount, props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}
