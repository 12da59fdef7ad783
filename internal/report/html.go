package report

import (
	"fmt"
	"io"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"sqlcoach/internal/domain"
)

const reportCSS = `
body { font-family: -apple-system, system-ui, sans-serif; margin: 2rem auto; max-width: 56rem; color: #1f2328; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem 0.75rem; border-bottom: 1px solid #d1d9e0; }
td.status { font-weight: 600; text-transform: uppercase; }
tr.pass td.status { color: #1a7f37; }
tr.fail td.status, tr.error td.status { color: #d1242f; }
tr.skip td.status { color: #9a6700; }
p.summary { color: #59636e; }
`

// WriteHTML renders the report as a standalone HTML page.
func WriteHTML(out io.Writer, rep *domain.Report) error {
	s := rep.Summarize()

	rows := make([]Node, 0, len(rep.Results))
	for _, res := range rep.Results {
		rows = append(rows, Tr(
			Class(string(res.Status)),
			Td(Class("status"), Text(string(res.Status))),
			Td(Text(res.Exercise)),
			Td(Text(string(res.Category))),
			Td(Text(res.Message)),
		))
	}

	page := HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			TitleEl(Text("sqlcoach report")),
			StyleEl(Raw(reportCSS)),
		),
		Body(
			H1(Text("sqlcoach report")),
			P(Class("summary"), Text(fmt.Sprintf(
				"engine %s: %d exercises, %d passed, %d failed, %d errors, %d skipped",
				rep.Engine, s.Total, s.Pass, s.Fail, s.Error, s.Skip))),
			Table(
				THead(Tr(
					Th(Text("Status")),
					Th(Text("Exercise")),
					Th(Text("Category")),
					Th(Text("Detail")),
				)),
				TBody(Group(rows)),
			),
		),
	)

	if _, err := io.WriteString(out, "<!doctype html>\n"); err != nil {
		return err
	}
	return page.Render(out)
}
