package page

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/avasisht/gradelens/internal/domain/model"
)

// ParseTable extracts the first <table> in src into a snapshot of cell
// text, header row included. Cell text is whitespace-collapsed. A document
// with no table returns ErrNoTable; callers that poll treat that as an
// empty snapshot rather than a failure.
func ParseTable(src string) (model.TableSnapshot, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return model.TableSnapshot{}, fmt.Errorf("%w: %w", ErrNoTable, err)
	}

	table := findFirst(doc, "table")
	if table == nil {
		return model.TableSnapshot{}, ErrNoTable
	}

	var snapshot model.TableSnapshot
	walkRows(table, &snapshot)
	if snapshot.Empty() {
		return model.TableSnapshot{}, ErrNoTable
	}
	return snapshot, nil
}

// findFirst returns the first element named tag in depth-first order.
func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// walkRows collects <tr> rows under table, skipping nested tables.
func walkRows(n *html.Node, snapshot *model.TableSnapshot) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "tr":
				snapshot.Rows = append(snapshot.Rows, rowCells(c))
				continue
			case "table":
				continue
			}
		}
		walkRows(c, snapshot)
	}
}

// rowCells returns the collapsed text of each <td>/<th> in a row.
func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, collapseText(c))
		}
	}
	return cells
}

// collapseText concatenates the text content of n with runs of whitespace
// reduced to single spaces.
func collapseText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
