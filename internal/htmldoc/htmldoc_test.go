package htmldoc

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const page = `<html><body>
<table id="outer">
<tr><td class="first"><a href="#" onclick="go()">link</a></td><td>two <b>bold</b></td></tr>
</table>
</body></html>`

func TestParse_ChildrenAndText(t *testing.T) {
	root, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rows := root.Find("tr")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	cells := rows[0].Children("td")
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}

	if cells[1].Text() != "two bold" {
		t.Errorf("unexpected text: %q", cells[1].Text())
	}

	class, ok := cells[0].Attr("class")
	if !ok || class != "first" {
		t.Errorf("expected class first, got %q (present=%v)", class, ok)
	}

	if _, ok := cells[0].Attr("missing"); ok {
		t.Error("missing attribute reported present")
	}
}

func TestParent_WalksToTable(t *testing.T) {
	root, err := ParseBytes([]byte(page))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	links := root.Find("a")
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}

	// a -> td -> tr -> tbody (inserted by the HTML5 parser)
	node := links[0].Parent().Parent().Parent()
	if node == nil {
		t.Fatal("expected an ancestor three levels up")
	}
	if got := len(node.Find("tr")); got != 1 {
		t.Errorf("expected ancestor to contain 1 row, got %d", got)
	}
	if table := node.Parent(); table == nil {
		t.Error("expected table above tbody")
	} else if id, _ := table.Attr("id"); id != "outer" {
		t.Errorf("expected outer table, got id %q", id)
	}
}

func TestParent_NilAtRoot(t *testing.T) {
	root, err := ParseBytes([]byte(page))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	html := root.Find("html")
	if len(html) != 1 {
		t.Fatalf("expected html element, got %d", len(html))
	}
	if html[0].Parent() != nil {
		t.Error("expected nil parent above html element")
	}
}

func TestWrap_FirstNodeOnly(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("NewDocumentFromReader failed: %v", err)
	}

	cell := Wrap(doc.Find("td"))
	if got := cell.Text(); got != "link" {
		t.Errorf("expected first cell text, got %q", got)
	}
	if class, _ := cell.Attr("class"); class != "first" {
		t.Errorf("expected class first, got %q", class)
	}
	if links := cell.Find("a"); len(links) != 1 {
		t.Errorf("expected 1 link under first cell, got %d", len(links))
	}
}
