package xmltree

import (
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0"?>
<article article-type="research-article">
  <front>
    <journal-meta>
      <journal-id journal-id-type="jstor">amerjsoci</journal-id>
    </journal-meta>
    <article-meta>
      <article-id pub-id-type="doi">10.2307/123</article-id>
      <article-id pub-id-type="jid">123</article-id>
      <title-group>
        <article-title>On <italic>Method</italic></article-title>
      </title-group>
    </article-meta>
  </front>
</article>`

func mustParse(t *testing.T, doc string) *Node {
	t.Helper()
	n, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return n
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty input", ""},
		{"unclosed element", "<article><front></article>"},
		{"bare text", "not xml at all"},
		{"truncated", "<article><front>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tt.doc)
			}
		})
	}
}

func TestFindFirst(t *testing.T) {
	root := mustParse(t, sampleDoc)

	n := root.FindFirst("front", "article-meta", "title-group", "article-title")
	if n == nil {
		t.Fatal("FindFirst() = nil, want article-title node")
	}
	if got := n.Text(); got != "On Method" {
		t.Errorf("Text() = %q, want %q", got, "On Method")
	}
}

func TestFindFirst_AbsentIsNil(t *testing.T) {
	root := mustParse(t, sampleDoc)

	if n := root.FindFirst("front", "article-meta", "abstract"); n != nil {
		t.Errorf("FindFirst(absent path) = %v, want nil", n)
	}
	// Lookup on a nil node stays nil rather than panicking
	var nilNode *Node
	if n := nilNode.FindFirst("anything"); n != nil {
		t.Errorf("FindFirst on nil node = %v, want nil", n)
	}
}

func TestFindFirst_FirstMatchWins(t *testing.T) {
	root := mustParse(t, sampleDoc)

	n := root.FindFirst("front", "article-meta", "article-id")
	if n == nil {
		t.Fatal("FindFirst() = nil")
	}
	if got := n.Text(); got != "10.2307/123" {
		t.Errorf("Text() = %q, want first article-id %q", got, "10.2307/123")
	}
}

func TestFindAll_DocumentOrder(t *testing.T) {
	root := mustParse(t, sampleDoc)

	nodes := root.FindAll("front", "article-meta", "article-id")
	if len(nodes) != 2 {
		t.Fatalf("FindAll() returned %d nodes, want 2", len(nodes))
	}
	if nodes[0].Text() != "10.2307/123" || nodes[1].Text() != "123" {
		t.Errorf("FindAll() order = [%q, %q], want document order", nodes[0].Text(), nodes[1].Text())
	}
}

func TestFindAll_AbsentIsEmpty(t *testing.T) {
	root := mustParse(t, sampleDoc)

	if nodes := root.FindAll("back", "ref-list"); nodes != nil {
		t.Errorf("FindAll(absent path) = %v, want nil", nodes)
	}
}

func TestText_MixedContent(t *testing.T) {
	root := mustParse(t, `<p>before <b>bold <i>nested</i></b> after</p>`)
	if got := root.Text(); got != "before bold nested after" {
		t.Errorf("Text() = %q, want interleaved order preserved", got)
	}
}

func TestText_NilIsEmpty(t *testing.T) {
	var n *Node
	if got := n.Text(); got != "" {
		t.Errorf("nil Text() = %q, want empty", got)
	}
}

func TestAttr(t *testing.T) {
	root := mustParse(t, sampleDoc)

	if got := root.Attr("article-type"); got != "research-article" {
		t.Errorf("Attr(article-type) = %q, want research-article", got)
	}
	if got := root.Attr("missing"); got != "" {
		t.Errorf("Attr(missing) = %q, want empty", got)
	}
}

func TestAttr_NamespacedLocalName(t *testing.T) {
	root := mustParse(t, `<article xml:lang="en"/>`)
	if got := root.Attr("lang"); got != "en" {
		t.Errorf("Attr(lang) = %q, want en", got)
	}
}

func TestParse_NamedEntities(t *testing.T) {
	root := mustParse(t, `<title>War &amp; Peace&mdash;Revisited</title>`)
	if got := root.Text(); !strings.Contains(got, "War & Peace") {
		t.Errorf("Text() = %q, want entity-resolved text", got)
	}
}
