package ocr

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/reflow/model"
)

// WriteHOCR writes the words of every page as an hOCR document: one
// ocr_page div per page, one ocr_line span per line and one ocrx_word span
// per word, with bounding boxes in page pixels.
func WriteHOCR(w io.Writer, doc *model.Document) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlNode := element(atom.Html, "")
	root.AppendChild(htmlNode)

	head := element(atom.Head, "")
	title := element(atom.Title, "")
	title.AppendChild(&html.Node{Type: html.TextNode, Data: doc.Metadata.Title})
	head.AppendChild(title)
	head.AppendChild(meta("http-equiv", "Content-Type", "text/html;charset=utf-8"))
	head.AppendChild(meta("name", "ocr-system", "reflow"))
	head.AppendChild(meta("name", "ocr-capabilities", "ocr_page ocr_line ocrx_word"))
	htmlNode.AppendChild(head)

	body := element(atom.Body, "")
	htmlNode.AppendChild(body)

	for _, page := range doc.Pages {
		body.AppendChild(hocrPage(page))
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("failed to write hOCR: %w", err)
	}
	return nil
}

func hocrPage(page *model.Page) *html.Node {
	div := element(atom.Div, "ocr_page")
	setAttr(div, "id", fmt.Sprintf("page_%d", page.Number))
	setAttr(div, "title", fmt.Sprintf("bbox 0 0 %d %d; ppageno %d; scan_res %d %d",
		page.Width(), page.Height(), page.Number-1, page.DPI, page.DPI))

	for i, line := range page.Lines() {
		box := line[0].BBox
		for _, word := range line[1:] {
			box = box.Union(word.BBox)
		}
		span := element(atom.Span, "ocr_line")
		setAttr(span, "id", fmt.Sprintf("line_%d_%d", page.Number, i+1))
		setAttr(span, "title", fmt.Sprintf("%s; baseline 0 %d", bboxTitle(box),
			int(math.Round(line[0].Baseline-box.Bottom()))))

		for j, word := range line {
			ws := element(atom.Span, "ocrx_word")
			setAttr(ws, "id", fmt.Sprintf("word_%d_%d_%d", page.Number, i+1, j+1))
			setAttr(ws, "title", bboxTitle(word.BBox))
			ws.AppendChild(&html.Node{Type: html.TextNode, Data: word.Text})
			span.AppendChild(ws)
			if j < len(line)-1 {
				span.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
			}
		}
		div.AppendChild(span)
	}
	return div
}

func bboxTitle(b model.BBox) string {
	return fmt.Sprintf("bbox %d %d %d %d",
		int(math.Round(b.Left())), int(math.Round(b.Top())),
		int(math.Round(b.Right())), int(math.Round(b.Bottom())))
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		setAttr(n, "class", class)
	}
	return n
}

func meta(key, name, content string) *html.Node {
	n := element(atom.Meta, "")
	setAttr(n, key, name)
	setAttr(n, "content", content)
	return n
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
