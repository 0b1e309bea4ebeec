package patch

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
)

const indentUnit = "    "

// Attr is an XML attribute. AppendChild writes attributes in slice order.
type Attr struct {
	Key   string
	Value string
}

// UpdateXML parses the document at path, passes it to edit and writes it
// back. Whitespace between elements is kept as read, so only the nodes edit
// adds change the layout. Nothing is written when edit fails. A document
// without a root element is an anchor error.
func UpdateXML(path string, edit func(doc *etree.Document) error) error {
	doc, err := readXML(path)
	if err != nil {
		return err
	}
	if doc.Root() == nil {
		return clierr.AnchorNotFound(path, "a root element")
	}

	if err := edit(doc); err != nil {
		return err
	}

	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// HasElement reports whether the document at path contains an element
// matching the etree path expression.
func HasElement(path, xpath string) (bool, error) {
	doc, err := readXML(path)
	if err != nil {
		return false, err
	}
	return doc.FindElement(xpath) != nil, nil
}

// HasElementWithAttr reports whether the document at path contains a <tag>
// element whose attribute key equals value. Unlike HasElement it needs no
// quoting of value.
func HasElementWithAttr(path, tag, key, value string) (bool, error) {
	doc, err := readXML(path)
	if err != nil {
		return false, err
	}
	for _, el := range doc.FindElements("//" + tag) {
		if el.SelectAttrValue(key, "") == value {
			return true, nil
		}
	}
	return false, nil
}

// AppendChild adds a <tag> element with attrs after the last child element
// of parent, indented like its siblings.
func AppendChild(parent *etree.Element, tag string, attrs ...Attr) *etree.Element {
	el := etree.NewElement(tag)
	for _, a := range attrs {
		el.CreateAttr(a.Key, a.Value)
	}
	appendIndented(parent, el)
	return el
}

// FindOrCreate returns the first <tag> child of parent, appending one when
// there is none.
func FindOrCreate(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}
	el := etree.NewElement(tag)
	appendIndented(parent, el)
	return el
}

// appendIndented inserts el after the last child element of parent, copying
// the whitespace that precedes that sibling. The text before the closing tag
// of parent stays where it is. A parent without child elements gets one
// level deeper than its own indentation.
func appendIndented(parent, el *etree.Element) {
	if children := parent.ChildElements(); len(children) > 0 {
		last := children[len(children)-1]
		at := last.Index() + 1
		parent.InsertChildAt(at, etree.NewText(leadingSpace(last)))
		parent.InsertChildAt(at+1, el)
		return
	}

	outer := leadingSpace(parent)
	if n := len(parent.Child); n > 0 && isBlank(parent.Child[n-1]) {
		parent.RemoveChildAt(n - 1)
	}
	parent.AddChild(etree.NewText(outer + childIndent(outer)))
	parent.AddChild(el)
	parent.AddChild(etree.NewText(outer))
}

// leadingSpace returns the newline and indentation written before el, or a
// bare newline when el does not start its own line.
func leadingSpace(el *etree.Element) string {
	p, i := el.Parent(), el.Index()
	if p == nil || i <= 0 || !isBlank(p.Child[i-1]) {
		return "\n"
	}
	data := p.Child[i-1].(*etree.CharData).Data
	nl := strings.LastIndex(data, "\n")
	if nl < 0 {
		return "\n"
	}
	return data[nl:]
}

// childIndent picks the indentation step from outer: a tab when the file
// indents with tabs.
func childIndent(outer string) string {
	if strings.Contains(outer, "\t") {
		return "\t"
	}
	return indentUnit
}

func isBlank(t etree.Token) bool {
	cd, ok := t.(*etree.CharData)
	return ok && strings.TrimSpace(cd.Data) == ""
}

func readXML(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
