package loigen

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/klauspost/compress/zip"
)

// docxEncoder abstracts OOXML serialization to enable testing without
// the document writer.
type docxEncoder interface {
	Encode(letter Letter) ([]byte, error)
}

// Compile-time interface check.
var _ docxEncoder = (*goDocxEncoder)(nil)

// underlineSingle is the OOXML underline style applied to underlined runs.
const underlineSingle = "single"

// indentTabTwips is the width one leading tab stands in for when
// translating paragraph indent to the writer.
const indentTabTwips = 720

// goDocxEncoder serializes a Letter with the go-docx writer and stamps
// title/author into the package core properties.
type goDocxEncoder struct{}

// Encode renders the letter paragraphs in order and returns the DOCX
// bytes. The block vocabulary is closed, so a failure here indicates a
// writer-level problem, wrapped as ErrDocxEncode.
func (goDocxEncoder) Encode(letter Letter) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	for _, p := range letter.Paragraphs {
		para := w.AddParagraph()
		if p.Align != AlignDefault {
			para.Justification(p.Align)
		}

		// The writer has no paragraph indent knob, so indent is
		// translated to leading tabs.
		if p.Indent > 0 && len(p.Runs) > 0 {
			lead := para.AddText("")
			for i := 0; i < tabsForIndent(p.Indent); i++ {
				lead.AddTab()
			}
		}

		for _, r := range p.Runs {
			run := para.AddText(r.Text)
			if r.Bold {
				run.Bold()
			}
			if r.Italic {
				run.Italic()
			}
			if r.Underline {
				run.Underline(underlineSingle)
			}
			if r.Size > 0 {
				// OOXML sizes are half-points.
				run.Size(strconv.Itoa(r.Size * 2))
			}
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxEncode, err)
	}

	return stampCoreProperties(buf.Bytes(), letter.Title, letter.Author)
}

// tabsForIndent converts a twip indent to a leading tab count.
func tabsForIndent(twips int) int {
	n := twips / indentTabTwips
	if n < 1 {
		n = 1
	}
	return n
}

// corePropsName is the OPC part holding document title and author.
const corePropsName = "docProps/core.xml"

// stampCoreProperties rewrites the docx container, replacing
// docProps/core.xml with one carrying the given title and creator.
// The writer packs a fixed template core part, so the relationship and
// content-type entries are already present; if the part is missing it
// is added defensively.
func stampCoreProperties(archive []byte, title, author string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading docx container: %v", ErrDocxEncode, err)
	}

	core := []byte(corePropertiesXML(title, author))

	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	replaced := false
	for _, f := range zr.File {
		if f.Name == corePropsName {
			if err := writePart(zw, f.Name, core); err != nil {
				return nil, err
			}
			replaced = true
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: reading part %s: %v", ErrDocxEncode, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading part %s: %v", ErrDocxEncode, f.Name, err)
		}
		if err := writePart(zw, f.Name, data); err != nil {
			return nil, err
		}
	}

	if !replaced {
		if err := writePart(zw, corePropsName, core); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalizing docx container: %v", ErrDocxEncode, err)
	}
	return out.Bytes(), nil
}

// writePart adds one named part to the container.
func writePart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("%w: writing part %s: %v", ErrDocxEncode, name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: writing part %s: %v", ErrDocxEncode, name, err)
	}
	return nil
}

// corePropertiesXML builds the Dublin Core properties part.
func corePropertiesXML(title, author string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + xmlEscape(title) + `</dc:title>` +
		`<dc:creator>` + xmlEscape(author) + `</dc:creator>` +
		`<cp:lastModifiedBy>` + xmlEscape(author) + `</cp:lastModifiedBy>` +
		`</cp:coreProperties>`
}

// xmlEscape escapes character data for inclusion in an XML element.
func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
