package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// shortParagraphLimit marks short standalone paragraphs as headings,
// mirroring how policy documents typically format section titles
// without explicit heading styles.
const shortParagraphLimit = 100

// DOCX extracts text from Word document bytes by parsing
// word/document.xml out of the ZIP container. Headings are rendered as
// "=== text ===" markers and tables as delimited rows so that document
// structure survives into the prompt. Returns an empty string when the
// document cannot be read or carries no text.
func DOCX(data []byte) string {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var doc *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return ""
	}

	rc, err := doc.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()

	return cleanText(parseDocumentXML(xml.NewDecoder(rc)))
}

func parseDocumentXML(decoder *xml.Decoder) string {
	var (
		content        []string
		paragraph      strings.Builder
		paragraphStyle string
		inParagraph    bool

		tableNum  int
		tableRow  []string
		cell      strings.Builder
		rowNum    int
		inTable   bool
		inCell    bool
	)

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				inTable = true
				rowNum = 0
				tableNum++
				content = append(content, fmt.Sprintf("--- TABLE %d ---", tableNum))
			case "tr":
				tableRow = nil
			case "tc":
				inCell = true
				cell.Reset()
			case "p":
				if !inTable {
					inParagraph = true
					paragraph.Reset()
					paragraphStyle = ""
				}
			case "pStyle":
				if inParagraph {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							paragraphStyle = attr.Value
						}
					}
				}
			}

		case xml.CharData:
			if inCell {
				cell.Write(t)
			} else if inParagraph {
				paragraph.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				inTable = false
			case "tr":
				if inTable {
					if row := renderTableRow(tableRow, rowNum); row != "" {
						content = append(content, row)
						rowNum++
					}
				}
			case "tc":
				inCell = false
				if text := strings.TrimSpace(cell.String()); text != "" {
					tableRow = append(tableRow, text)
				}
			case "p":
				if inParagraph {
					inParagraph = false
					if text := strings.TrimSpace(paragraph.String()); text != "" {
						content = append(content, renderParagraph(text, paragraphStyle))
					}
				}
			}
		}
	}

	return strings.Join(content, "\n")
}

func renderParagraph(text, style string) string {
	if headingLevel(style) > 0 || len(text) < shortParagraphLimit {
		return "=== " + text + " ==="
	}
	return text
}

func renderTableRow(cells []string, rowNum int) string {
	if len(cells) == 0 {
		return ""
	}
	row := strings.Join(cells, " | ")
	if rowNum == 0 {
		return "HEADERS: " + row
	}
	return row
}

// headingLevel extracts the heading level from a paragraph style name,
// e.g. "Heading1" or "Title". Returns 0 for body styles.
func headingLevel(style string) int {
	lower := strings.ToLower(style)

	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}

	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}
