package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// ExtractDOCXText returns the paragraph text of a .docx document.
// Paragraphs become lines and tabs become spaces.
func ExtractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("docx archive has no %s", docxBodyPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", docxBodyPart, err)
	}
	defer func() { _ = rc.Close() }()

	return paragraphText(rc)
}

// paragraphText walks WordprocessingML tokens, collecting w:t runs.
func paragraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", docxBodyPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString(" ")
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
