// Package pdfextract pulls text and metadata out of research paper
// PDFs. It produces the same record shape as the BibTeX parser, so
// downstream consumers never care which path a paper arrived through.
package pdfextract

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ndowell/bibgest/internal/paper"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// minUsableText is the smallest extraction considered meaningful;
// scanned-image PDFs yield little or no text.
const minUsableText = 100

// maxAbstractLen caps the abstract taken from body text when no
// explicit abstract section is found.
const maxAbstractLen = 1500

// ExtractText extracts text from the first maxPages pages of a PDF.
// maxPages <= 0 means all pages.
func ExtractText(r io.ReaderAt, size int64, maxPages int) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	if maxPages <= 0 || maxPages > pdfReader.NumPage() {
		maxPages = pdfReader.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// BuildPaper extracts a Paper-shaped record from a PDF stream. The key
// is supplied by the caller (usually derived from the file name). At
// minimum the result has a title and an abstract; extraction fails only
// when the PDF yields no usable text at all.
func BuildPaper(key string, r io.ReaderAt, size int64, maxPages int) (*paper.Paper, error) {
	text, err := ExtractText(r, size, maxPages)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(text)) < minUsableText {
		return nil, fmt.Errorf("pdf yields no usable text (%d chars)", len(strings.TrimSpace(text)))
	}

	title := TitleFromText(text)
	if title == "" {
		title = key
	}

	return &paper.Paper{
		Key:       key,
		EntryType: "misc",
		Title:     title,
		Abstract:  AbstractFromText(text),
		DOI:       FindDOI(text),
	}, nil
}

// TitleFromText returns the first substantial line of extracted text,
// skipping obvious header and footer lines.
func TitleFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

var abstractHeadRe = regexp.MustCompile(`(?i)\babstract\b[.:\s]*`)
var abstractEndRe = regexp.MustCompile(`(?i)\b(1\.?\s+introduction|introduction|keywords)\b`)

// AbstractFromText finds the abstract section of extracted text. When
// an "Abstract" heading exists, the text between it and the
// introduction or keywords heading is used; otherwise the leading body
// text serves as a stand-in, truncated to a sane length.
func AbstractFromText(text string) string {
	body := text
	if loc := abstractHeadRe.FindStringIndex(text); loc != nil {
		body = text[loc[1]:]
		if end := abstractEndRe.FindStringIndex(body); end != nil {
			body = body[:end[0]]
		}
	}

	body = collapseSpaces(body)
	if len(body) > maxAbstractLen {
		cut := strings.LastIndex(body[:maxAbstractLen], " ")
		if cut <= 0 {
			cut = maxAbstractLen
		}
		body = body[:cut]
	}
	return strings.TrimSpace(body)
}

// FindDOI finds the first valid DOI in text, or "".
func FindDOI(text string) string {
	matches := doiPattern.FindAllString(text, -1)
	for _, match := range matches {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	if slashIdx == -1 || slashIdx >= len(doi)-1 {
		return false
	}
	return true
}

// isHeaderLine checks if a line is likely a journal header or footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "journal") {
		return true
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	if strings.Contains(lower, "copyright") {
		return true
	}
	if strings.Contains(lower, "article") && strings.Contains(lower, "published") {
		return true
	}
	return false
}

// collapseSpaces folds whitespace runs into single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
