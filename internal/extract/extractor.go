// Package extract scrapes contact details out of free-form ticket content.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-bridge/internal/domain"
)

const previewLength = 500

// Helpdesk HTML bodies often carry non-breaking spaces, so every whitespace
// class below also matches U+00A0.
var (
	firstNamePattern = regexp.MustCompile(`(?i)First[\s\x{00A0}]+Name[:\s\x{00A0}]+([^\s\x{00A0}<]+)`)
	lastNamePattern  = regexp.MustCompile(`(?i)Last[\s\x{00A0}]+Name[:\s\x{00A0}]+([^\s\x{00A0}<]+)`)
	emailPattern     = regexp.MustCompile(`(?i)(?:Company[\s\x{00A0}]+Email|Email)[:\s\x{00A0}]+([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	phonePattern     = regexp.MustCompile(`(?i)Phone[:\s\x{00A0}]+([\d\-+()\s\x{00A0}]+)`)
	anyEmailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// Extractor turns ticket HTML into a ContactInfo. It holds no per-call state
// and is safe for concurrent use.
type Extractor struct {
	excludedDomains []string
	logger          *zap.Logger
	textPolicy      *bluemonday.Policy
}

// NewExtractor builds an extractor that ignores addresses containing any of
// excludedDomains when falling back to a free scan of the content.
func NewExtractor(excludedDomains []string, logger *zap.Logger) *Extractor {
	lowered := make([]string, 0, len(excludedDomains))
	for _, d := range excludedDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			lowered = append(lowered, d)
		}
	}
	return &Extractor{
		excludedDomains: lowered,
		logger:          logger,
		textPolicy:      bluemonday.StrictPolicy(),
	}
}

// Extract applies the extraction layers in order: table rows, label regexes,
// free email scan, highlighted elements. It never fails; whatever could not
// be found stays empty.
func (e *Extractor) Extract(content string) domain.ContactInfo {
	var info domain.ContactInfo

	if ce := e.logger.Check(zap.DebugLevel, "extracting contact info"); ce != nil {
		ce.Write(zap.String("preview", e.preview(content)))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		e.logger.Warn("ticket content is not parseable html", zap.Error(err))
	}

	if doc != nil {
		e.fromTables(doc, &info)
	}
	e.fromLabels(content, &info)
	if info.Email == "" {
		info.Email = e.firstForeignEmail(content)
	}
	if doc != nil {
		e.fromHighlights(doc, &info)
	}

	e.logger.Debug("extracted contact info",
		zap.String("first_name", info.FirstName),
		zap.String("last_name", info.LastName),
		zap.String("email", info.Email),
		zap.String("phone", info.Phone))
	return info
}

func (e *Extractor) fromTables(doc *goquery.Document, info *domain.ContactInfo) {
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())

		switch label {
		case "First Name":
			info.FirstName = value
		case "Last Name":
			info.LastName = value
		case "Company Email":
			info.Email = value
		case "Phone":
			info.Phone = value
		}
	})
}

func (e *Extractor) fromLabels(content string, info *domain.ContactInfo) {
	if m := firstNamePattern.FindStringSubmatch(content); m != nil {
		info.FirstName = strings.TrimSpace(m[1])
	}
	if m := lastNamePattern.FindStringSubmatch(content); m != nil {
		info.LastName = strings.TrimSpace(m[1])
	}
	if m := emailPattern.FindStringSubmatch(content); m != nil {
		info.Email = strings.TrimSpace(m[1])
	}
	if m := phonePattern.FindStringSubmatch(content); m != nil {
		info.Phone = strings.TrimSpace(m[1])
	}
}

func (e *Extractor) firstForeignEmail(content string) string {
	for _, candidate := range anyEmailPattern.FindAllString(content, -1) {
		if e.isSystemAddress(candidate) {
			continue
		}
		return candidate
	}
	return ""
}

func (e *Extractor) isSystemAddress(email string) bool {
	lower := strings.ToLower(email)
	if strings.Contains(lower, "noreply") {
		return true
	}
	for _, d := range e.excludedDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

func (e *Extractor) fromHighlights(doc *goquery.Document, info *domain.ContactInfo) {
	doc.Find(`[style*="background"], .highlight`).Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if info.Email == "" && strings.Contains(text, "@") {
			info.Email = text
		}
	})
}

func (e *Extractor) preview(content string) string {
	text := strings.Join(strings.Fields(e.textPolicy.Sanitize(content)), " ")
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLength])
}
