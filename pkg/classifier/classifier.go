package classifier

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Action is a recommended corrective action for a knowledge-base document.
type Action string

const (
	ActionMarkObsolete Action = "mark_obsolete"
	ActionDelete       Action = "delete"
	ActionFixCompany   Action = "fix_company"
	ActionFixProduct   Action = "fix_product"
)

// Document holds the stored KB metadata for a single document. The text body
// is fetched separately and passed to Classify alongside the metadata.
type Document struct {
	ID          string
	Title       string
	CompanyCode string
	ProductCode string
	IsApproved  bool
	IsObsolete  bool
}

// Result is the outcome of classifying one document. Document fields are
// copied through; Actions and Issues are appended in rule order, one issue
// per triggered rule.
type Result struct {
	ID          string
	Title       string
	CompanyCode string
	ProductCode string
	IsApproved  bool
	IsObsolete  bool
	Actions     []Action
	Issues      []string
}

// HasAction reports whether the result recommends the given action.
func (r Result) HasAction(a Action) bool {
	for _, act := range r.Actions {
		if act == a {
			return true
		}
	}
	return false
}

func (r *Result) add(a Action, issue string) {
	r.Actions = append(r.Actions, a)
	r.Issues = append(r.Issues, issue)
}

// Content shorter than this (in runes) with no insurance-domain keyword is
// considered noise and recommended for deletion.
const minRelevantContentLength = 100

// Classify evaluates one document against the four maintenance rules:
// obsolescence markers, irrelevant/internal content, company mismatch and
// product mismatch. The rules are independent; a document can collect
// several actions in one pass. Classify is pure and deterministic: all
// keyword tables are immutable package data, so it is safe to call
// concurrently for different documents.
func Classify(doc Document, content string) Result {
	res := Result{
		ID:          doc.ID,
		Title:       doc.Title,
		CompanyCode: doc.CompanyCode,
		ProductCode: doc.ProductCode,
		IsApproved:  doc.IsApproved,
		IsObsolete:  doc.IsObsolete,
	}

	lowerContent := strings.ToLower(content)
	lowerTitle := strings.ToLower(doc.Title)

	// Rule 1: text claims the document is outdated but the flag is not set.
	if !doc.IsObsolete &&
		(containsAny(lowerContent, obsolescenceMarkers) || containsAny(lowerTitle, obsolescenceMarkers)) {
		res.add(ActionMarkObsolete, "contains obsolescence keywords")
	}

	// Rule 2: internal/temporary documents, or short texts with no insurance
	// vocabulary at all, have no business being in the chatbot KB.
	internal := containsAny(lowerContent, internalDocMarkers) || containsAny(lowerTitle, internalDocMarkers)
	irrelevant := !containsAny(lowerContent, insuranceMarkers) &&
		utf8.RuneCountInString(content) < minRelevantContentLength
	if internal || irrelevant {
		res.add(ActionDelete, "not relevant to an insurance service")
	}

	// Rules 3 and 4: the text mentions another insurer/product line by name.
	// First match in table order wins; at most one suggestion each.
	if suspect, ok := detectMismatch(lowerContent, doc.CompanyCode, companyKeywords); ok {
		res.add(ActionFixCompany, fmt.Sprintf("wrong company: %s -> %s", doc.CompanyCode, suspect))
	}
	if suspect, ok := detectMismatch(lowerContent, doc.ProductCode, productKeywords); ok {
		res.add(ActionFixProduct, fmt.Sprintf("wrong product: %s -> %s", doc.ProductCode, suspect))
	}

	return res
}

func containsAny(lowerText string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lowerText, m) {
			return true
		}
	}
	return false
}

// detectMismatch scans the table in declaration order, skipping the
// document's current code, and returns the first code whose name variants
// appear in the content. An unknown current code is not an error: it simply
// never matches as "current" and a replacement from the known set may still
// be suggested.
func detectMismatch(lowerContent, currentCode string, table []codeKeywords) (string, bool) {
	for _, entry := range table {
		if entry.Code == currentCode {
			continue
		}
		for _, kw := range entry.Keywords {
			if strings.Contains(lowerContent, kw) {
				return entry.Code, true
			}
		}
	}
	return "", false
}
