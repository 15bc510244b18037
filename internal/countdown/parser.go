package countdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	hoursLabel   = "HOURS"
	minutesLabel = "MINUTES"

	// maxHours keeps the offset well inside time.Duration.
	maxHours = 100000
)

var timeToClaimRe = regexp.MustCompile(`(?is)Time to Claim:.*?(\d+)\s*:\s*(\d+)`)

// StateOf reports whether the page content says the item is already claimed.
func StateOf(markup string) ClaimState {
	if strings.Contains(markup, ClaimedMarker) {
		return Claimed
	}
	return Unclaimed
}

// Parse extracts the countdown from raw page markup. The boolean is false
// when no countdown could be determined.
func Parse(markup string) (Result, bool) {
	if r, ok := parseMarkers(markup); ok {
		return r, true
	}
	if r, ok := parseText(markup); ok {
		return r, true
	}
	if StateOf(markup) == Claimed {
		return Result{Hours: FallbackHours, Source: SourceFallback}, true
	}
	return Result{}, false
}

// parseMarkers looks for <x>H</x><x>HOURS</x> and <x>M</x><x>MINUTES</x>.
func parseMarkers(markup string) (Result, bool) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return Result{}, false
	}
	doc := goquery.NewDocumentFromNode(root)

	hours, ok := labeledNumber(doc, hoursLabel)
	if !ok || hours > maxHours {
		return Result{}, false
	}
	minutes, ok := labeledNumber(doc, minutesLabel)
	if !ok || minutes > 59 {
		return Result{}, false
	}
	return Result{Hours: hours, Minutes: minutes, Source: SourceMarkers}, true
}

// labeledNumber returns the number held by the first leaf element that
// directly precedes a leaf element whose text is label.
func labeledNumber(doc *goquery.Document, label string) (value int, found bool) {
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() != 0 {
			return true
		}
		if !strings.EqualFold(strings.TrimSpace(s.Text()), label) {
			return true
		}
		prev := previousElement(s.Get(0))
		if prev == nil {
			return true
		}
		ps := goquery.NewDocumentFromNode(prev).Selection
		if ps.Children().Length() != 0 {
			return true
		}
		n, ok := digits(strings.TrimSpace(ps.Text()))
		if !ok {
			return true
		}
		value, found = n, true
		return false
	})
	return value, found
}

// previousElement skips whitespace text and comments; any other content
// between two elements means they are not adjacent.
func previousElement(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		switch p.Type {
		case html.ElementNode:
			return p
		case html.CommentNode:
			continue
		case html.TextNode:
			if strings.TrimSpace(p.Data) != "" {
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

func parseText(markup string) (Result, bool) {
	m := timeToClaimRe.FindStringSubmatch(markup)
	if m == nil {
		return Result{}, false
	}
	hours, ok := digits(m[1])
	if !ok || hours > maxHours {
		return Result{}, false
	}
	minutes, ok := digits(m[2])
	if !ok || minutes > 59 {
		return Result{}, false
	}
	return Result{Hours: hours, Minutes: minutes, Source: SourceText}, true
}

// digits parses a non-empty run of ASCII digits.
func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
