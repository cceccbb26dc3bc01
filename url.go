package htmlsafe

import (
	"net/url"
	"strings"
)

// urlAttrs are attributes whose value is fetched or followed by a browser.
// They are checked against the policy's protocols even when the policy
// configured none for them, in which case only relative references pass.
var urlAttrs = map[string]bool{
	"action":     true,
	"background": true,
	"cite":       true,
	"classid":    true,
	"codebase":   true,
	"data":       true,
	"formaction": true,
	"href":       true,
	"icon":       true,
	"longdesc":   true,
	"manifest":   true,
	"poster":     true,
	"profile":    true,
	"src":        true,
	"usemap":     true,
	"xlink:href": true,
}

func isURLAttr(name string) bool {
	return urlAttrs[name]
}

// normalizeURL trims an attribute value and strips the control characters
// browsers ignore inside URLs, so "java\tscript:" is seen as "javascript:".
// Entities were already decoded by the parser.
func normalizeURL(raw string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}

func parseURL(s string) (*url.URL, bool) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}
	return u, true
}
