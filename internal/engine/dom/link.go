package dom

import (
	"net/url"
	"regexp"
)

// InertHref is the href given to links whose text is not a valid target.
const InertHref = "javascript:;"

var (
	emailPattern    = regexp.MustCompile(`(?i)^(([^<>()\[\].,;:\s@"]+(\.[^<>()\[\].,;:\s@"]+)*)|(".+"))@(([^<>()\[\].,;:\s@"]+\.)+[^<>()\[\].,;:\s@"]{2,})$`)
	protocolPattern = regexp.MustCompile(`^([a-zA-Z]+://)`)
)

// SyncLinkHref makes the href of every link match its visible text.
// n may be a link itself or contain links. E-mail addresses become mailto
// links, text without a protocol gets http://, and text that does not
// parse as a URL gets an inert href.
func SyncLinkHref(n *Node) {
	if n.Is(TagA) {
		n.SetAttr("href", LinkTarget(TextContent(n)))
		return
	}
	Walk(n, func(c *Node) {
		if c.Is(TagA) {
			c.SetAttr("href", LinkTarget(TextContent(c)))
		}
	})
}

// LinkTarget derives a safe href from link text.
func LinkTarget(content string) string {
	if emailPattern.MatchString(content) {
		return "mailto:" + content
	}
	target := content
	if !protocolPattern.MatchString(target) {
		target = "http://" + content
	}
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return InertHref
	}
	return u.String()
}
