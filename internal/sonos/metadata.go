package sonos

import (
	"encoding/xml"
	"html"
	"regexp"
	"strings"
)

// DIDLLite represents DIDL-Lite metadata format used by UPnP.
type DIDLLite struct {
	XMLName xml.Name   `xml:"urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/ DIDL-Lite"`
	Items   []DIDLItem `xml:"urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/ item"`
}

// DIDLItem represents a single item in DIDL-Lite metadata.
type DIDLItem struct {
	Title string `xml:"http://purl.org/dc/elements/1.1/ title"`
	// StreamContent carries the live "Artist - Title" of a radio stream.
	StreamContent string `xml:"urn:schemas-rinconnetworks-com:metadata-1-0/ streamContent"`
}

var elementPatterns = map[string]*regexp.Regexp{
	"title":         elementPattern("title"),
	"streamContent": elementPattern("streamContent"),
}

func elementPattern(localName string) *regexp.Regexp {
	// <prefix:localName ...>content</prefix:localName> or <localName>content</localName>
	return regexp.MustCompile(`<(?:\w+:)?` + localName + `[^>]*>([^<]*)</(?:\w+:)?` + localName + `>`)
}

// parseTitle returns the best title in track metadata: live stream content
// first, then the item title. Empty when nothing is playing.
func parseTitle(metadata string) string {
	if metadata == "" || metadata == "NOT_IMPLEMENTED" {
		return ""
	}

	var didl DIDLLite
	if err := xml.Unmarshal([]byte(metadata), &didl); err == nil && len(didl.Items) > 0 {
		if t := pickTitle(didl.Items[0].StreamContent, didl.Items[0].Title); t != "" {
			return t
		}
	}

	// Fallback for double-escaped or oddly namespaced documents
	metadata = html.UnescapeString(metadata)
	return pickTitle(extractXMLElement(metadata, "streamContent"), extractXMLElement(metadata, "title"))
}

func pickTitle(stream, title string) string {
	if s := strings.TrimSpace(stream); s != "" {
		return s
	}
	return strings.TrimSpace(title)
}

// extractXMLElement extracts content from an XML element, ignoring namespace prefixes.
func extractXMLElement(doc, localName string) string {
	matches := elementPatterns[localName].FindStringSubmatch(doc)
	if len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	return ""
}

// radioURI rewrites plain http stream URLs into the scheme Sonos uses for
// internet radio. Other schemes pass through.
func radioURI(url string) string {
	if rest, ok := strings.CutPrefix(url, "http://"); ok {
		return "x-rincon-mp3radio://" + rest
	}
	return url
}
