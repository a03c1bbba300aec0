// Package annotation scans RDFa annotations in the document and turns them
// into context blocks of triples.
package annotation

import (
	"strings"

	"github.com/bethropolis/rawedit/internal/dom"
	"golang.org/x/net/html"
)

// Keywords are the attributes that carry RDFa.
var Keywords = []string{
	"about", "content", "datatype", "property", "rel", "resource", "rev", "typeof", "vocab", "prefix", "href", "src",
}

// prefixable lists the keywords whose values may be CURIEs.
var prefixable = []string{"about", "datatype", "property", "rel", "resource", "rev", "typeof"}

// DefaultPrefixes are known without a prefix declaration.
var DefaultPrefixes = map[string]string{
	"rdf":     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs":    "http://www.w3.org/2000/01/rdf-schema#",
	"owl":     "http://www.w3.org/2002/07/owl#",
	"xsd":     "http://www.w3.org/2001/XMLSchema#",
	"dc":      "http://purl.org/dc/terms/",
	"dcterms": "http://purl.org/dc/terms/",
	"foaf":    "http://xmlns.com/foaf/0.1/",
	"schema":  "http://schema.org/",
	"skos":    "http://www.w3.org/2004/02/skos/core#",
	"prov":    "http://www.w3.org/ns/prov#",
}

// Attributes holds the RDFa attributes present on one element.
type Attributes struct {
	values map[string]string
	// Typeof is the space separated typeof value, split.
	Typeof []string
	// Text is the text content of the element when it was read.
	Text string
}

// ReadAttributes collects the RDFa attributes of n.
func ReadAttributes(n *html.Node) Attributes {
	a := Attributes{values: map[string]string{}}
	if n == nil {
		return a
	}
	if n.Type == html.ElementNode {
		for _, key := range Keywords {
			if v, ok := dom.Attr(n, key); ok {
				a.values[key] = v
			}
		}
		if t, ok := a.values["typeof"]; ok {
			a.Typeof = strings.Fields(t)
		}
	}
	a.Text = dom.TextContent(n)
	return a
}

// HasAttributes reports whether n carries any RDFa attribute.
func HasAttributes(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, key := range Keywords {
		if dom.HasAttr(n, key) {
			return true
		}
	}
	return false
}

// Get returns the value of an RDFa keyword.
func (a Attributes) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Empty reports whether no RDFa keyword is set.
func (a Attributes) Empty() bool {
	return len(a.values) == 0
}

// mergePrefixes returns prefixes extended with the vocab and prefix declarations of a.
func mergePrefixes(prefixes map[string]string, a Attributes) map[string]string {
	merged := make(map[string]string, len(prefixes)+2)
	for k, v := range prefixes {
		merged[k] = v
	}
	if vocab, ok := a.Get("vocab"); ok {
		merged[""] = vocab
	}
	if decl, ok := a.Get("prefix"); ok {
		parts := strings.Fields(decl)
		for i := 0; i+1 < len(parts); i += 2 {
			merged[strings.TrimSuffix(parts[i], ":")] = parts[i+1]
		}
	}
	return merged
}

// resolve expands the CURIEs of a against prefixes.
func resolve(a Attributes, prefixes map[string]string) Attributes {
	out := Attributes{values: make(map[string]string, len(a.values)), Text: a.Text}
	for k, v := range a.values {
		out.values[k] = v
	}
	for _, key := range prefixable {
		if v, ok := out.values[key]; ok && key != "typeof" {
			out.values[key] = resolveURI(v, prefixes)
		}
	}
	for _, t := range a.Typeof {
		out.Typeof = append(out.Typeof, resolveURI(t, prefixes))
	}
	return out
}

// resolveURI expands a CURIE. Full and relative URIs are returned unchanged;
// unknown prefixes resolve to the bare local part.
func resolveURI(uri string, prefixes map[string]string) string {
	if isFullURI(uri) || isRelativeURL(uri) {
		return uri
	}
	i := strings.Index(uri, ":")
	if i < 0 {
		return prefixes[""] + uri
	}
	return prefixes[uri[:i]] + uri[i+1:]
}

func isFullURI(uri string) bool {
	return strings.Contains(uri, "://")
}

func isRelativeURL(uri string) bool {
	for _, p := range []string{"#", "/", "./", "../"} {
		if strings.HasPrefix(uri, p) {
			return true
		}
	}
	return false
}
