package annotation

// Triple is one RDF statement derived from the attributes on the path to a node.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
	Datatype  string
}

// ToTriples turns a root-to-node chain of resolved attributes into triples.
// about and resource set the subject scope for nested properties; typeof
// yields an "a" statement per type.
func ToTriples(chain []Attributes) []Triple {
	var triples []Triple
	var scope string

	for _, a := range chain {
		var next string
		var t Triple

		if about, ok := a.Get("about"); ok {
			scope = about
		}
		content, hasContent := a.Get("content")
		if hasContent {
			t.Object = content
		}
		if datatype, ok := a.Get("datatype"); ok {
			t.Datatype = datatype
		}

		resource, hasResource := a.Get("resource")
		if property, ok := a.Get("property"); ok {
			t.Predicate = property
			if href, ok := a.Get("href"); ok {
				t.Object = href
				hasContent = true
			}
			if hasResource {
				t.Object = resource
				next = resource
				hasContent = true
			}
			if !hasContent {
				t.Object = a.Text
			}
		} else if hasResource {
			scope = resource
		}

		t.Subject = scope
		if t.Predicate != "" {
			triples = append(triples, t)
		}
		for _, typ := range a.Typeof {
			triples = append(triples, Triple{Subject: resource, Predicate: "a", Object: typ})
		}
		if next != "" {
			scope = next
		}
	}
	return triples
}
