// Package catalog holds the fixed table of diagnosable corneal conditions.
// The order matches the output width of the scoring model: index i of a
// probability vector always refers to Labels()[i].
package catalog

// Catalog is an immutable ordered list of condition labels.
type Catalog struct {
	labels []string
}

// Corneal returns the production catalog for the corneal analysis model.
func Corneal() *Catalog {
	return &Catalog{labels: []string{
		"Normal corneal structure",
		"Corneal dystrophy detected",
		"Keratoconus progression",
		"Corneal scarring present",
		"Irregular astigmatism pattern",
	}}
}

// New builds a catalog from an explicit label list. Intended for tests and
// alternative models.
func New(labels []string) *Catalog {
	copied := make([]string, len(labels))
	copy(copied, labels)
	return &Catalog{labels: copied}
}

// Size returns the number of conditions, i.e. the expected vector width.
func (c *Catalog) Size() int {
	return len(c.labels)
}

// Label returns the human-readable label for a condition index.
func (c *Catalog) Label(i int) (string, bool) {
	if i < 0 || i >= len(c.labels) {
		return "", false
	}
	return c.labels[i], true
}

// Labels returns a copy of the ordered label list.
func (c *Catalog) Labels() []string {
	copied := make([]string, len(c.labels))
	copy(copied, c.labels)
	return copied
}
