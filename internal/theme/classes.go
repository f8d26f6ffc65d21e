package theme

import (
	"strings"

	"github.com/samber/lo"
)

// RootClasses is the ordered class list rendered on the <html> element.
type RootClasses struct {
	classes []string
}

// NewRootClasses returns a class list holding the given classes once each.
func NewRootClasses(classes ...string) *RootClasses {
	return &RootClasses{classes: lo.Uniq(lo.Compact(classes))}
}

// Add appends class unless it is already present.
func (r *RootClasses) Add(class string) {
	if class == "" || r.Has(class) {
		return
	}
	r.classes = append(r.classes, class)
}

// Remove drops class from the list.
func (r *RootClasses) Remove(class string) {
	r.classes = lo.Without(r.classes, class)
}

// Has reports whether class is present.
func (r *RootClasses) Has(class string) bool {
	return lo.Contains(r.classes, class)
}

// String returns the value of the class attribute.
func (r *RootClasses) String() string {
	return strings.Join(r.classes, " ")
}
