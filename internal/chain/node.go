package chain

// Node is the slice of an HTML element tree the parser needs. Any HTML
// library can satisfy it through an adapter (see internal/htmldoc).
type Node interface {
	// Text returns the concatenated text of the node and its descendants.
	Text() string

	// Attr returns the named attribute and whether it was present.
	Attr(name string) (string, bool)

	// Children returns direct child elements with the given tag, in order.
	Children(tag string) []Node

	// Find returns descendant elements with the given tag, in document order.
	Find(tag string) []Node

	// Parent returns the enclosing element, or nil at the root.
	Parent() Node
}
