package vtree

import "github.com/nextcore/tuicore/pkg/tuierrors"

// Validate checks a single node's kind and props. Called once per node at
// layout entry; never in the reconciler hot path.
func Validate(node *VNode) error {
	if node == nil {
		return nil
	}
	if !node.Kind.Valid() {
		return tuierrors.UnknownKind(node.Kind.String())
	}
	if node.Props == nil {
		return nil
	}
	if err := node.Props.Validate(); err != nil {
		return tuierrors.InvalidProps(node.Kind.String(), err.Error())
	}
	return nil
}

// ValidateTree recursively validates node and all descendants, stopping at
// the first failure (deterministic: depth-first, left to right).
func ValidateTree(node *VNode) error {
	if node == nil {
		return nil
	}
	if err := Validate(node); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := ValidateTree(child); err != nil {
			return err
		}
	}
	return nil
}
