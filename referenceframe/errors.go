package referenceframe

import "github.com/pkg/errors"

// NewJointNotFoundError returns an error for when a named joint is absent
// from a model or state.
func NewJointNotFoundError(name string) error {
	return errors.Errorf("no joint with name %q", name)
}

// NewLinkNotFoundError returns an error for when a named link is absent from
// a model or state.
func NewLinkNotFoundError(name string) error {
	return errors.Errorf("no link with name %q", name)
}

// NewFrameNotFoundError returns an error for when a named reference frame
// cannot be resolved.
func NewFrameNotFoundError(name string) error {
	return errors.Errorf("no reference frame with name %q", name)
}
