package skeleton

import (
	"errors"
	"fmt"

	"bone-renamer/internal/common"
)

// Kind is a coarse type discriminator used to reject non-skeleton inputs.
type Kind int

const (
	KindUnknown Kind = iota
	KindArmature
	KindMesh
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindArmature:
		return "armature"
	case KindMesh:
		return "mesh"
	default:
		return common.UnknownStr
	}
}

// Skeleton is a mutable collection of uniquely named nodes.
//
// Rename may only be called while Editable reports true; implementations
// enforce that themselves and return ErrNotEditable otherwise.
type Skeleton interface {
	Kind() Kind
	Editable() bool
	// Names returns the current node names in a stable order.
	Names() []string
	// Rename renames the node currently called from.
	Rename(from, to string) error
}

var (
	// ErrNotEditable is returned when the skeleton is not in a mode that allows renaming.
	ErrNotEditable = errors.New("skeleton is not in an editable mode")
	// ErrNoSuchNode is returned when renaming a name that is not present.
	ErrNoSuchNode = errors.New("no node with that name")
	// ErrNameTaken is returned when the new name already belongs to another node.
	ErrNameTaken = errors.New("name already in use")
	// ErrEmptyName is returned when renaming to the empty string.
	ErrEmptyName = errors.New("empty node name")
)

// NotAnArmatureError reports a target that is not a skeleton.
type NotAnArmatureError struct {
	Kind Kind
}

func (e *NotAnArmatureError) Error() string {
	return fmt.Sprintf("target is a %s, not an armature", e.Kind)
}

// Check verifies the rename preconditions: the target must be an armature
// and be editable. It never mutates s.
func Check(s Skeleton) error {
	if s == nil {
		return &NotAnArmatureError{Kind: KindUnknown}
	}

	if s.Kind() != KindArmature {
		return &NotAnArmatureError{Kind: s.Kind()}
	}

	if !s.Editable() {
		return ErrNotEditable
	}

	return nil
}

// NameSet returns the current names of s as a set.
func NameSet(s Skeleton) map[string]struct{} {
	names := s.Names()
	set := make(map[string]struct{}, len(names))

	for _, n := range names {
		set[n] = struct{}{}
	}

	return set
}
