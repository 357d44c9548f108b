package skeleton

import (
	"fmt"

	"bone-renamer/internal/common"
)

// Mode is the interaction mode of an Armature.
type Mode int

const (
	ModeObject Mode = iota
	ModeEdit
	ModePose
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeObject:
		return "object"
	case ModeEdit:
		return "edit"
	case ModePose:
		return "pose"
	default:
		return common.UnknownStr
	}
}

// Armature is an in-memory skeleton. Bone order is insertion order.
// Renaming is allowed in object and edit mode, not in pose mode.
type Armature struct {
	mode  Mode
	bones []string
	index map[string]int
}

// NewArmature creates an armature in object mode. Repeated and empty names
// are dropped.
func NewArmature(names ...string) *Armature {
	unique := common.UniqueOrdered(names)

	a := &Armature{
		bones: unique,
		index: make(map[string]int, len(unique)),
	}
	for i, n := range unique {
		a.index[n] = i
	}

	return a
}

// Kind implements Skeleton.
func (a *Armature) Kind() Kind {
	return KindArmature
}

// Mode returns the current mode.
func (a *Armature) Mode() Mode {
	return a.mode
}

// SetMode switches the interaction mode.
func (a *Armature) SetMode(m Mode) {
	a.mode = m
}

// Editable implements Skeleton.
func (a *Armature) Editable() bool {
	return a.mode != ModePose
}

// Names implements Skeleton.
func (a *Armature) Names() []string {
	return append([]string(nil), a.bones...)
}

// Has reports whether a bone with the name exists.
func (a *Armature) Has(name string) bool {
	_, ok := a.index[name]
	return ok
}

// Rename implements Skeleton.
func (a *Armature) Rename(from, to string) error {
	if !a.Editable() {
		return fmt.Errorf("rename %q in %s mode: %w", from, a.mode, ErrNotEditable)
	}

	if to == "" {
		return fmt.Errorf("rename %q: %w", from, ErrEmptyName)
	}

	i, ok := a.index[from]
	if !ok {
		return fmt.Errorf("rename %q: %w", from, ErrNoSuchNode)
	}

	if from == to {
		return nil
	}

	if _, taken := a.index[to]; taken {
		return fmt.Errorf("rename %q to %q: %w", from, to, ErrNameTaken)
	}

	delete(a.index, from)
	a.index[to] = i
	a.bones[i] = to

	return nil
}
