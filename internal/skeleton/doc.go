// Package skeleton defines the collaborator contract for the object whose
// bones are renamed, plus two implementations: an in-memory Armature and a
// JSON Document (glTF-style node list) edited through a JSONPath selector.
package skeleton
