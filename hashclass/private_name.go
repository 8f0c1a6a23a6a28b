package hashclass

import (
	"fmt"
	"sync/atomic"
)

// PrivateNameKind records what a private name was installed as.
type PrivateNameKind int

const (
	PrivateUnset PrivateNameKind = iota
	PrivateField
	PrivateMethod
	PrivateAccessor
)

func (k PrivateNameKind) String() string {
	switch k {
	case PrivateField:
		return "field"
	case PrivateMethod:
		return "method"
	case PrivateAccessor:
		return "accessor"
	default:
		return "unset"
	}
}

var privateNameIDs atomic.Uint64

// PrivateName is the runtime token behind one `#identifier` of one class
// evaluation. Tokens compare by identity: two evaluations of the same class
// source produce distinct tokens, and the description is only for
// diagnostics.
type PrivateName struct {
	id          uint64
	description string
	kind        PrivateNameKind

	// brand is the home object of a method or accessor: the prototype for
	// instance elements, the constructor for static ones.
	brand *Object
	// value is the method closure.
	value *Object
	// getter and setter are filled independently for accessors.
	getter *Object
	setter *Object
}

// NewPrivateName allocates a fresh token with no kind.
func NewPrivateName(description string) *PrivateName {
	return &PrivateName{id: privateNameIDs.Add(1), description: description}
}

func (n *PrivateName) Description() string   { return n.description }
func (n *PrivateName) Kind() PrivateNameKind { return n.kind }

func (n *PrivateName) String() string {
	return fmt.Sprintf("%s@%d", n.description, n.id)
}
