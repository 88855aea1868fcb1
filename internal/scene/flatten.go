package scene

// Leaf is a leaf part found by Flatten.
type Leaf struct {
	*Instance

	// ID identifies this placement of the instance. Instances reached through
	// a definition are shared by every placement of that definition, so their
	// id is prefixed with the ids of the instances above them, e.g. "cab1/door".
	ID string
}

// Flatten walks roots depth first and returns the leaf parts in discovery order.
//
// A visible instance is a leaf when nothing inside its definition is a leaf and
// its own bounds are strictly positive in all three dimensions. Hidden entities,
// or entities on hidden layers, are skipped with everything below them.
func Flatten(roots []Node) []Leaf {
	leaves := []Leaf{}
	for _, n := range roots {
		fetchLeaves(n, "", &leaves)
	}
	return leaves
}

// fetchLeaves appends the leaves found at or below n and returns how many it found.
// A node that becomes a leaf itself always reports exactly one. prefix is the
// id path of the instances whose definitions enclose n.
func fetchLeaves(n Node, prefix string, leaves *[]Leaf) int {
	if n == nil || !n.Attrs().Visible() {
		return 0
	}

	count := 0
	switch e := n.(type) {
	case *Group:
		for _, child := range e.Children {
			count += fetchLeaves(child, prefix, leaves)
		}
	case *Instance:
		id := prefix + e.InstanceID
		if e.Definition != nil {
			for _, child := range e.Definition.Entities {
				count += fetchLeaves(child, id+"/", leaves)
			}
		}
		if count == 0 && e.Bounds.IsSolid() {
			*leaves = append(*leaves, Leaf{Instance: e, ID: id})
			return 1
		}
	}
	return count
}
