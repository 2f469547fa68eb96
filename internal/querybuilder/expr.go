package querybuilder

// Comparator is the closed set of comparisons a Condition may express.
type Comparator string

const (
	// ContainsFold is a case-insensitive substring match.
	ContainsFold Comparator = "contains_fold"
	// Equal is an exact match, used for server-side scopes.
	Equal Comparator = "eq"
)

// Logic joins the members of a Group.
type Logic string

const (
	And Logic = "AND"
	Or  Logic = "OR"
)

// Condition compares one allow-listed column against a bound value.
type Condition struct {
	Column     Column
	Comparator Comparator
	Value      interface{}
}

// Group is a node of the filter tree.
type Group struct {
	Logic      Logic
	Conditions []Condition
	Groups     []Group
}

// Empty reports whether the group renders to nothing.
func (g Group) Empty() bool {
	if len(g.Conditions) > 0 {
		return false
	}
	for _, sub := range g.Groups {
		if !sub.Empty() {
			return false
		}
	}
	return true
}

func (g Group) size() int {
	n := len(g.Conditions)
	for _, sub := range g.Groups {
		if !sub.Empty() {
			n++
		}
	}
	return n
}
