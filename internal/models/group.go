package models

// Group is a named set of members sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string `json:"name"`

	// Members is the ordered list of member names. Names are unique within
	// the group and the order is the order balances are reported in.
	Members []string `json:"members"`

	// Expenses is the append-only expense history, oldest first.
	Expenses []Expense `json:"expenses"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last expense added, or CreatedAt.
	UpdatedAt int64 `json:"updatedAt"`
}

// HasMember reports whether name is one of the group's members.
func (g *Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	c := *g
	c.Members = append([]string(nil), g.Members...)
	if g.Expenses != nil {
		c.Expenses = make([]Expense, len(g.Expenses))
		for i := range g.Expenses {
			c.Expenses[i] = g.Expenses[i].Clone()
		}
	}
	return &c
}
