// Package api defines the wire messages and Connect bindings for the
// groupsplit ledger service.
package api

// Group is the wire form of a group.
type Group struct {
	Id        string     `json:"id"`
	Name      string     `json:"name"`
	Members   []string   `json:"members"`
	Expenses  []*Expense `json:"expenses,omitempty"`
	CreatedAt int64      `json:"created_at"`
	UpdatedAt int64      `json:"updated_at"`
}

// Expense is the wire form of an expense.
type Expense struct {
	Id          string             `json:"id"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	PaidBy      string             `json:"paid_by"`
	Date        string             `json:"date"`
	Splits      map[string]float64 `json:"splits"`
	CreatedAt   int64              `json:"created_at"`
}

// MemberBalance is one member's net balance.
type MemberBalance struct {
	MemberName string  `json:"member_name"`
	NetBalance float64 `json:"net_balance"` // Positive = owed money, Negative = owes money
}

// Settlement is a suggested transfer.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupResponse struct {
	Group         *Group  `json:"group"`
	TotalExpenses float64 `json:"total_expenses"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

// AddExpenseRequest records an expense. SplitMethod is "equal" (the
// default) or "custom"; Splits is only read for custom splits and members
// left out of it owe nothing.
type AddExpenseRequest struct {
	GroupId     string             `json:"group_id"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	PaidBy      string             `json:"paid_by"`
	Date        string             `json:"date"`
	SplitMethod string             `json:"split_method,omitempty"`
	Splits      map[string]float64 `json:"splits,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetGroupBalancesRequest struct {
	GroupId string `json:"group_id"`
}

type GetGroupBalancesResponse struct {
	MemberBalances []*MemberBalance `json:"member_balances"`
	Settlements    []*Settlement    `json:"settlements"`
	TotalExpenses  float64          `json:"total_expenses"`
	ExpenseCount   int32            `json:"expense_count"`
}
