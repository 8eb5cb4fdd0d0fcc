package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/ledger"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/pkg/api"
)

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a new LedgerService backed by the given ledger.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// CreateGroup creates a new group.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	group, err := s.ledger.CreateGroup(ctx, req.Msg.Name, req.Msg.Members)
	if err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{
		Group: toAPIGroup(group, false),
	}), nil
}

// GetGroup retrieves a group by ID, including its expenses.
func (s *LedgerService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.lookup(req.Msg.GroupId)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, connectError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{
		Group:         toAPIGroup(group, true),
		TotalExpenses: calculator.TotalAmount(group),
	}), nil
}

// ListGroups retrieves all groups without their expenses.
func (s *LedgerService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups := s.ledger.ListGroups()

	apiGroups := make([]*api.Group, len(groups))
	for i := range groups {
		apiGroups[i] = toAPIGroup(&groups[i], false)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{
		Groups: apiGroups,
	}), nil
}

// AddExpense builds an expense from the request, validates it against the
// group and records it.
//
// Groups never lose members, so validating against a snapshot taken before
// the ledger call stays correct.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupId,
		"amount", req.Msg.Amount,
		"paid_by", req.Msg.PaidBy,
		"split_method", req.Msg.SplitMethod,
	)

	group, err := s.lookup(req.Msg.GroupId)
	if err != nil {
		slog.Error("AddExpense failed - group not found", "group_id", req.Msg.GroupId, "error", err)
		return nil, connectError(err)
	}

	method, err := calculator.ParseSplitMethod(req.Msg.SplitMethod)
	if err != nil {
		slog.Error("AddExpense failed - split method", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	var splits map[string]float64
	switch method {
	case calculator.SplitEqual:
		splits, err = calculator.EqualSplit(req.Msg.Amount, group.Members)
		if err != nil {
			slog.Error("AddExpense failed - equal split", "error", err)
			return nil, connectError(err)
		}
	case calculator.SplitCustom:
		splits = calculator.CustomSplit(req.Msg.Splits, group.Members)
	}

	draft := models.ExpenseDraft{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		PaidBy:      req.Msg.PaidBy,
		Date:        req.Msg.Date,
		Splits:      splits,
	}
	if err := calculator.ValidateDraft(group, draft); err != nil {
		slog.Error("AddExpense validation failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	expense, err := s.ledger.AddExpense(ctx, group.ID, draft)
	if err != nil {
		slog.Error("AddExpense failed", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Expense added", "group_id", group.ID, "expense_id", expense.ID)

	return connect.NewResponse(&api.AddExpenseResponse{
		Expense: toAPIExpense(expense),
	}), nil
}

// GetGroupBalances calculates balances and suggested settlements for a group.
func (s *LedgerService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupId
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	group, err := s.lookup(groupID)
	if err != nil {
		slog.Error("GetGroupBalances failed - group not found", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}

	balances := calculator.CalculateBalances(group)
	settlements := calculator.SettleBalances(balances)

	// Convert to API messages
	apiBalances := make([]*api.MemberBalance, len(balances))
	for i, bal := range balances {
		apiBalances[i] = &api.MemberBalance{
			MemberName: bal.Member,
			NetBalance: bal.Amount,
		}
	}

	apiSettlements := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		apiSettlements[i] = &api.Settlement{
			From:   st.From,
			To:     st.To,
			Amount: st.Amount,
		}
	}

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"expenses_count", len(group.Expenses),
		"members_count", len(balances),
		"settlements_count", len(settlements),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		MemberBalances: apiBalances,
		Settlements:    apiSettlements,
		TotalExpenses:  calculator.TotalAmount(group),
		ExpenseCount:   int32(len(group.Expenses)),
	}), nil
}

func (s *LedgerService) lookup(groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, models.NewValidationError("group_id", "group_id required")
	}
	group, ok := s.ledger.GetGroup(groupID)
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	return group, nil
}
