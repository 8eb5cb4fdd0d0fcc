package service

import (
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/pkg/api"
)

func toAPIGroup(g *models.Group, withExpenses bool) *api.Group {
	out := &api.Group{
		Id:        g.ID,
		Name:      g.Name,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if withExpenses {
		out.Expenses = make([]*api.Expense, len(g.Expenses))
		for i := range g.Expenses {
			out.Expenses[i] = toAPIExpense(&g.Expenses[i])
		}
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		Id:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Date:        e.Date,
		Splits:      e.Splits,
		CreatedAt:   e.CreatedAt,
	}
}
