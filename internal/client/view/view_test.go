package view

import (
	"testing"
	"time"

	"taskboard/internal/api"

	"github.com/stretchr/testify/require"
)

func TestStatusBadge(t *testing.T) {
	require.Equal(t, "Pending", StatusBadge("pending"))
	require.Equal(t, "In Progress", StatusBadge("in_progress"))
	require.Equal(t, "Completed", StatusBadge("completed"))
	require.Equal(t, "Cancelled", StatusBadge("cancelled"))
}

func TestTaskCard(t *testing.T) {
	created := time.Date(2025, 5, 1, 15, 4, 5, 0, time.UTC)
	task := api.TaskResponse{
		ID:          7,
		Title:       "<b>Report</b>",
		Description: "Q2 & Q3",
		Status:      "in_progress",
		UserID:      2,
		CreatedAt:   created,
	}

	// owner sees edit and delete, no owner line
	owner := api.UserResponse{ID: 2, Role: "user"}
	card := TaskCard(task, owner)
	require.Equal(t, "&lt;b&gt;Report&lt;/b&gt;", card.Title)
	require.Equal(t, "Q2 &amp; Q3", card.Description)
	require.Equal(t, "In Progress", card.Badge)
	require.Equal(t, "May 1, 2025", card.Date)
	require.False(t, card.ShowOwner)
	require.True(t, card.CanEdit)
	require.True(t, card.CanDelete)

	// a stranger gets a read-only card
	stranger := api.UserResponse{ID: 3, Role: "user"}
	card = TaskCard(task, stranger)
	require.False(t, card.CanEdit)
	require.False(t, card.CanDelete)

	// admins see the owner and may delete but not edit
	admin := api.UserResponse{ID: 9, Role: "admin"}
	card = TaskCard(task, admin)
	require.True(t, card.ShowOwner)
	require.Equal(t, "User #2", card.Owner)
	require.False(t, card.CanEdit)
	require.True(t, card.CanDelete)
}

func TestPages(t *testing.T) {
	// single page stays hidden
	p := Pages(api.Pagination{Total: 3, Page: 1, Limit: 10, Pages: 1})
	require.False(t, p.Visible)

	p = Pages(api.Pagination{Total: 42, Page: 1, Limit: 10, Pages: 5})
	require.True(t, p.Visible)
	require.Equal(t, "Page 1 of 5", p.Label)
	require.False(t, p.HasPrev)
	require.True(t, p.HasNext)

	p = Pages(api.Pagination{Total: 42, Page: 5, Limit: 10, Pages: 5})
	require.True(t, p.HasPrev)
	require.False(t, p.HasNext)
}
