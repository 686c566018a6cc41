// Package view holds pure presentation transforms for the console.
// Nothing here touches the terminal or the network.
package view

import (
	"fmt"
	"html"
	"strings"
	"time"

	"taskboard/internal/api"
)

// EmptyListMessage is shown when a task listing comes back empty.
const EmptyListMessage = "No tasks yet. Create your first task to get started."

// Card is a render-ready projection of one task.
type Card struct {
	ID          int
	Title       string
	Description string
	Badge       string
	Date        string
	Owner       string
	ShowOwner   bool
	CanEdit     bool
	CanDelete   bool
}

// Escape neutralizes markup in user-entered text.
func Escape(s string) string {
	return html.EscapeString(s)
}

// StatusBadge renders a raw status as a human label:
// "in_progress" becomes "In Progress".
func StatusBadge(status string) string {
	words := strings.Split(status, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatDate renders a timestamp the way the dashboard shows it.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// TaskCard builds a Card as seen by viewer. Owner info is admin-only;
// editing stays with the owner while deleting extends to admins.
func TaskCard(t api.TaskResponse, viewer api.UserResponse) Card {
	owns := t.UserID == viewer.ID
	return Card{
		ID:          t.ID,
		Title:       Escape(t.Title),
		Description: Escape(t.Description),
		Badge:       StatusBadge(t.Status),
		Date:        FormatDate(t.CreatedAt),
		Owner:       fmt.Sprintf("User #%d", t.UserID),
		ShowOwner:   viewer.IsAdmin(),
		CanEdit:     owns,
		CanDelete:   owns || viewer.IsAdmin(),
	}
}

// Pager drives the pagination controls.
type Pager struct {
	Visible bool
	Label   string
	HasPrev bool
	HasNext bool
}

// Pages hides the controls entirely for single-page results.
func Pages(p api.Pagination) Pager {
	return Pager{
		Visible: p.Pages > 1,
		Label:   fmt.Sprintf("Page %d of %d", p.Page, p.Pages),
		HasPrev: p.Page > 1,
		HasNext: p.Page < p.Pages,
	}
}
