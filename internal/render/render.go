// Package render draws bubbles for the terminal with lipgloss.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// Title is the header shown above every bubble list.
const Title = "WordBubbles"

// LoadingText is shown while a submission is in flight.
const LoadingText = "Bubbling..."

// LoginHint is shown instead of bubbles when no identity is present.
const LoginHint = "Not logged in. Run `wordbubble login` to start bubbling."

var (
	colorAccent = lipgloss.Color("#2CD7C7")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorWarn   = lipgloss.Color("#F4D03F")
)

var styles = struct {
	Title  lipgloss.Style
	Bubble lipgloss.Style
	Next   lipgloss.Style
	Muted  lipgloss.Style
	Warn   lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
	Bubble: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2),
	Next:  lipgloss.NewStyle().Foreground(colorAccent).PaddingLeft(2),
	Muted: lipgloss.NewStyle().Foreground(colorMuted),
	Warn:  lipgloss.NewStyle().Foreground(colorWarn),
}

// Renderer lays out one row per bubble in three columns: a gutter, the
// boxed word, and the successor annotation.
type Renderer struct {
	gutter int
}

// New returns a Renderer with the given gutter width in cells.
func New(gutter int) *Renderer {
	if gutter < 0 {
		gutter = 0
	}
	return &Renderer{gutter: gutter}
}

// NextLabel is the annotation for a bubble; empty when count is zero.
func NextLabel(count int) string {
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("=> +%d words", count)
}

// Bubbles renders the header and one row per bubble in order.
func (r *Renderer) Bubbles(bubbles []types.Bubble) string {
	rows := make([]string, 0, len(bubbles)+1)
	rows = append(rows, styles.Title.Render(Title))
	for _, b := range bubbles {
		rows = append(rows, r.row(b.Word, NextLabel(b.NextCount)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r *Renderer) row(word, label string) string {
	gutter := lipgloss.NewStyle().Width(r.gutter).Render("")
	box := styles.Bubble.Render(word)
	next := ""
	if label != "" {
		next = styles.Next.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, gutter, box, next)
}

// Loading renders the header and the loading indicator.
func (r *Renderer) Loading() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(Title),
		styles.Muted.Render(LoadingText))
}

// LoggedOut renders the header and the login hint.
func (r *Renderer) LoggedOut() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(Title),
		styles.Warn.Render(LoginHint))
}

// Word renders a stored record with its successor count and successors.
func (r *Renderer) Word(rec *types.WordRecord) string {
	var b strings.Builder
	b.WriteString(r.row(rec.Word, fmt.Sprintf("%d successors", rec.SuccessorCount())))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("last used " + rec.LastUsed.Local().Format("2006-01-02 15:04:05")))
	if len(rec.NextWords) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("next: " + strings.Join(rec.NextWords, " ")))
	}
	return b.String()
}
