package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atinyakov/hack-or-snooze/internal/domain"
)

var (
	accent = lipgloss.Color("#e8743b")
	muted  = lipgloss.Color("#8a8a8a")
)

type styles struct {
	title lipgloss.Style
	host  lipgloss.Style
	meta  lipgloss.Style
	star  lipgloss.Style
	id    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		title: r.NewStyle().Bold(true),
		host:  r.NewStyle().Foreground(muted),
		meta:  r.NewStyle().Foreground(muted).PaddingLeft(2),
		star:  r.NewStyle().Foreground(accent),
		id:    r.NewStyle().Faint(true),
	}
}

// markFunc reports whether a story is a favorite. Nil means nobody is
// logged in and no marks are drawn.
type markFunc func(domain.Story) bool

func (st styles) story(s domain.Story, marked markFunc) string {
	var head strings.Builder

	if marked != nil {
		if marked(s) {
			head.WriteString(st.star.Render("★") + " ")
		} else {
			head.WriteString(st.star.Render("☆") + " ")
		}
	}

	head.WriteString(st.title.Render(s.Title))
	if host, err := s.HostName(); err == nil {
		head.WriteString(" " + st.host.Render("("+host+")"))
	}

	meta := fmt.Sprintf("by %s | posted by %s | %s", s.Author, s.Username, st.id.Render(s.ID))

	return head.String() + "\n" + st.meta.Render(meta)
}

func (st styles) stories(w io.Writer, list []domain.Story, marked markFunc, empty string) {
	if len(list) == 0 {
		fmt.Fprintln(w, st.host.Render(empty))
		return
	}

	for _, s := range list {
		fmt.Fprintln(w, st.story(s, marked))
	}
}
