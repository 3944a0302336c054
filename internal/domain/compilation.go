package domain

import "strings"

type Compilation struct {
	ID     int64
	Title  string
	Pinned bool
}

// CompilationView carries the member events as read projections.
type CompilationView struct {
	Compilation
	Events []EventView
}

func NewCompilation(title string, pinned bool) (*Compilation, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 120 {
		return nil, ErrValidation("compilation title is required and must be <= 120 chars")
	}
	return &Compilation{Title: title, Pinned: pinned}, nil
}
