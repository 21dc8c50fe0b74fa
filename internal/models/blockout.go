package models

// BlockoutScope narrows a blockout to one term or applies it to both.
type BlockoutScope string

const (
	BlockoutBothTerms BlockoutScope = "both"
	BlockoutTerm1     BlockoutScope = "term1"
	BlockoutTerm2     BlockoutScope = "term2"
)

// AppliesTo reports whether the scope covers the given term ordinal (1 or
// 2). A missing or unknown scope defaults to both terms for backward
// compatibility with carts saved before scoping existed.
func (s BlockoutScope) AppliesTo(termOrdinal int) bool {
	switch s {
	case BlockoutTerm1:
		return termOrdinal == 1
	case BlockoutTerm2:
		return termOrdinal == 2
	default:
		return true
	}
}

// Blockout is a recurring weekly unavailability window. It has identity for
// editing but is treated as an immutable value during one generation call.
type Blockout struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Day      string        `json:"day"`
	StartMin int           `json:"startMin"`
	EndMin   int           `json:"endMin"`
	ApplyTo  BlockoutScope `json:"applyTo"`
}
