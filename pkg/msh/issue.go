package msh

import (
	"errors"
	"fmt"
)

// MSH errors.
var (
	ErrNotMSH     = errors.New("not an MSH file: expected 'HEDR'")
	ErrValidation = errors.New("MSH validation failed")
)

// IssueKind classifies a non-fatal problem found while parsing.
type IssueKind int

const (
	IssueNotMSH IssueKind = iota
	IssueMaterialRange
	IssueParentMissing
	IssueUnresolvedBone
	IssueHashCollision
	IssueEnvelopeRange
	IssueDuplicateIndex
	IssueVertexRange
	IssueEnvelopeUnresolved
)

// String returns a short name for the issue kind.
func (k IssueKind) String() string {
	switch k {
	case IssueNotMSH:
		return "not-msh"
	case IssueMaterialRange:
		return "material-range"
	case IssueParentMissing:
		return "parent-missing"
	case IssueUnresolvedBone:
		return "unresolved-bone"
	case IssueHashCollision:
		return "hash-collision"
	case IssueEnvelopeRange:
		return "envelope-range"
	case IssueDuplicateIndex:
		return "duplicate-index"
	case IssueVertexRange:
		return "vertex-range"
	case IssueEnvelopeUnresolved:
		return "envelope-unresolved"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Issue is a dangling reference or similar defect. The document is still usable;
// the affected field keeps its fallback value.
type Issue struct {
	Kind   IssueKind
	Model  string
	Detail string
}

func (i Issue) Error() string {
	if i.Model == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.Model, i.Detail)
}
