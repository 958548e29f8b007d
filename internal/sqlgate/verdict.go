package sqlgate

import (
	"errors"
	"fmt"
)

// Tag identifies the outcome of a validation call. It doubles as the audit
// correlation key, so the string values are part of the external contract.
type Tag string

const (
	TagPass             Tag = "pass"
	TagRejectNonSelect  Tag = "reject_non_select"
	TagRejectWrongTable Tag = "reject_wrong_table"
	TagRejectKeyword    Tag = "reject_keyword"
)

func (t Tag) String() string {
	return string(t)
}

// IsRejection reports whether the tag is one of the reject_* outcomes.
func (t Tag) IsRejection() bool {
	switch t {
	case TagRejectNonSelect, TagRejectWrongTable, TagRejectKeyword:
		return true
	default:
		return false
	}
}

var (
	ErrNonSelectStatement = errors.New("non-select statement")
	ErrOutOfScopeTable    = errors.New("out of scope table")
	ErrForbiddenKeyword   = errors.New("forbidden keyword")
)

// Verdict is the result of one validation call.
//
// When Passed is true, SQL is the statement to execute. When Passed is false,
// SQL is a human readable rejection reason and must never be executed.
type Verdict struct {
	Passed  bool   `json:"passed"`
	SQL     string `json:"sql_or_reason"`
	Tag     Tag    `json:"tag"`
	Keyword string `json:"keyword,omitempty"`
}

// Statement returns the executable statement of a passed verdict.
func (v Verdict) Statement() (string, bool) {
	if !v.Passed {
		return "", false
	}
	return v.SQL, true
}

// Reason returns the rejection message of a failed verdict.
func (v Verdict) Reason() string {
	if v.Passed {
		return ""
	}
	return v.SQL
}

// Err returns nil for a passed verdict and a *RejectionError otherwise.
func (v Verdict) Err() error {
	if v.Passed {
		return nil
	}
	return &RejectionError{Verdict: v}
}

// RejectionError adapts a failed Verdict to the error interface.
type RejectionError struct {
	Verdict Verdict
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("sql rejected (%s): %s", e.Verdict.Tag, e.Verdict.SQL)
}

func (e *RejectionError) Unwrap() error {
	switch e.Verdict.Tag {
	case TagRejectNonSelect:
		return ErrNonSelectStatement
	case TagRejectWrongTable:
		return ErrOutOfScopeTable
	case TagRejectKeyword:
		return ErrForbiddenKeyword
	default:
		return nil
	}
}

func pass(sql string) Verdict {
	return Verdict{Passed: true, SQL: sql, Tag: TagPass}
}

func reject(tag Tag, reason string) *Verdict {
	return &Verdict{Passed: false, SQL: reason, Tag: tag}
}
