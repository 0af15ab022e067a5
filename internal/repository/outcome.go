package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// OutcomeKind is the closed set of results of a single insert attempt.
type OutcomeKind int

const (
	// Created means the row was written.
	Created OutcomeKind = iota
	// Skipped means the row already existed (unique constraint) and nothing was written.
	Skipped
	// Failed means the insert failed for any other reason.
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of Store.Insert. Reason is set for Skipped, Err for Failed.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
	Err    error
}

// CreatedOutcome reports a successful insert.
func CreatedOutcome() Outcome { return Outcome{Kind: Created} }

// SkippedOutcome reports an insert that hit an existing row.
func SkippedOutcome(reason string) Outcome { return Outcome{Kind: Skipped, Reason: reason} }

// FailedOutcome reports a fatal insert error.
func FailedOutcome(err error) Outcome { return Outcome{Kind: Failed, Err: err} }

func (o Outcome) String() string {
	switch o.Kind {
	case Skipped:
		return "skipped: " + o.Reason
	case Failed:
		return "failed: " + o.Err.Error()
	default:
		return o.Kind.String()
	}
}

const pgUniqueViolation = "23505"

// classifyInsertError maps an insert error to an Outcome.
func classifyInsertError(err error) Outcome {
	if err == nil {
		return CreatedOutcome()
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		reason := "duplicate key"
		if pgErr.ConstraintName != "" {
			reason += " (" + pgErr.ConstraintName + ")"
		}
		return SkippedOutcome(reason)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return SkippedOutcome("duplicate key")
	}
	return FailedOutcome(err)
}
