// Package editlog holds the append-only record of edit operations for one
// editing session.
//
// Operations are validated when appended and immutable afterwards. The log
// is the undo substrate: entries live in a growable slice and the current
// state is a cursor into it, so undo and redo are cursor moves and a fresh
// append after an undo truncates the redo tail. Replay order is always
// insertion order.
//
// A Log is not synchronized; callers accessing one log from multiple
// goroutines must serialize externally.
package editlog

import "fmt"

// InvalidOperationError reports an operation rejected at append time.
// Replay never validates, so a log built through Append stays total.
type InvalidOperationError struct {
	Kind   Kind
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid %s operation: %s", e.Kind, e.Reason)
}

// Log is an ordered, append-only sequence of operations with an undo
// cursor. The zero value is an empty log ready for use.
type Log struct {
	ops    []Operation
	cursor int
}

// Append validates op and adds it after the cursor position. Any
// operations previously undone are discarded first.
func (l *Log) Append(op Operation) error {
	if err := validate(op); err != nil {
		return err
	}
	l.ops = append(l.ops[:l.cursor], op)
	l.cursor = len(l.ops)
	return nil
}

// Undo steps the cursor back one operation. It reports whether a step
// was taken.
func (l *Log) Undo() bool {
	if l.cursor == 0 {
		return false
	}
	l.cursor--
	return true
}

// Redo re-applies the most recently undone operation. It reports whether
// a step was taken.
func (l *Log) Redo() bool {
	if l.cursor == len(l.ops) {
		return false
	}
	l.cursor++
	return true
}

// Operations returns a copy of the active operations, in insertion order.
// Undone operations past the cursor are excluded.
func (l *Log) Operations() []Operation {
	out := make([]Operation, l.cursor)
	copy(out, l.ops[:l.cursor])
	return out
}

// Len returns the number of active operations.
func (l *Log) Len() int { return l.cursor }

// CanUndo reports whether Undo would take a step.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether Redo would take a step.
func (l *Log) CanRedo() bool { return l.cursor < len(l.ops) }

// Clear empties the log wholesale, e.g. when a new source image is loaded.
func (l *Log) Clear() {
	l.ops = nil
	l.cursor = 0
}

func validate(op Operation) error {
	switch op.Kind {
	case KindResize:
		if op.Width < 0 || op.Height < 0 {
			return &InvalidOperationError{Kind: op.Kind, Reason: "dimensions must not be negative"}
		}
	case KindConvertFormat:
		if !op.To.Valid() {
			return &InvalidOperationError{Kind: op.Kind, Reason: "unknown target format"}
		}
	case KindBrightness:
		if op.Amount < -1 || op.Amount > 1 {
			return &InvalidOperationError{Kind: op.Kind, Reason: "amount must be in [-1, 1]"}
		}
	case KindRotateRight, KindRotateLeft, KindFlipHorizontal, KindFlipVertical, KindGrayscale:
		// No parameters to check.
	default:
		return &InvalidOperationError{Kind: op.Kind, Reason: "unknown operation kind"}
	}
	return nil
}
