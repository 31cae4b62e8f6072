package rfc2047x

import "fmt"

// Stage identifies which pipeline stage an error came from.
type Stage int

const (
	// StageLexer covers tokenizing errors, in practice the too-long
	// encoded-word report under RecoverAbort.
	StageLexer Stage = iota + 1
	// StageParser covers bad encoding tags.
	StageParser
	// StageEvaluator covers malformed Base64 or Quoted-Printable payloads
	// and clear text that is not valid UTF-8.
	StageEvaluator
)

func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "lexer"
	case StageParser:
		return "parser"
	case StageEvaluator:
		return "evaluator"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Error is the error type returned by Decode. It tags the underlying cause
// with the stage it came from; the cause is reachable through errors.As and
// errors.Is, for example *lexer.TooLongError.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rfc2047: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
