package pipeline

import "fmt"

// StageError is a terminal pipeline failure annotated with the stage that
// produced it. Only validation and rendering raise StageErrors; every other
// stage degrades instead of failing.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageFailure(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
