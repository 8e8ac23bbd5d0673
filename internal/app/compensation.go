package app

import "log"

// undoStack records compensating actions for a multi-store operation that
// has no real transaction. Each completed step pushes its undo; if a later
// step fails, unwind runs the undos in reverse order. An undo failure is
// logged but never masks the failure that triggered the rollback.
type undoStack struct {
	steps []undoStep
}

type undoStep struct {
	name string
	fn   func() error
}

func (u *undoStack) push(name string, fn func() error) {
	u.steps = append(u.steps, undoStep{name: name, fn: fn})
}

func (u *undoStack) unwind() {
	for i := len(u.steps) - 1; i >= 0; i-- {
		step := u.steps[i]
		if err := step.fn(); err != nil {
			log.Printf("ingest rollback: undo %s failed: %v", step.name, err)
		}
	}
	u.steps = nil
}
