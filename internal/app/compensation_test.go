package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwindRunsInReverseOrder(t *testing.T) {
	var ran []string
	var undo undoStack
	undo.push("file", func() error { ran = append(ran, "file"); return nil })
	undo.push("index", func() error { ran = append(ran, "index"); return nil })
	undo.push("metadata", func() error { ran = append(ran, "metadata"); return nil })

	undo.unwind()
	assert.Equal(t, []string{"metadata", "index", "file"}, ran)
}

func TestUnwindContinuesPastFailingStep(t *testing.T) {
	var ran []string
	var undo undoStack
	undo.push("file", func() error { ran = append(ran, "file"); return nil })
	undo.push("index", func() error { return errors.New("index gone") })
	undo.push("metadata", func() error { ran = append(ran, "metadata"); return nil })

	undo.unwind()
	assert.Equal(t, []string{"metadata", "file"}, ran, "a failed undo must not stop earlier undos")
}

func TestUnwindIsSafeWhenEmpty(t *testing.T) {
	var undo undoStack
	undo.unwind()
}
