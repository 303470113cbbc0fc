package provider

import (
	"github.com/rxtech-lab/argo-ta/internal/types"
)

// fakeWriter records what the providers write.
type fakeWriter struct {
	initializeErr  error
	writeErr       error
	writeErrAfterN int // Return writeErr after N successful writes
	finalizeErr    error
	outputPath     string

	initialized       bool
	written           []types.PriceRecord
	writeCallCount    int
	finalizeCallCount int
}

func (w *fakeWriter) Initialize() error {
	if w.initializeErr != nil {
		return w.initializeErr
	}

	w.initialized = true

	return nil
}

func (w *fakeWriter) Write(record types.PriceRecord) error {
	w.writeCallCount++
	if w.writeErr != nil && w.writeCallCount > w.writeErrAfterN {
		return w.writeErr
	}

	w.written = append(w.written, record)

	return nil
}

func (w *fakeWriter) Finalize() (string, error) {
	w.finalizeCallCount++
	if w.finalizeErr != nil {
		return "", w.finalizeErr
	}

	return w.outputPath, nil
}

func (w *fakeWriter) Close() error {
	return nil
}

func (w *fakeWriter) GetOutputPath() string {
	return w.outputPath
}
