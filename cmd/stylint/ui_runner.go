package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"stylint/internal/driver"
	"stylint/internal/pipeline"
	"stylint/internal/ui"
)

type lintOutcome struct {
	results []driver.FileResult
	err     error
}

// runLintWithUI drives the batch through the progress display. The lint
// runs in its own goroutine so the event channel never blocks the model.
func runLintWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.FileResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		_, results, err := driver.LintBatch(ctx, files, optsCopy)
		outcomeCh <- lintOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
