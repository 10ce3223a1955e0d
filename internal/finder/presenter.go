package finder

import (
	"context"
	"fmt"
	"io"

	"github.com/yt-viral/internal/models"
)

// EmptyMessage is the warning shown when a run accepts nothing
const EmptyMessage = "No viral videos found under 3K subscribers."

// Presenter renders the events of a run
type Presenter interface {
	Searching(topic models.Topic)
	Success(report models.RunReport)
	Warning(message string)
	Error(message string)
}

// SuccessMessage is the banner shown above a non-empty report
func SuccessMessage(n int) string {
	return fmt.Sprintf("Found %d potential viral history videos!", n)
}

// Present hands a terminal outcome to the presenter
func Present(outcome models.RunOutcome, p Presenter) {
	switch outcome.Kind {
	case models.OutcomeSuccess:
		p.Success(outcome.Report)
	case models.OutcomeEmpty:
		p.Warning(EmptyMessage)
	default:
		p.Error(outcome.Reason)
	}
}

// Execute runs f and streams every event to p
func Execute(ctx context.Context, f *Finder, in RunInput, p Presenter) models.RunOutcome {
	outcome := f.Run(ctx, in, p.Searching)
	Present(outcome, p)
	return outcome
}

// TextPresenter writes events as plain text blocks
type TextPresenter struct {
	w io.Writer
}

// NewTextPresenter writes to w
func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

// Searching announces the topic about to be searched
func (t *TextPresenter) Searching(topic models.Topic) {
	fmt.Fprintf(t.w, "Searching: %s\n", topic)
}

// Success prints the banner followed by one block per result
func (t *TextPresenter) Success(report models.RunReport) {
	fmt.Fprintln(t.w, SuccessMessage(len(report)))
	for _, r := range report {
		fmt.Fprint(t.w, RenderResult(r))
		fmt.Fprintln(t.w, "---")
	}
}

// Warning prints a warning line
func (t *TextPresenter) Warning(message string) {
	fmt.Fprintf(t.w, "Warning: %s\n", message)
}

// Error prints an error line
func (t *TextPresenter) Error(message string) {
	fmt.Fprintf(t.w, "Error: %s\n", message)
}

// RenderResult formats one result block
func RenderResult(r models.ViralResult) string {
	return fmt.Sprintf("Title: %s\nViews: %d\nSubscribers: %d\nWatch: %s\n",
		r.Title, r.Views, r.Subscribers, r.URL)
}
