package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"

	"contentgen/internal/controller"
)

var ErrNothingDisplayed = errors.New("nothing has been displayed yet")

var downloadNames = map[controller.Form]string{
	controller.FormGenerate:  "generated-content.txt",
	controller.FormSummarize: "summary.txt",
}

var busyLabels = map[controller.Form]string{
	controller.FormGenerate:  "Generating...",
	controller.FormSummarize: "Summarizing...",
}

// Presenter renders controller output on a terminal. Results go to out,
// busy indicators and notifications to status.
type Presenter struct {
	mu        sync.Mutex
	out       io.Writer
	status    io.Writer
	displayed map[controller.Form]string
	busy      map[controller.Form]bool

	writeClipboard func(string) error
}

func NewPresenter(out, status io.Writer) *Presenter {
	return &Presenter{
		out:            out,
		status:         status,
		displayed:      make(map[controller.Form]string),
		busy:           make(map[controller.Form]bool),
		writeClipboard: clipboard.WriteAll,
	}
}

func (p *Presenter) SetBusy(form controller.Form, busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.busy[form] = busy
	if busy {
		fmt.Fprintln(p.status, busyLabels[form])
	}
}

// Busy reports whether the form's trigger is currently disabled.
func (p *Presenter) Busy(form controller.Form) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy[form]
}

func (p *Presenter) Notify(message string, kind controller.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifyLocked(message, kind)
}

func (p *Presenter) notifyLocked(message string, kind controller.Kind) {
	var marker string
	switch kind {
	case controller.KindSuccess:
		marker = "✓"
	case controller.KindWarning:
		marker = "!"
	default:
		marker = "✗"
	}
	fmt.Fprintf(p.status, "%s %s\n", marker, message)
}

func (p *Presenter) ShowContent(result controller.GenerateResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.displayed[controller.FormGenerate] = result.Content
	fmt.Fprintln(p.out, result.Content)
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Tokens used: %d\n", result.TokensUsed)
}

func (p *Presenter) ShowSummary(result controller.SummaryResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.displayed[controller.FormSummarize] = result.Summary
	fmt.Fprintln(p.out, result.Summary)
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Original: %d words\n", result.OriginalLength)
	fmt.Fprintf(p.out, "Summary: %d words\n", result.SummaryLength)
	fmt.Fprintf(p.out, "Tokens used: %d\n", result.TokensUsed)
}

// Displayed returns the text currently shown for a form.
func (p *Presenter) Displayed(form controller.Form) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	text, ok := p.displayed[form]
	return text, ok
}

// Copy writes the displayed text of form to the system clipboard.
func (p *Presenter) Copy(form controller.Form) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	text, ok := p.displayed[form]
	if !ok {
		p.notifyLocked("Nothing to copy yet", controller.KindError)
		return ErrNothingDisplayed
	}

	if err := p.writeClipboard(text); err != nil {
		p.notifyLocked("Failed to copy to clipboard", controller.KindError)
		return fmt.Errorf("write clipboard: %w", err)
	}

	p.notifyLocked("Copied to clipboard!", controller.KindSuccess)
	return nil
}

// Download saves the displayed text of form as a .txt file in dir and
// returns the written path.
func (p *Presenter) Download(form controller.Form, dir string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	text, ok := p.displayed[form]
	if !ok {
		p.notifyLocked("Nothing to download yet", controller.KindError)
		return "", ErrNothingDisplayed
	}

	path := filepath.Join(dir, downloadNames[form])
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		p.notifyLocked("Failed to download file", controller.KindError)
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	p.notifyLocked(fmt.Sprintf("File downloaded! %s (%s)", path, humanize.Bytes(uint64(len(text)))), controller.KindSuccess)
	return path, nil
}
