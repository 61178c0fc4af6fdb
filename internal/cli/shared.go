package cli

import (
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/mkramer/instapp/internal/domain"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func withSpinner(desc string) (stop func()) {
	spinner := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				spinner.Add(1)
				time.Sleep(100 * time.Millisecond)
			}
		}
	}()
	return func() {
		close(done)
		spinner.Finish()
	}
}

// spinnerExtractor shows a spinner while the wrapped extractor runs.
type spinnerExtractor struct {
	inner domain.Extractor
}

func (s spinnerExtractor) Extract(src, dst string, format domain.Format) error {
	stop := withSpinner("Extracting...")
	defer stop()
	return s.inner.Extract(src, dst, format)
}
