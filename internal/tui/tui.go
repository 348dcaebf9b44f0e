package tui

import (
	"context"
)

type TUI struct {
	ctx      context.Context
	eventsCh chan Event
}

func New(ctx context.Context, eventsCh chan Event) *TUI {
	return &TUI{ctx, eventsCh}
}

// Run consumes pipeline events and updates the widget until the
// context is cancelled.
func (t *TUI) Run() {
	widget := NewWidget()
	go widget.Run()

	for {
		select {
		case <-t.ctx.Done():
			return

		case event := <-t.eventsCh:
			switch event.eventType {
			case eventTypeSpin:
				widget.SetSpinner(event.text)
			case eventTypeBar:
				widget.SetProgress(event.text, event.percent)
			case eventTypeText:
				widget.SetText(event.text)
			}
		}
	}
}
