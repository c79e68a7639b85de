// Package gui is the desktop front end: a single window with a chat-style
// transcript, a question entry, and a chart pane that redraws per answer.
package gui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/shopql/shopql/internal/ask"
	"github.com/shopql/shopql/internal/config"
	"github.com/shopql/shopql/internal/observability"
	"github.com/shopql/shopql/internal/present"
)

type Asker interface {
	Ask(ctx context.Context, surface, question string) (ask.Answer, error)
}

type Window struct {
	app    fyne.App
	window fyne.Window
	cfg    config.Config
	asker  Asker
	logger *slog.Logger

	transcript *widget.Label
	scroll     *container.Scroll
	input      *widget.Entry
	askButton  *widget.Button
	chartArea  *fyne.Container
}

func New(cfg config.Config, asker Asker, logger *slog.Logger) *Window {
	w := &Window{
		app:    app.New(),
		cfg:    cfg,
		asker:  asker,
		logger: logger,
	}
	w.window = w.app.NewWindow("E-commerce AI Agent")
	w.buildUI()
	return w
}

func (w *Window) buildUI() {
	w.transcript = widget.NewLabel("")
	w.transcript.Wrapping = fyne.TextWrapOff
	w.transcript.TextStyle = fyne.TextStyle{Monospace: true}
	w.scroll = container.NewVScroll(w.transcript)
	w.scroll.SetMinSize(fyne.NewSize(float32(w.cfg.GUI.ChartWidth), 260))

	w.input = widget.NewEntry()
	w.input.SetPlaceHolder("Ask a question about your sales data...")
	w.input.OnSubmitted = func(string) { w.submit() }
	w.askButton = widget.NewButton("Ask", w.submit)

	w.chartArea = container.NewStack()

	form := container.NewBorder(nil, nil, nil, w.askButton, w.input)
	content := container.NewBorder(nil, form, nil, nil,
		container.NewVSplit(w.scroll, w.chartArea),
	)
	w.window.SetContent(content)
	w.window.Resize(fyne.NewSize(float32(w.cfg.GUI.ChartWidth)+80, float32(w.cfg.GUI.ChartHeight)+360))
}

// Run enters the fyne main loop and blocks until the window closes.
func (w *Window) Run() {
	w.window.ShowAndRun()
}

func (w *Window) submit() {
	question := strings.TrimSpace(w.input.Text)
	if question == "" {
		return
	}
	w.input.SetText("")
	w.askButton.Disable()
	w.appendTranscript(fmt.Sprintf("You: %s\n", question))

	go func() {
		answer, err := w.asker.Ask(context.Background(), "gui", question)

		var reply string
		var chart fyne.CanvasObject
		switch {
		case err != nil:
			reply = fmt.Sprintf("Sorry, I could not generate SQL for that question.\n%v", err)
		case answer.ExecErr != nil:
			reply = fmt.Sprintf("Generated SQL: %s\nThe store rejected it: %s", answer.SQL, answer.ExecErr.Message)
		default:
			reply = present.DisplayText(answer.Result)
			if spec, ok := present.Plot(answer.Result); ok {
				observability.ObserveChart(string(spec.Kind))
				chart = BuildChart(spec, w.cfg.GUI.ChartWidth, w.cfg.GUI.ChartHeight)
			}
			if w.logger != nil {
				w.logger.Debug("desktop question answered", slog.Int("rows", len(answer.Result.Rows)))
			}
		}

		w.typeReply("Bot:\n"+reply+"\n", chart)
	}()
}

// typeReply writes the bot reply into the transcript one character at a time
// when a typing delay is configured, then swaps the chart pane and re-enables
// input. All widget mutation happens on the fyne thread.
func (w *Window) typeReply(reply string, chart fyne.CanvasObject) {
	delay := w.cfg.GUI.TypingDelay
	if delay <= 0 {
		fyne.Do(func() {
			w.appendTranscript(reply)
			w.finishReply(chart)
		})
		return
	}

	for _, r := range reply {
		char := string(r)
		fyne.Do(func() { w.appendTranscript(char) })
		time.Sleep(delay)
	}
	fyne.Do(func() { w.finishReply(chart) })
}

func (w *Window) appendTranscript(text string) {
	w.transcript.SetText(w.transcript.Text + text)
	w.scroll.ScrollToBottom()
}

func (w *Window) finishReply(chart fyne.CanvasObject) {
	w.chartArea.RemoveAll()
	if chart != nil {
		w.chartArea.Add(chart)
	}
	w.chartArea.Refresh()
	w.askButton.Enable()
	w.window.Canvas().Focus(w.input)
}
