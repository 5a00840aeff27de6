package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"fexp/internal/engine"
	"fexp/internal/jobs"
)

// JobsDialog shows the operation queue and the recent listing warnings.
type JobsDialog struct {
	manager     *jobs.Manager
	engine      *engine.Engine
	list        *widget.List
	bind        binding.StringList
	items       []jobs.JobSnapshot
	selectedIdx int
	selectedID  int64
	details     *widget.Label
	warnings    *widget.Label
	dialog      dialog.Dialog
	open        bool
}

func NewJobsDialog(m *jobs.Manager, e *engine.Engine) *JobsDialog {
	jd := &JobsDialog{manager: m, engine: e, selectedIdx: -1}
	jd.bind = binding.NewStringList()
	jd.list = widget.NewListWithData(jd.bind,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(item binding.DataItem, obj fyne.CanvasObject) {
			s, _ := item.(binding.String).Get()
			if l, ok := obj.(*widget.Label); ok {
				l.SetText(s)
			}
		},
	)
	jd.details = widget.NewLabel("")
	jd.details.Wrapping = fyne.TextWrapWord
	jd.warnings = widget.NewLabel("")
	jd.warnings.Wrapping = fyne.TextWrapWord
	jd.list.OnSelected = func(id widget.ListItemID) {
		jd.selectedIdx = int(id)
		if id >= 0 && int(id) < len(jd.items) {
			jd.selectedID = jd.items[id].ID
		}
		jd.updateDetails()
	}
	// subscribe once; refresh only while shown
	m.Subscribe(func() {
		fyne.Do(func() {
			if jd.open {
				jd.refresh()
			}
		})
	})
	return jd
}

func (jd *JobsDialog) ShowDialog(parent fyne.Window) {
	cancelBtn := widget.NewButton("Cancel Selected", func() {
		if jd.selectedID != 0 {
			_ = jd.manager.Cancel(jd.selectedID)
			jd.refresh()
		}
	})
	closeBtn := widget.NewButton("Close", func() {
		if jd.dialog != nil {
			jd.dialog.Hide()
		}
	})

	header := widget.NewLabel("Operations")
	header.TextStyle.Bold = true
	warnHeader := widget.NewLabel("Warnings")
	warnHeader.TextStyle.Bold = true

	lower := container.NewBorder(warnHeader, nil, nil, nil, container.NewVScroll(jd.warnings))
	upper := container.NewVSplit(jd.list, container.NewVScroll(jd.details))
	upper.Offset = 0.7
	split := container.NewVSplit(upper, lower)
	split.Offset = 0.65

	bottom := container.NewHBox(layout.NewSpacer(), cancelBtn, closeBtn)
	content := container.NewBorder(header, bottom, nil, nil, split)

	jd.dialog = dialog.NewCustomWithoutButtons("Activity", content, parent)
	jd.dialog.SetOnClosed(func() { jd.open = false })
	jd.dialog.Resize(fyne.NewSize(720, 520))
	jd.open = true
	jd.dialog.Show()
	jd.refresh()
}

func (jd *JobsDialog) refresh() {
	jd.items = jd.manager.List()
	lines := make([]string, len(jd.items))
	for i, it := range jd.items {
		lines[i] = jobLine(it)
	}
	jd.bind.Set(lines)
	jd.list.Refresh()
	// Keep selection stable
	if jd.selectedIdx >= 0 && jd.selectedIdx < len(lines) {
		jd.list.Select(widget.ListItemID(jd.selectedIdx))
	} else if len(lines) > 0 {
		jd.list.Select(0)
	}
	jd.updateDetails()

	ws := jd.engine.Warnings()
	b := &strings.Builder{}
	for i := len(ws) - 1; i >= 0; i-- {
		fmt.Fprintf(b, "[%s] %s\n", ws[i].Time.Format("15:04:05"), ws[i].String())
	}
	jd.warnings.SetText(b.String())
}

func jobLine(it jobs.JobSnapshot) string {
	when := it.EnqueuedAt
	if it.Status == jobs.StatusRunning && !it.StartedAt.IsZero() {
		when = it.StartedAt
	}
	line := fmt.Sprintf("[%s] %s %s  (%s)", when.Format("15:04:05"), it.Name, it.Target, it.Status)
	if it.Status == jobs.StatusFailed && it.Error != "" {
		line += "  ERROR"
	}
	return line
}

func (jd *JobsDialog) updateDetails() {
	if jd.selectedIdx < 0 || jd.selectedIdx >= len(jd.items) {
		jd.details.SetText("")
		return
	}
	it := jd.items[jd.selectedIdx]
	b := &strings.Builder{}
	fmt.Fprintf(b, "Job #%d %s %s\nStatus: %s\n", it.ID, it.Name, it.Target, it.Status)
	if !it.CompletedAt.IsZero() && !it.StartedAt.IsZero() {
		fmt.Fprintf(b, "Took %s\n", it.CompletedAt.Sub(it.StartedAt).Round(time.Millisecond))
	}
	if it.Error != "" {
		fmt.Fprintf(b, "Error: %s\n", it.Error)
	}
	jd.details.SetText(b.String())
}
