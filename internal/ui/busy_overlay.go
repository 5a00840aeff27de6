package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// busyBlocker covers the explorer while a long job runs and swallows taps
type busyBlocker struct {
	widget.BaseWidget
	content *fyne.Container
}

func newBusyBlocker(content *fyne.Container) *busyBlocker {
	b := &busyBlocker{content: content}
	b.ExtendBaseWidget(b)
	return b
}

func (b *busyBlocker) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.content)
}

func (b *busyBlocker) Tapped(_ *fyne.PointEvent)          {}
func (b *busyBlocker) TappedSecondary(_ *fyne.PointEvent) {}

// BusyOverlay shows an indeterminate progress bar with the running job's
// description, plus a cancel button when the job can be canceled.
type BusyOverlay struct {
	spinner *widget.ProgressBarInfinite
	label   *widget.Label
	cancel  *widget.Button
	root    *fyne.Container
	onStop  func()
}

func NewBusyOverlay() *BusyOverlay {
	bo := &BusyOverlay{}

	bo.spinner = widget.NewProgressBarInfinite()
	bo.label = widget.NewLabel("Working...")
	bo.label.Alignment = fyne.TextAlignCenter
	bo.label.Importance = widget.HighImportance
	bo.cancel = widget.NewButton("Cancel", func() {
		if bo.onStop != nil {
			bo.onStop()
		}
	})

	bg := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: 96})
	panel := container.NewVBox(bo.spinner, bo.label, container.NewCenter(bo.cancel))
	centered := container.NewCenter(container.NewPadded(panel))

	bo.root = container.NewStack(newBusyBlocker(container.NewStack(bg, centered)))
	bo.root.Hide()
	return bo
}

func (bo *BusyOverlay) GetContainer() *fyne.Container { return bo.root }

// Show displays text; onCancel may be nil to hide the cancel button.
func (bo *BusyOverlay) Show(text string, onCancel func()) {
	if text != "" {
		bo.label.SetText(text)
	}
	bo.onStop = onCancel
	if onCancel == nil {
		bo.cancel.Hide()
	} else {
		bo.cancel.Show()
	}
	if bo.root.Visible() {
		return
	}
	bo.spinner.Start()
	bo.root.Show()
}

func (bo *BusyOverlay) Hide() {
	if !bo.root.Visible() {
		return
	}
	bo.spinner.Stop()
	bo.onStop = nil
	bo.root.Hide()
}

func (bo *BusyOverlay) IsVisible() bool { return bo.root.Visible() }
