package ui

import (
	"context"
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	apperrors "fexp/internal/errors"
)

// ShowMessageDialog displays a simple OK dialog with a title and message.
// It returns immediately after showing.
func ShowMessageDialog(parent fyne.Window, title, message string) {
	d := dialog.NewInformation(title, message, parent)
	d.Show()
}

// ShowErrorDialog reports err to the user. Cancellations are only logged.
func ShowErrorDialog(parent fyne.Window, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		log.Printf("Operation canceled")
		return
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Path != "" {
		log.Printf("%s failed on %s: %v", appErr.Operation, appErr.Path, err)
	} else {
		log.Printf("Operation failed: %v", err)
	}
	dialog.ShowError(err, parent)
}

// DialogConfirmer asks yes/no questions with a modal dialog.
// Confirm blocks until the user answers, so it must be called off the UI
// goroutine (the jobs worker); calling it from a fyne callback deadlocks.
type DialogConfirmer struct {
	parent fyne.Window
}

// NewDialogConfirmer creates a confirmer bound to parent
func NewDialogConfirmer(parent fyne.Window) *DialogConfirmer {
	return &DialogConfirmer{parent: parent}
}

func (c *DialogConfirmer) Confirm(message string) bool {
	answer := make(chan bool, 1)
	fyne.Do(func() {
		d := dialog.NewConfirm("Confirm", message, func(ok bool) {
			answer <- ok
		}, c.parent)
		d.SetDismissText("Cancel")
		d.SetConfirmText("Delete")
		d.Show()
	})
	return <-answer
}
