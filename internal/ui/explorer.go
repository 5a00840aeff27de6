package ui

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fexp/internal/config"
	"fexp/internal/constants"
	"fexp/internal/engine"
	"fexp/internal/errors"
	"fexp/internal/fileinfo"
	"fexp/internal/jobs"
	"fexp/internal/keymanager"
	"fexp/internal/mutation"
	"fexp/internal/preview"
	"fexp/internal/tree"
)

// Explorer is the main window: tree on the left, flat listing and markdown
// preview on the right. Every engine call runs on the jobs worker; widgets
// are only touched on the UI goroutine through fyne.Do.
type Explorer struct {
	window        fyne.Window
	config        *config.Config
	configManager config.ManagerInterface
	engine        *engine.Engine
	mutations     *mutation.Coordinator
	jobs          *jobs.Manager
	normalize     func(string) string
	debugPrint    func(format string, args ...interface{})

	tree        *TreeView
	pane        *MarkdownPane
	busy        *BusyOverlay
	activity    *JobsDialog
	keys        *keymanager.KeyManager
	busyKeys    bool
	quickAccess *widget.Select
	rootEntry   *widget.Entry
	filterEntry *widget.SelectEntry
	pathLabel   *widget.Label
	status      *widget.Label
	statusTimer *time.Timer
	list        *widget.List
	listing     []fileinfo.Entry
	listingPath string
}

// ExplorerDeps are the collaborators of an Explorer
type ExplorerDeps struct {
	Window        fyne.Window
	Config        *config.Config
	ConfigManager config.ManagerInterface
	Engine        *engine.Engine
	Mutations     *mutation.Coordinator
	Jobs          *jobs.Manager
	Pane          *MarkdownPane
	Normalize     func(string) string // cleans user-typed roots; nil uses fileinfo.CleanPath
}

// NewExplorer builds the window content
func NewExplorer(deps ExplorerDeps, debugPrint func(format string, args ...interface{})) *Explorer {
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	if deps.Normalize == nil {
		deps.Normalize = fileinfo.CleanPath
	}
	if deps.Pane == nil {
		deps.Pane = NewMarkdownPane()
	}
	x := &Explorer{
		window:        deps.Window,
		config:        deps.Config,
		configManager: deps.ConfigManager,
		engine:        deps.Engine,
		mutations:     deps.Mutations,
		jobs:          deps.Jobs,
		normalize:     deps.Normalize,
		debugPrint:    debugPrint,
		pane:          deps.Pane,
		busy:          NewBusyOverlay(),
	}
	x.activity = NewJobsDialog(x.jobs, x.engine)
	x.setupUI()
	x.setupKeys()

	x.engine.Subscribe(func(w engine.Warning) {
		fyne.Do(func() { x.setStatus(w.String()) })
	})
	x.jobs.Subscribe(x.updateBusy)
	return x
}

func (x *Explorer) setupUI() {
	x.status = widget.NewLabel("")
	x.status.Truncation = fyne.TextTruncateEllipsis
	x.pathLabel = widget.NewLabel("")
	x.pathLabel.Truncation = fyne.TextTruncateEllipsis

	x.tree = NewTreeView(x.engine, x.run, func(id tree.NodeID) {
		if v, ok := x.engine.NodeView(id); ok {
			x.setStatus(v.Path)
		}
	}, x.debugPrint)

	// Quick access and free-form root
	names := make([]string, 0, len(x.engine.QuickAccess()))
	for _, q := range x.engine.QuickAccess() {
		names = append(names, q.Name)
	}
	x.quickAccess = widget.NewSelect(names, func(name string) {
		x.run("quick_access", name, func(ctx context.Context) error {
			return x.engine.SelectQuickAccess(name)
		})
	})
	x.quickAccess.PlaceHolder = "Quick access"

	x.rootEntry = widget.NewEntry()
	x.rootEntry.SetPlaceHolder("Folder or smb://host/share")
	x.rootEntry.OnSubmitted = func(text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		x.OpenRoot(text)
	}

	left := container.NewBorder(
		container.NewVBox(x.quickAccess, x.rootEntry),
		nil, nil, nil,
		x.tree.Widget(),
	)

	// Flat listing with filter
	x.filterEntry = widget.NewSelectEntry(x.config.FilterHistory())
	x.filterEntry.SetPlaceHolder("Filter, e.g. *.md or **/*.{go,mod}")
	x.filterEntry.SetText(x.engine.Filter())
	x.filterEntry.OnSubmitted = x.applyFilter

	x.list = widget.NewList(
		func() int { return len(x.listing) },
		func() fyne.CanvasObject {
			icon := widget.NewIcon(theme.FileIcon())
			text := canvas.NewText("Template", theme.Color(theme.ColorNameForeground))
			return container.NewHBox(icon, text)
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i < 0 || i >= len(x.listing) {
				return
			}
			entry := x.listing[i]
			hbox := obj.(*fyne.Container)
			hbox.Objects[0].(*widget.Icon).SetResource(entryIcon(entry.Kind))
			text := hbox.Objects[1].(*canvas.Text)
			text.Text = entry.Name
			text.Color = kindColor(entry.Kind)
			text.Refresh()
		},
	)
	x.list.OnSelected = func(i widget.ListItemID) {
		x.list.Unselect(i)
		if i < 0 || i >= len(x.listing) {
			return
		}
		x.activate(x.listing[i])
	}

	upButton := widget.NewButtonWithIcon("", theme.MoveUpIcon(), x.GoUp)
	listingHeader := container.NewBorder(nil, x.filterEntry, upButton, nil, x.pathLabel)
	listing := container.NewBorder(listingHeader, nil, nil, nil, x.list)

	right := container.NewVSplit(listing, x.pane.GetContainer())
	right.Offset = constants.ListingPaneOffset

	split := container.NewHSplit(left, right)
	split.Offset = constants.TreePaneOffset

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), x.RenameSelected),
		widget.NewToolbarAction(theme.DeleteIcon(), x.DeleteSelected),
		widget.NewToolbarAction(theme.DownloadIcon(), x.ExtractSelected),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), x.Refresh),
		widget.NewToolbarAction(theme.VisibilityIcon(), x.ToggleHidden),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.ListIcon(), func() { x.activity.ShowDialog(x.window) }),
		widget.NewToolbarAction(theme.ComputerIcon(), x.openPreviewInBrowser),
	)

	content := container.NewBorder(toolbar, x.status, nil, nil, split)
	x.window.SetContent(container.NewStack(content, x.busy.GetContainer()))
}

func (x *Explorer) setupKeys() {
	x.keys = keymanager.NewKeyManager(x.debugPrint)
	x.keys.PushHandler(keymanager.NewExplorerKeyHandler(x, x.debugPrint))

	c := x.window.Canvas()
	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(x.keys.HandleKeyDown)
		dc.SetOnKeyUp(x.keys.HandleKeyUp)
	}
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		x.keys.HandleTypedKey(ev)
	})
}

// FocusRootEntry moves keyboard focus to the root path entry
func (x *Explorer) FocusRootEntry() {
	x.window.Canvas().Focus(x.rootEntry)
}

// run queues fn on the jobs worker and refreshes the widgets when it is done
func (x *Explorer) run(name, target string, fn func(ctx context.Context) error) {
	x.jobs.Enqueue(name, target, func(ctx context.Context) error {
		err := fn(ctx)
		fyne.Do(func() {
			x.refreshAll()
			if err != nil {
				ShowErrorDialog(x.window, err)
			}
		})
		return err
	})
}

// OpenRoot replaces the tree with a new root folder
func (x *Explorer) OpenRoot(path string) {
	path = x.normalize(path)
	x.run("select_root", path, func(ctx context.Context) error {
		return x.engine.SelectRoot(path)
	})
}

// refreshAll redraws tree and listing from the engine state
func (x *Explorer) refreshAll() {
	x.tree.Sync()
	sel := x.engine.Selection()
	x.listing = x.engine.FlatListing()
	x.listingPath = sel.Path
	x.pathLabel.SetText(sel.Path)
	x.list.Refresh()
}

// setStatus shows text for a few seconds
func (x *Explorer) setStatus(text string) {
	x.status.SetText(text)
	if x.statusTimer != nil {
		x.statusTimer.Stop()
	}
	x.statusTimer = time.AfterFunc(constants.StatusMessageSeconds*time.Second, func() {
		fyne.Do(func() {
			if x.status.Text == text {
				x.status.SetText("")
			}
		})
	})
}

func kindColor(k fileinfo.Kind) color.Color {
	var c [4]uint8
	switch k {
	case fileinfo.KindDirectory:
		c = constants.DefaultDirectoryColor
	case fileinfo.KindArchive:
		c = constants.DefaultArchiveColor
	default:
		return theme.Color(theme.ColorNameForeground)
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// updateBusy runs on the jobs worker
func (x *Explorer) updateBusy() {
	cur, ok := x.jobs.Current()
	fyne.Do(func() {
		if !ok || cur.Name != "extract" {
			x.busy.Hide()
			if x.busyKeys {
				x.keys.PopHandler()
				x.busyKeys = false
			}
			return
		}
		cancel := func() { x.jobs.Cancel(cur.ID) }
		x.busy.Show("Extracting "+fileinfo.BaseName(cur.Target)+"...", cancel)
		if !x.busyKeys {
			x.keys.PushHandler(keymanager.NewBusyKeyHandler(cancel))
			x.busyKeys = true
		}
	})
}

// activate opens a listing entry: folders become the current folder, files
// open in the default application.
func (x *Explorer) activate(entry fileinfo.Entry) {
	p := fileinfo.JoinPath(x.listingPath, entry.Name)
	if entry.IsDir() {
		x.run("open_folder", p, func(ctx context.Context) error {
			return x.engine.OpenFolder(p)
		})
		return
	}
	x.debugPrint("Opening %s with the default application", p)
	go func() {
		if err := fileinfo.OpenWithDefaultApp(p); err != nil {
			fyne.Do(func() { ShowErrorDialog(x.window, err) })
		}
	}()
}

func (x *Explorer) GoUp() {
	if x.listingPath == "" {
		return
	}
	parent := fileinfo.ParentPath(x.listingPath)
	if parent == "" || fileinfo.SamePath(parent, x.listingPath) {
		return
	}
	x.run("open_folder", parent, func(ctx context.Context) error {
		return x.engine.OpenFolder(parent)
	})
}

func (x *Explorer) applyFilter(pattern string) {
	pattern = strings.TrimSpace(pattern)
	if err := x.engine.SetFilter(pattern); err != nil {
		ShowErrorDialog(x.window, err)
		return
	}
	x.config.RecordFilter(pattern)
	x.filterEntry.SetOptions(x.config.FilterHistory())
	x.saveConfig()
	x.refreshAll()
}

func (x *Explorer) ToggleHidden() {
	x.config.UI.ShowHiddenFiles = !x.config.UI.ShowHiddenFiles
	x.engine.SetShowHidden(x.config.UI.ShowHiddenFiles)
	x.saveConfig()
	x.refreshAll()
	if x.config.UI.ShowHiddenFiles {
		x.setStatus("Showing hidden files")
	} else {
		x.setStatus("Hiding hidden files")
	}
}

func (x *Explorer) saveConfig() {
	if x.configManager == nil {
		return
	}
	if err := x.configManager.Save(x.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// selectedNode returns the tree selection or reports why there is none
func (x *Explorer) selectedNode(op string) (engine.NodeView, bool) {
	id := x.tree.Selected()
	v, ok := x.engine.NodeView(id)
	if id == 0 || !ok {
		x.setStatus("Select an item in the tree to " + op)
		return engine.NodeView{}, false
	}
	return v, true
}

func (x *Explorer) RenameSelected() {
	v, ok := x.selectedNode("rename")
	if !ok {
		return
	}
	nameEntry := widget.NewEntry()
	nameEntry.SetText(v.Name)
	nameEntry.Validator = func(s string) error {
		if !fileinfo.ValidName(s) {
			return errors.NewInvalidArgumentError("rename", s, "invalid name")
		}
		return nil
	}

	form := dialog.NewForm("Rename", "Rename", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("New name", nameEntry)},
		func(confirmed bool) {
			if !confirmed || nameEntry.Text == v.Name {
				return
			}
			newName := nameEntry.Text
			x.run("rename", v.Path, func(ctx context.Context) error {
				return x.mutations.Rename(v.ID, newName)
			})
		}, x.window)
	form.Resize(fyne.NewSize(420, 160))
	form.Show()
	x.window.Canvas().Focus(nameEntry)
}

func (x *Explorer) DeleteSelected() {
	v, ok := x.selectedNode("delete")
	if !ok {
		return
	}
	// Confirm blocks on the worker until the dialog is answered
	x.run("delete", v.Path, func(ctx context.Context) error {
		deleted, err := x.mutations.Delete(v.ID)
		if err == nil && !deleted {
			fyne.Do(func() { x.setStatus("Delete canceled") })
		}
		return err
	})
}

func (x *Explorer) ExtractSelected() {
	v, ok := x.selectedNode("extract")
	if !ok {
		return
	}
	if v.Kind != fileinfo.KindArchive {
		x.setStatus(v.Name + " is not an archive")
		return
	}

	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ShowErrorDialog(x.window, err)
			return
		}
		if uri == nil {
			return
		}
		dest := uri.Path()
		x.run("extract", v.Path, func(ctx context.Context) error {
			if err := x.mutations.ExtractArchive(ctx, v.ID, dest); err != nil {
				return err
			}
			fyne.Do(func() {
				ShowMessageDialog(x.window, "Extraction complete",
					fmt.Sprintf("Extracted %s to %s", v.Name, dest))
			})
			return nil
		})
	}, x.window)
	if !fileinfo.IsSMBDisplay(v.Path) {
		if loc, err := storage.ListerForURI(storage.NewFileURI(fileinfo.ParentPath(v.Path))); err == nil {
			d.SetLocation(loc)
		}
	}
	d.Show()
}

// Refresh re-lists the selected loaded folder, or the root, plus the flat pane
func (x *Explorer) Refresh() {
	id := x.tree.Selected()
	if v, ok := x.engine.NodeView(id); !ok || v.Kind != fileinfo.KindDirectory || v.State != tree.StateLoaded {
		id = x.engine.Root()
	}
	if id == 0 {
		return
	}
	x.run("refresh", "", func(ctx context.Context) error {
		if err := x.engine.Refresh(id); err != nil {
			return err
		}
		if x.engine.Selection().Node == id {
			return nil
		}
		return x.engine.ReloadCurrentFolder()
	})
}

// openPreviewInBrowser writes the previewed markdown as a styled HTML page
// and hands it to the default browser.
func (x *Explorer) openPreviewInBrowser() {
	path, content, style, ok := x.pane.Current()
	if !ok {
		x.setStatus("Nothing to preview in this folder")
		return
	}
	go func() {
		name, err := writePreviewPage(path, content, style)
		if err == nil {
			err = fileinfo.OpenWithDefaultApp(name)
		}
		if err != nil {
			fyne.Do(func() { ShowErrorDialog(x.window, err) })
		}
	}()
}

func writePreviewPage(path, content string, style preview.Style) (string, error) {
	f, err := os.CreateTemp("", constants.PreviewTempPattern)
	if err != nil {
		return "", errors.NewUIError("open_preview", "cannot create preview file", err)
	}
	defer f.Close()
	if err := preview.WriteHTML(f, fileinfo.BaseName(path), content, style); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// Close stops background work and remembers the window size
func (x *Explorer) Close() {
	size := x.window.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		x.config.Window.Width = int(size.Width)
		x.config.Window.Height = int(size.Height)
	}
	x.saveConfig()
	x.jobs.Close()
}
