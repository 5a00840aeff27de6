package constants

// Application constants
const (
	ApplicationID    = "io.github.fexp"
	ApplicationName  = "fexp"
	ApplicationTitle = "File Explorer"
)

// UI constants
const (
	// Window dimensions
	DefaultWindowWidth  = 1100
	DefaultWindowHeight = 700

	// Split between tree and content panes
	TreePaneOffset = 0.3

	// Split between flat listing and preview
	ListingPaneOffset = 0.45

	// How long a warning stays in the status bar
	StatusMessageSeconds = 6
)

// Default file type colors (RGBA values)
var (
	DefaultDirectoryColor = [4]uint8{135, 206, 250, 255} // Light sky blue
	DefaultArchiveColor   = [4]uint8{255, 165, 0, 255}   // Orange
)

// Preview constants
const (
	PreviewTempPattern = "fexp-preview-*.html"
)
