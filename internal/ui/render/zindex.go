package render

// Layers of the commit wizard screen. Higher values render on top.
const (
	// ZBase holds the panels and the shortcut bar.
	ZBase = 0

	// ZShade dims the panels while the editor, help or diff is open.
	ZShade = 50

	// ZPopup is the status popup.
	ZPopup = 100

	// ZEditor is the commit message editor.
	ZEditor = 150

	// ZDiff is the diff viewer.
	ZDiff = 200

	// ZHelp is the key help shown above the editor.
	ZHelp = 250
)
