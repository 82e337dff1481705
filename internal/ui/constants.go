package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconStop     = "⏹"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconClose    = "×"
	IconError    = "❌"
	IconLanguage = "🌐"
)

// Text fragments
const (
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (BurnRow / lists)
const (
	StatusLabelWidth  float32 = 96
	SpeedLabelWidth   float32 = 80
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 72
	RowDefaultH  float32 = 64
)

// Window sizing
const (
	MainWindowWidth  float32 = 860
	MainWindowHeight float32 = 640

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 480

	MappingDialogWidth  float32 = 420
	MappingDialogHeight float32 = 320
)

// Preview behavior
const (
	PreviewMaxLines = 50
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
