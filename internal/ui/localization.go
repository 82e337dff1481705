package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyBurn             = "burn"
	KeyStop             = "stop"
	KeyOpen             = "open"
	KeyReveal           = "reveal"
	KeyCopyPath         = "copy_path"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeyVideoFile        = "video_file"
	KeySubtitleFile     = "subtitle_file"
	KeyOutputDirectory  = "output_directory"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyBrowse           = "browse"
	KeyStyle            = "style"
	KeyFontFamily       = "font_family"
	KeyFontSize         = "font_size"
	KeyFontColor        = "font_color"
	KeyOutlineColor     = "outline_color"
	KeyOutlineWidth     = "outline_width"
	KeyBold             = "bold"
	KeyShadow           = "shadow"
	KeyCodecCopy        = "codec_copy"
	KeyCRF              = "crf"
	KeyPreset           = "preset"
	KeyPreview          = "preview"
	KeyCSVMapping       = "csv_mapping"
	KeyStartColumn      = "start_column"
	KeyEndColumn        = "end_column"
	KeyTextColumn       = "text_column"
	KeyTimeUnit         = "time_unit"
	KeyFrameRate        = "frame_rate"
	KeySettingsSaved    = "settings_saved"
	KeyBurnStarted      = "burn_started"
	KeyBurnCompleted    = "burn_completed"
	KeyErrorStopping    = "error_stopping"
	KeyErrorOpeningFile = "error_opening_file"
	KeyStoppingBurn     = "stopping_burn"
	KeySelectVideo      = "select_video"
	KeySelectSubtitle   = "select_subtitle"
	KeyUnsupportedFile  = "unsupported_file"
	KeyAlreadyRunning   = "already_running"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ja": "日本語",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "SubBurn",
		KeyBurn:             "Burn",
		KeyStop:             "Stop",
		KeyOpen:             "Open",
		KeyReveal:           "Reveal",
		KeyCopyPath:         "Copy Path",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeyVideoFile:        "Video File",
		KeySubtitleFile:     "Subtitle File",
		KeyOutputDirectory:  "Output Directory",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyBrowse:           "Browse",
		KeyStyle:            "Subtitle Style",
		KeyFontFamily:       "Font Family",
		KeyFontSize:         "Font Size",
		KeyFontColor:        "Font Color",
		KeyOutlineColor:     "Outline Color",
		KeyOutlineWidth:     "Outline Width",
		KeyBold:             "Bold",
		KeyShadow:           "Shadow",
		KeyCodecCopy:        "Copy streams when possible",
		KeyCRF:              "Quality (CRF)",
		KeyPreset:           "Encoding Preset",
		KeyPreview:          "Preview",
		KeyCSVMapping:       "CSV Columns",
		KeyStartColumn:      "Start Column",
		KeyEndColumn:        "End Column",
		KeyTextColumn:       "Text Column",
		KeyTimeUnit:         "Time Unit",
		KeyFrameRate:        "Frame Rate",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyBurnStarted:      "Burn started",
		KeyBurnCompleted:    "Burn completed",
		KeyErrorStopping:    "Error stopping burn",
		KeyErrorOpeningFile: "Error opening file",
		KeyStoppingBurn:     "Stopping burn...",
		KeySelectVideo:      "Please select a video file",
		KeySelectSubtitle:   "Please select a subtitle file",
		KeyUnsupportedFile:  "Unsupported file type",
		KeyAlreadyRunning:   "A burn is already running for this video",
	}

	// Japanese texts
	l.texts["ja"] = map[string]string{
		KeyAppTitle:         "SubBurn",
		KeyBurn:             "焼き込み",
		KeyStop:             "停止",
		KeyOpen:             "開く",
		KeyReveal:           "フォルダで表示",
		KeyCopyPath:         "パスをコピー",
		KeySettings:         "設定",
		KeyFile:             "ファイル",
		KeyLanguage:         "言語",
		KeyVideoFile:        "動画ファイル",
		KeySubtitleFile:     "字幕ファイル",
		KeyOutputDirectory:  "出力フォルダ",
		KeySave:             "保存",
		KeyCancel:           "キャンセル",
		KeyBrowse:           "参照",
		KeyStyle:            "字幕スタイル",
		KeyFontFamily:       "フォント",
		KeyFontSize:         "フォントサイズ",
		KeyFontColor:        "文字色",
		KeyOutlineColor:     "縁取り色",
		KeyOutlineWidth:     "縁取り幅",
		KeyBold:             "太字",
		KeyShadow:           "影",
		KeyCodecCopy:        "可能ならストリームコピー",
		KeyCRF:              "品質 (CRF)",
		KeyPreset:           "エンコードプリセット",
		KeyPreview:          "プレビュー",
		KeyCSVMapping:       "CSV列設定",
		KeyStartColumn:      "開始列",
		KeyEndColumn:        "終了列",
		KeyTextColumn:       "テキスト列",
		KeyTimeUnit:         "時間単位",
		KeyFrameRate:        "フレームレート",
		KeySettingsSaved:    "設定を保存しました",
		KeyBurnStarted:      "焼き込みを開始しました",
		KeyBurnCompleted:    "焼き込みが完了しました",
		KeyErrorStopping:    "停止に失敗しました",
		KeyErrorOpeningFile: "ファイルを開けませんでした",
		KeyStoppingBurn:     "停止しています...",
		KeySelectVideo:      "動画ファイルを選択してください",
		KeySelectSubtitle:   "字幕ファイルを選択してください",
		KeyUnsupportedFile:  "未対応のファイル形式です",
		KeyAlreadyRunning:   "この動画は既に処理中です",
	}
}
