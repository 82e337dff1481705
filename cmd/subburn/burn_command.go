package main

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/subburn/subburn/internal/burn"
	"github.com/subburn/subburn/internal/config"
	"github.com/subburn/subburn/internal/ffmpeg"
	"github.com/subburn/subburn/internal/logging"
	"github.com/subburn/subburn/internal/model"
	"github.com/subburn/subburn/internal/subtitle"
)

// burnFlags holds the per-run override flags. Overrides apply to a clone of
// the loaded configuration; the persisted file is never written by the burn
// command.
type burnFlags struct {
	subtitlePath string
	outputPath   string

	noCopy bool
	crf    int
	preset string

	fontFamily   string
	fontSize     int
	fontColor    string
	outlineColor string
	outlineWidth int
	bold         bool
	shadow       bool
	noShadow     bool

	csvStartCol string
	csvEndCol   string
	csvTextCol  string
	csvTimeUnit string
	csvFPS      float64
}

func newBurnCommand(ctx *commandContext) *cobra.Command {
	var flags burnFlags

	cmd := &cobra.Command{
		Use:   "burn <video>",
		Short: "Burn a subtitle file onto a video",
		Long: `Burn renders subtitle text permanently onto the video frames using the
local ffmpeg binary. Subtitle files may be .srt, .ass, .ssa or .csv; CSV
input is converted to a generated ASS file first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runBurn(cmd, cfg, args[0], &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.subtitlePath, "subtitle", "s", "", "Subtitle file to burn (.srt, .ass, .ssa, .csv)")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output file path (default: <video>_sub next to the input)")

	cmd.Flags().BoolVar(&flags.noCopy, "no-copy", false, "Re-encode even when streams could be copied")
	cmd.Flags().IntVar(&flags.crf, "crf", 0, "x264 constant rate factor (0-51)")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "x264 encoding preset")

	cmd.Flags().StringVar(&flags.fontFamily, "font-family", "", "Subtitle font family")
	cmd.Flags().IntVar(&flags.fontSize, "font-size", 0, "Subtitle font size")
	cmd.Flags().StringVar(&flags.fontColor, "font-color", "", "Subtitle color as #rrggbb")
	cmd.Flags().StringVar(&flags.outlineColor, "outline-color", "", "Outline color as #rrggbb")
	cmd.Flags().IntVar(&flags.outlineWidth, "outline-width", 0, "Outline width in pixels")
	cmd.Flags().BoolVar(&flags.bold, "bold", false, "Render subtitles in bold")
	cmd.Flags().BoolVar(&flags.shadow, "shadow", false, "Render a drop shadow")
	cmd.Flags().BoolVar(&flags.noShadow, "no-shadow", false, "Disable the drop shadow")

	cmd.Flags().StringVar(&flags.csvStartCol, "csv-start-col", "", "CSV column holding cue start times")
	cmd.Flags().StringVar(&flags.csvEndCol, "csv-end-col", "", "CSV column holding cue end times")
	cmd.Flags().StringVar(&flags.csvTextCol, "csv-text-col", "", "CSV column holding cue text")
	cmd.Flags().StringVar(&flags.csvTimeUnit, "csv-time-unit", "", "CSV time unit (seconds or frames)")
	cmd.Flags().Float64Var(&flags.csvFPS, "csv-fps", 0, "Frame rate for frame-based CSV timings")

	cmd.MarkFlagRequired("subtitle")
	cmd.MarkFlagsMutuallyExclusive("shadow", "no-shadow")

	return cmd
}

func runBurn(cmd *cobra.Command, cfg *config.Config, videoPath string, flags *burnFlags) error {
	run := cfg.Clone()
	applyOverrides(cmd, run, flags)

	if err := run.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cmd.Flag("log-level").Value.String()})
	if err != nil {
		return err
	}

	outputPath := flags.outputPath
	if outputPath == "" {
		if run.Output.Dir != "" {
			outputPath = ffmpeg.DefaultOutputPath(videoPath, run.Output.Dir)
		} else {
			outputPath = ffmpeg.SiblingOutputPath(videoPath)
		}
	}

	service := burn.NewService(logger)

	out := cmd.OutOrStdout()
	done := make(chan model.TaskStatus, 1)

	var progressMu sync.Mutex
	lastPercent := -1
	service.SetUpdateCallback(func(task *model.BurnTask) {
		progressMu.Lock()
		defer progressMu.Unlock()

		if task.Status.IsFinished() {
			select {
			case done <- task.Status:
			default:
			}
			return
		}
		if task.Status == model.TaskStatusEncoding && task.Percent != lastPercent {
			lastPercent = task.Percent
			fmt.Fprintf(out, "\rburning: %3d%%", task.Percent)
		}
	})

	task, err := service.StartBurn(videoPath, flags.subtitlePath, burn.Options{
		Style:      run.Style,
		Encode:     run.Encode,
		OutputPath: outputPath,
		CSV:        csvOptions(run, flags),
	})
	if err != nil {
		return err
	}

	status := <-done
	fmt.Fprintln(out)

	final, _ := service.GetTask(task.ID)
	if status != model.TaskStatusCompleted {
		if final != nil && final.LastError != "" {
			return fmt.Errorf("burn failed: %s", final.LastError)
		}
		return fmt.Errorf("burn finished with status %s", status)
	}

	fmt.Fprintf(out, "wrote %s\n", task.OutputPath)
	return nil
}

// applyOverrides copies changed flags onto the run configuration. Only flags
// the user actually set are applied, so config values survive untouched
// defaults.
func applyOverrides(cmd *cobra.Command, run *config.Config, flags *burnFlags) {
	set := cmd.Flags().Changed

	if set("no-copy") {
		run.Encode.CodecCopy = !flags.noCopy
	}
	if set("crf") {
		run.Encode.CRF = flags.crf
	}
	if set("preset") {
		run.Encode.Preset = flags.preset
	}

	if set("font-family") {
		run.Style.FontFamily = flags.fontFamily
	}
	if set("font-size") {
		run.Style.FontSize = flags.fontSize
	}
	if set("font-color") {
		run.Style.FontColor = flags.fontColor
	}
	if set("outline-color") {
		run.Style.OutlineColor = flags.outlineColor
	}
	if set("outline-width") {
		run.Style.OutlineWidth = flags.outlineWidth
	}
	if set("bold") {
		run.Style.Bold = flags.bold
	}
	if set("shadow") {
		run.Style.Shadow = true
	}
	if set("no-shadow") {
		run.Style.Shadow = false
	}
}

// csvOptions resolves the CSV column mapping: stored mappings keyed by file
// name come first, then flag overrides. A nil return means header
// auto-detection.
func csvOptions(run *config.Config, flags *burnFlags) *subtitle.CSVOptions {
	var opts *subtitle.CSVOptions

	if mapping, ok := run.CSVMappings[filepath.Base(flags.subtitlePath)]; ok {
		opts = &subtitle.CSVOptions{
			StartCol: mapping.StartCol,
			EndCol:   mapping.EndCol,
			TextCol:  mapping.TextCol,
			TimeUnit: mapping.TimeUnit,
			FPS:      mapping.FPS,
		}
	}

	if flags.csvStartCol != "" || flags.csvEndCol != "" || flags.csvTextCol != "" || flags.csvTimeUnit != "" || flags.csvFPS > 0 {
		if opts == nil {
			opts = &subtitle.CSVOptions{}
		}
		if flags.csvStartCol != "" {
			opts.StartCol = flags.csvStartCol
		}
		if flags.csvEndCol != "" {
			opts.EndCol = flags.csvEndCol
		}
		if flags.csvTextCol != "" {
			opts.TextCol = flags.csvTextCol
		}
		if flags.csvTimeUnit != "" {
			opts.TimeUnit = flags.csvTimeUnit
		}
		if flags.csvFPS > 0 {
			opts.FPS = flags.csvFPS
		}
	}

	if opts != nil {
		if opts.TimeUnit == "" {
			opts.TimeUnit = subtitle.TimeUnitSeconds
		}
		if opts.FPS <= 0 {
			opts.FPS = run.Output.FPS
		}
	}
	return opts
}
