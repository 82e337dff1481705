package subtitle

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/subburn/subburn/internal/config"
	"github.com/subburn/subburn/internal/model"
)

func TestWriteASS(t *testing.T) {
	style := config.Style{
		FontFamily:   "Arial",
		FontSize:     32,
		FontColor:    "#ffffff",
		OutlineColor: "#000000",
		OutlineWidth: 2,
		Bold:         true,
		Shadow:       true,
		MarginV:      10,
	}
	lines := []model.Line{
		{Start: 1 * time.Second, End: 3 * time.Second, Text: "Hello"},
		{Start: 4 * time.Second, End: 6 * time.Second, Text: "World"},
	}

	var sb strings.Builder
	if err := WriteASS(&sb, lines, style); err != nil {
		t.Fatalf("WriteASS() error: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"[Script Info]",
		"ScriptType: v4.00+",
		"PlayResX: 1920",
		"[V4+ Styles]",
		"[Events]",
		"Style: Default,Arial,32,&H00FFFFFF,&H000000FF,&H00000000,&H64000000,-1,0,0,0,100,100,0,0,1,2,3,2,10,10,10,1",
		"Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,,Hello",
		"Dialogue: 0,0:00:04.00,0:00:06.00,Default,,0,0,0,,World",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteASS() output missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestWriteASS_NoBoldNoShadow(t *testing.T) {
	style := config.Style{
		FontFamily:   "Arial",
		FontSize:     24,
		FontColor:    "#ff0000",
		OutlineColor: "#000000",
		OutlineWidth: 1,
	}

	var sb strings.Builder
	if err := WriteASS(&sb, nil, style); err != nil {
		t.Fatalf("WriteASS() error: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "Style: Default,Arial,24,&H000000FF,&H000000FF,&H00000000,&H64000000,0,0,0,0,100,100,0,0,1,1,0,2,10,10,0,1") {
		t.Errorf("Style line wrong for plain style:\n%s", out)
	}
}

func TestWriteASS_InvalidColor(t *testing.T) {
	style := config.Style{FontColor: "red", OutlineColor: "#000000"}
	if err := WriteASS(&strings.Builder{}, nil, style); err == nil {
		t.Error("WriteASS() with invalid font color should fail")
	}
}

func TestWriteTempASS(t *testing.T) {
	style := config.Default().Style
	lines := []model.Line{{Start: 0, End: 2 * time.Second, Text: "Temp"}}

	path, err := WriteTempASS(lines, style)
	if err != nil {
		t.Fatalf("WriteTempASS() error: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read temp file: %v", err)
	}
	if !strings.HasSuffix(path, ".ass") {
		t.Errorf("Temp file should have .ass extension, got %s", path)
	}
	if !strings.Contains(string(data), "Dialogue: 0,0:00:00.00,0:00:02.00,Default,,0,0,0,,Temp") {
		t.Errorf("Temp file missing dialogue line:\n%s", data)
	}
}
