package subtitle

// Package subtitle parses SRT, ASS/SSA, and CSV subtitle files into cues and
// renders cue lists back out as ASS scripts for burning. Input files are
// decoded to UTF-8 with charset detection so legacy encodings still load.
