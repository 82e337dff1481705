package ffmpeg

// Package ffmpeg constructs command lines for the external ffmpeg binary:
// the subtitles filter expression with libass force_style styling, encoder
// arguments, output path derivation, and duration probing via ffprobe. It
// never launches the burn itself; that is the burn service's job.
