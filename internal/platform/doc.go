package platform

// Package platform contains OS/platform integration: filesystem helpers and
// OS open/reveal for finished output files.
