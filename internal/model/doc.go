package model

// Package model defines the value types shared between the burn service,
// the desktop UI, and the CLI: burn tasks, task statuses, and subtitle cues.
