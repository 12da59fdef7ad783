package catalog

import "embed"

// EmbedExercises contains the built-in exercise definitions.
//
//go:embed exercises/*.yaml
var EmbedExercises embed.FS
