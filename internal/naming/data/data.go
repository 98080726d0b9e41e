// Package data embeds the reference colour tables.
package data

import "embed"

// SurveyFile is the name of the XKCD survey table within FS.
const SurveyFile = "xkcd.yaml"

// FS holds the embedded reference tables.
//
//go:embed *.yaml
var FS embed.FS
