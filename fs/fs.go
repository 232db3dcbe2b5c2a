// Package appfs embeds the files shipped inside the binary.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
