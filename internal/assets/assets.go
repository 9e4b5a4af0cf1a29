// Package assets holds the data compiled into the binary.
package assets

import "golang.org/x/image/font/gofont/gobold"

// FontTTF is the last font tried before the bitmap fallback. It ships with
// the binary so a machine without system fonts still renders outline text.
var FontTTF = gobold.TTF
