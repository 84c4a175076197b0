// Package text holds the reading-direction model shared by the layout and
// wrap packages.
//
// # Reading Direction
//
// The reflow engine scans word pieces, hyphens and justification edges in
// reading order. [Direction] selects left-to-right or right-to-left
// processing:
//
//	cfg := layout.DefaultConfig()
//	cfg.Direction = text.RTL
//
// For recognized word text, [DetectDirection] reports the dominant script
// direction so overlays can be tagged correctly.
package text
