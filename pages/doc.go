// Package pages assembles reflowed output and slices it into device pages.
//
// # Canvas
//
// A [Canvas] is a tall, growable bitmap as wide as the device's text area.
// Reflowed lines and unwrapped regions are appended to it from top to
// bottom. Source regions are scaled from their own resolution to the device
// resolution and shrunk when wider than the text area:
//
//	canvas := pages.NewCanvas(cfg, recognizer)
//	canvas.AddRegion(pages.RegionAdd{
//	    Source: bmp,
//	    C1: 100, R1: 200, C2: 900, R2: 260,
//	    DPI:  300,
//	    Just: layout.JustifyLeft,
//	})
//	canvas.AddGap(40, 300) // 40 source pixels of white space
//
// When a recognizer is supplied, each word box of an added region is run
// through it and the recognized text is kept as a [model.Word] positioned in
// canvas coordinates.
//
// # Paginator
//
// A [Paginator] finds break rows in the canvas and renders finished pages.
// Breaks fall inside runs of blank rows; a run at least GoodBreakFraction of
// the page width tall is preferred, and a break past the page height is
// only taken when FitToPage allows the page to be shrunk:
//
//	p := pages.NewPaginator(cfg)
//	for _, page := range p.Publish(canvas, false) {
//	    writer.AddPage(page)
//	}
//	final := p.Publish(canvas, true) // flush whatever is left
//
// Publishing only moves rows from the canvas to pages. The rows held in
// all published pages plus the rows left on the canvas always equal the
// rows ever appended.
package pages
