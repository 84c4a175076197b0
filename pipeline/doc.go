// Package pipeline turns source page bitmaps into reflowed device pages.
//
// Each source page goes through the same depth-first descent:
//
//  1. The configured source margins are cut away.
//  2. The page is searched for two-column layouts, repeatedly, top to
//     bottom. Consecutive column pairs whose divider stays put are read as
//     one pair of columns; with four columns enabled each column is
//     searched again.
//  3. Every column is split vertically into blocks at unusually large row
//     gaps, and each block's justification is analyzed.
//  4. Rows are wrapped into lines by a [wrap.Engine] and appended to a
//     [pages.Canvas].
//  5. Whenever more than a page of rows is waiting, pages are cut from the
//     canvas and handed to the [PageWriter].
//
// The wrap buffer and a few running values ([State]) carry over from one
// source page to the next, so text flows across page boundaries. Call
// [Pipeline.Finish] after the last page to flush everything.
//
// Basic usage:
//
//	p, err := pipeline.New(pipeline.DefaultConfig(), pipeline.PageWriterFunc(func(pg *model.Page) error {
//	    return writer.AddPage(pg)
//	}))
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < src.PageCount(); i++ {
//	    bmp, err := src.Page(i, 300, false)
//	    if err != nil {
//	        p.SkipPage(i+1, err)
//	        continue
//	    }
//	    if err := p.AddPage(bmp, i+1); err != nil {
//	        return err
//	    }
//	}
//	return p.Finish()
//
// Nothing in a Pipeline is safe for concurrent use. Separate documents
// can be processed in parallel with separate pipelines.
package pipeline
