// Package filters provides the PDF stream filters used when writing and
// reading page images.
//
// # Encoders
//
// FlateEncode compresses a stream with zlib. Image rows can first be passed
// through PNGUpEncode so that the stream carries a PNG "Up" predictor:
//
//	rows := filters.PNGUpEncode(pixels, bytesPerRow)
//	stream, err := filters.FlateEncode(rows, zlib.BestCompression)
//
// ASCIIHexEncode produces the hexadecimal string form used for CID text
// and ToUnicode CMaps.
//
// # Decoders
//
// FlateDecode reverses FlateEncode and applies PNG predictors when the
// decode parameters ask for them:
//
//	params := filters.Params{
//	    "Predictor": 15,
//	    "Columns":   1200,
//	    "Colors":    1,
//	}
//	decoded, err := filters.FlateDecode(data, params)
//
// CCITTFaxDecode and FaxImage decode CCITT Group 3 and Group 4 bi-level
// data, which is how raw fax files and many scanned pages are stored.
package filters
