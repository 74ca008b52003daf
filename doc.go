// Package barcode reads QR Code, EAN-13, EAN-8, UPC-A, UPC-E, Code 39,
// Code 128 and Interleaved 2 of 5 symbols out of a monochrome raster
// image. It does not decode Data Matrix, Aztec or PDF417 (they round-trip
// as recognized Format values with a stub Reader each), and it does not
// decode image containers (PNG/JPEG/etc.) -- callers hand it luminance
// pixels via NewBitmapFromGray or NewBitmapFromRows.
//
// The package supports:
//   - Locating and decoding a single symbol (Decode)
//   - Locating and decoding every symbol in an image (DecodeMulti)
//   - Restricting the search to specific formats and enabling the slower
//     TryHarder 1D rotation retry (Hints)
//
// Basic usage:
//
//	bitmap, err := barcode.NewBitmapFromGray(pix, width, height)
//	result, err := barcode.Decode(bitmap, barcode.Hints{})
//	fmt.Println(result.Text, result.Format)
package barcode
