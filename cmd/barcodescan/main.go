// Command barcodescan decodes QR Code and 1D barcodes out of PNG/JPEG/GIF
// image files from the command line.
//
// Usage:
//
//	barcodescan [flags] <image-file> [image-file...]
package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepteams/barcode"
)

var (
	flagTryHarder bool
	flagPure      bool
	flagMulti     bool
)

var rootCmd = &cobra.Command{
	Use:   "barcodescan [flags] <image-file> [image-file...]",
	Short: "Detect and decode barcodes in image files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.Flags().BoolVar(&flagTryHarder, "try-harder", false, "spend more time looking for a symbol")
	rootCmd.Flags().BoolVar(&flagPure, "pure", false, "hint that the image is a cropped, axis-aligned symbol")
	rootCmd.Flags().BoolVar(&flagMulti, "multi", false, "look for every symbol in the image instead of just the first")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	exitCode := 0
	for _, path := range args {
		results, err := scanFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "barcodescan: %s: %v\n", path, err)
			exitCode = 1
			continue
		}
		for _, r := range results {
			if len(args) > 1 {
				fmt.Printf("%s: ", path)
			}
			fmt.Printf("[%s] %s\n", r.Format, r.Text)
		}
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

func scanFile(path string) ([]*barcode.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	bitmap, err := barcode.NewBitmapFromRows(func(y int) []byte {
		row := make([]byte, width)
		for x := 0; x < width; x++ {
			row[x] = grayAt(img, bounds.Min.X+x, bounds.Min.Y+y)
		}
		return row
	}, width, height)
	if err != nil {
		return nil, err
	}

	hints := barcode.Hints{TryHarder: flagTryHarder, PureBarcode: flagPure}
	if flagMulti {
		return barcode.DecodeMulti(bitmap, hints)
	}
	result, err := barcode.Decode(bitmap, hints)
	if err != nil {
		return nil, err
	}
	return []*barcode.Result{result}, nil
}

// grayAt converts a pixel to the ITU-R 601 luma value Decode expects,
// using the same weights as the standard library's color.GrayModel.
func grayAt(img image.Image, x, y int) byte {
	r, g, b, _ := img.At(x, y).RGBA()
	// RGBA returns 16-bit-per-channel values; weight them, then shift the
	// 16-bit weighted sum down to 8 bits.
	y16 := (19595*r + 38470*g + 7471*b + 1<<15) >> 24
	if y16 > 255 {
		y16 = 255
	}
	return byte(y16)
}
