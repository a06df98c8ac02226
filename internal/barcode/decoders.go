package barcode

// Register a broad set of image decoders so the renderer can crop whatever
// raster format an Encoder wrote, before normalising it to PNG.
import (
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)
