// Package imaging is the codec layer of the segmenter: it reads image files
// into pixel buffers and writes buffers back out.
//
// # Formats
//
// Decoding is chosen by file extension:
//   - .png, .jpg/.jpeg, .gif: standard library decoders
//   - .bmp, .tif/.tiff, .webp: golang.org/x/image
//   - .tga: github.com/ftrvxmtrx/tga
//
// Files with any other extension are sniffed with image.Decode.
//
// Encoding covers PNG, JPEG, GIF, BMP and TIFF through
// github.com/disintegration/imaging, lossless WebP through
// github.com/HugoSmits86/nativewebp and TGA through ftrvxmtrx/tga.
//
// # Coordinate System
//
// Buffers always have their origin at (0,0), X increasing rightward and Y
// downward, whatever the bounds of the decoded image were.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Decode and Encode are
// stateless.
//
// # Error Handling
//
// Every failure to open or decode an input is reported as a *DecodeError so
// callers can stop before any processing starts. Encoding failures are
// wrapped with the output path.
package imaging
