package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when encoding parameters are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidDimensions is returned for non-positive width or height
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidComponents is returned when the component count is not 1 or 3
	ErrInvalidComponents = errors.New("invalid component count (must be 1 or 3)")

	// ErrInvalidBitDepth is returned when bits per sample is outside 2-16
	ErrInvalidBitDepth = errors.New("invalid bit depth (must be 2-16)")

	// ErrInvalidNear is returned when the near-lossless bound is outside 0-255
	ErrInvalidNear = errors.New("invalid near-lossless bound (must be 0-255)")

	// ErrBufferSize is returned when a pixel buffer does not match the frame
	ErrBufferSize = errors.New("pixel buffer length does not match frame")
)
