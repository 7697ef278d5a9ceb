package rpeg

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidImage indicates an image whose pixels do not match its header.
	ErrInvalidImage = errors.New("invalid image")
	// ErrUnsupportedDimensions indicates dimensions the block codec cannot handle.
	ErrUnsupportedDimensions = errors.New("unsupported dimensions")
	// ErrMalformedStream indicates a compressed stream that does not follow the format.
	ErrMalformedStream = errors.New("malformed compressed stream")
	// ErrUnknownEnvelope indicates an unsupported stream envelope name.
	ErrUnknownEnvelope = errors.New("unknown envelope")
	// ErrUnknownImageFormat indicates an unsupported image format.
	ErrUnknownImageFormat = errors.New("unknown image format")
	// ErrStreamHeaderRead indicates the compressed stream header read failed.
	ErrStreamHeaderRead = errors.New("reading stream header failed")
	// ErrStreamWordsRead indicates reading compressed words failed.
	ErrStreamWordsRead = errors.New("reading stream words failed")
	// ErrStreamHeaderWrite indicates the compressed stream header write failed.
	ErrStreamHeaderWrite = errors.New("writing stream header failed")
	// ErrStreamWordsWrite indicates writing compressed words failed.
	ErrStreamWordsWrite = errors.New("writing stream words failed")
	// ErrLZ4Decode indicates opening or reading an LZ4 envelope failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrLZ4Encode indicates writing an LZ4 envelope failed.
	ErrLZ4Encode = errors.New("LZ4 encode failed")
	// ErrZstdDecode indicates opening or reading a zstd envelope failed.
	ErrZstdDecode = errors.New("zstd decode failed")
	// ErrZstdEncode indicates writing a zstd envelope failed.
	ErrZstdEncode = errors.New("zstd encode failed")
	// ErrPNMHeader indicates a malformed PPM header.
	ErrPNMHeader = errors.New("malformed PPM header")
	// ErrPNMData indicates truncated or out-of-range PPM samples.
	ErrPNMData = errors.New("malformed PPM data")
	// ErrPNMWrite indicates writing PPM data failed.
	ErrPNMWrite = errors.New("writing PPM failed")
	// ErrDDSHeaderRead indicates DDS header read failed.
	ErrDDSHeaderRead = errors.New("reading DDS header failed")
	// ErrDDSDX10Read indicates DDS DX10 header read failed.
	ErrDDSDX10Read = errors.New("reading DDS DX10 header failed")
	// ErrDDSDataRead indicates reading the DDS top level failed.
	ErrDDSDataRead = errors.New("reading DDS data failed")
	// ErrUnknownDDSFormat indicates an unsupported DDS pixel format.
	ErrUnknownDDSFormat = errors.New("unknown DDS format")
	// ErrDecodeImage indicates image decode failed.
	ErrDecodeImage = errors.New("decode image failed")
	// ErrEncodeImage indicates image encode failed.
	ErrEncodeImage = errors.New("encode image failed")
	// ErrWriteDDSMagic indicates DDS magic write failed.
	ErrWriteDDSMagic = errors.New("writing DDS magic failed")
	// ErrWriteDDSHeader indicates DDS header write failed.
	ErrWriteDDSHeader = errors.New("writing DDS header failed")
	// ErrWriteDDSData indicates DDS pixel data write failed.
	ErrWriteDDSData = errors.New("writing DDS data failed")
	// ErrOpenFile indicates a file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrCloseFile indicates flushing or closing an output file failed.
	ErrCloseFile = errors.New("close file failed")
)
