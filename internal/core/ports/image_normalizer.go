package ports

// ImageNormalizer bounds and re-encodes uploaded photos before storage.
// Normalize returns nil for nil/empty input and domain.ErrUnsupportedImage
// when the payload cannot be decoded.
type ImageNormalizer interface {
	Normalize(raw []byte) ([]byte, error)
}
