package ports

// ContentHasher computes the key under which scan results are cached.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type ContentHasher interface {
	HashContent(data []byte) string
}
