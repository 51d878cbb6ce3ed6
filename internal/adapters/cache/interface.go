package cache

// hitResult is the answer to a getOrClaim call. When claimed is true the
// caller owns the entry and must either set it or delete it so other callers
// can make progress.
type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
}
