package ports

// FileMatcher decides whether a file is routed to the normalizer.
type FileMatcher interface {
	Match(path string) bool
}
