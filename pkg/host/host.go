package host

// Host resolves selectors to mount targets.
type Host interface {
	// QuerySelector returns the first container matching selector.
	QuerySelector(selector string) (Container, bool)
}

// Container is a mount target.
type Container interface {
	// InnerHTML returns the current markup.
	InnerHTML() string

	// Replace swaps the whole content for html.
	Replace(html string)
}

// HostFunc adapts a function to the Host interface.
type HostFunc func(selector string) (Container, bool)

// QuerySelector implements Host.
func (f HostFunc) QuerySelector(selector string) (Container, bool) {
	return f(selector)
}
