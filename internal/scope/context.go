package scope

import "net/url"

// Context owns the current filter scope and its navigable URL. Subscribers
// (the board controller) are told when the scope actually changes; setting
// the same scope twice is a no-op so round-tripping a value through the UI
// never triggers a redundant reload.
type Context struct {
	location    *url.URL
	current     Scope
	subscribers []func(Scope)
}

// NewContext parses the initial scope from a location string. A malformed
// location or team id defaults to Mine on a bare URL.
func NewContext(rawURL string) *Context {
	u, err := url.Parse(rawURL)
	if err != nil {
		u = &url.URL{Path: "/tasks"}
	}
	return &Context{
		location: u,
		current:  FromURL(u),
	}
}

// Current returns the active scope.
func (c *Context) Current() Scope {
	return c.current
}

// Location returns the navigable URL reflecting the active scope.
func (c *Context) Location() string {
	return c.location.String()
}

// Subscribe registers a callback invoked after every effective scope change.
func (c *Context) Subscribe(fn func(Scope)) {
	c.subscribers = append(c.subscribers, fn)
}

// Set applies a new scope, rewrites the URL and notifies subscribers. The
// Scope type only admits Mine or a positive team id, so no further
// validation is needed here. An unchanged scope is an idempotent no-op.
func (c *Context) Set(s Scope) {
	if s == c.current {
		return
	}
	c.current = s
	s.ApplyToURL(c.location)
	for _, fn := range c.subscribers {
		fn(s)
	}
}
