package route

// RedirectNavigator remembers the last requested path so an HTTP handler
// can turn it into a 303 response after the intent has been applied.
type RedirectNavigator struct {
	target string
	count  int
}

func (n *RedirectNavigator) GoTo(path string) {
	n.target = path
	n.count++
}

// Target returns the requested path, or "" if nothing navigated.
func (n *RedirectNavigator) Target() string { return n.target }

// Requests reports how many navigation requests were issued.
func (n *RedirectNavigator) Requests() int { return n.count }
