package domain

// Locate returns nil if p addresses a node, or the not-found error of the
// first level that does not resolve. The empty path addresses the root.
func (c *Checklist) Locate(p Path) error {
	if len(p) > DepthSubtask {
		return ErrInvalidPath
	}
	for depth := DepthCategory; depth <= len(p); depth++ {
		prefix := p[:depth]
		var ok bool
		if prefix.IsTask() {
			_, ok = c.Task(prefix)
		} else {
			_, ok = c.Group(prefix)
		}
		if !ok {
			return NotFoundError(prefix)
		}
	}
	return nil
}
