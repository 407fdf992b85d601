package gointercept

// Container collects decorators for one interface and applies them as a unit.
// Decorators run in registration order on the way in and in reverse on the way out.
type Container[I any] struct {
	decorators []Decorator[I]
}

func (c *Container[I]) Register(decorator Decorator[I]) {
	c.decorators = append(c.decorators, decorator)
}

// RegisterFor registers decorator for the named methods only.
func (c *Container[I]) RegisterFor(decorator Decorator[I], methods ...string) {
	c.Register(Only(decorator, methods...))
}

func (c *Container[I]) Len() int {
	return len(c.decorators)
}

func (c *Container[I]) Decorate(h Handler[I]) Handler[I] {
	for i := len(c.decorators) - 1; i >= 0; i-- {
		h = c.decorators[i].Decorate(h)
	}
	return h
}
