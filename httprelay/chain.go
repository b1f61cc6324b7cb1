package httprelay

import (
	"sync"

	"github.com/go-resty/resty/v2"
)

// InterceptorID identifies an interceptor registered on an instance
// chain. IDs are issued per chain and never reused, so an ejected slot
// cannot be confused with a later registration.
type InterceptorID int

// NotRegistered is the sentinel returned when a declaration did not
// result in a chain registration (an object-form declaration without a
// success callback, or a nil bare function).
const NotRegistered InterceptorID = -1

// requestChain holds the request-side interceptors of one instance.
// Each entry pairs a success callback with an optional error callback.
type requestChain struct {
	mu     sync.Mutex
	nextID InterceptorID
	items  []requestItem
}

type requestItem struct {
	id          InterceptorID
	onFulfilled RequestHook
	onRejected  ErrorHook
}

func (c *requestChain) use(onFulfilled RequestHook, onRejected ErrorHook) InterceptorID {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.items = append(c.items, requestItem{id: id, onFulfilled: onFulfilled, onRejected: onRejected})
	return id
}

func (c *requestChain) eject(id InterceptorID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if it.id == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *requestChain) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// apply runs every success callback in registration order. When a
// callback fails, its paired error callback may recover (return nil) or
// transform the error; with no error callback the failure propagates
// as-is and aborts the request.
func (c *requestChain) apply(req *resty.Request) error {
	c.mu.Lock()
	items := make([]requestItem, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	for _, it := range items {
		if err := it.onFulfilled(req); err != nil {
			if it.onRejected != nil {
				err = it.onRejected(err)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// responseChain holds the response-side interceptors of one instance.
type responseChain struct {
	mu     sync.Mutex
	nextID InterceptorID
	items  []responseItem
}

type responseItem struct {
	id          InterceptorID
	onFulfilled ResponseHook
	onRejected  ErrorHook
}

func (c *responseChain) use(onFulfilled ResponseHook, onRejected ErrorHook) InterceptorID {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.items = append(c.items, responseItem{id: id, onFulfilled: onFulfilled, onRejected: onRejected})
	return id
}

func (c *responseChain) eject(id InterceptorID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if it.id == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *responseChain) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *responseChain) apply(resp *resty.Response) error {
	c.mu.Lock()
	items := make([]responseItem, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	for _, it := range items {
		if err := it.onFulfilled(resp); err != nil {
			if it.onRejected != nil {
				err = it.onRejected(err)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
