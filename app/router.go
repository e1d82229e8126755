package app

import (
	"fmt"
	"reflect"

	union "github.com/uniongov/union-core/types"
)

type route struct {
	module  string
	msgType reflect.Type
	handler union.Handler
}

// Router maps endpoint methods to the handlers of the modules serving them
type Router struct {
	routes map[string]route
}

// NewRouter returns an empty router
func NewRouter() *Router {
	return &Router{routes: make(map[string]route)}
}

// AddRoute registers the module's handler for each of the given messages. Messages must be pointers.
// Panics if a method is registered twice.
func (r *Router) AddRoute(module string, handler union.Handler, msgs ...union.Msg) *Router {
	for _, msg := range msgs {
		msgType := reflect.TypeOf(msg)
		if msgType.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("message %s of module %s must be a pointer", msgType, module))
		}

		if existing, ok := r.routes[msg.Route()]; ok {
			panic(fmt.Sprintf("method %s of module %s is already served by module %s", msg.Route(), module, existing.module))
		}

		r.routes[msg.Route()] = route{module: module, msgType: msgType.Elem(), handler: handler}
	}

	return r
}

// HasRoute returns true if the method is served by any module
func (r *Router) HasRoute(method string) bool {
	_, ok := r.routes[method]
	return ok
}

// NewMsg returns an empty message for the given method
func (r *Router) NewMsg(method string) (union.Msg, bool) {
	route, ok := r.routes[method]
	if !ok {
		return nil, false
	}

	return reflect.New(route.msgType).Interface().(union.Msg), true
}

// Handler returns the handler serving the given method
func (r *Router) Handler(method string) (union.Handler, bool) {
	route, ok := r.routes[method]
	return route.handler, ok
}
