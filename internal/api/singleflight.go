package api

import (
	"golang.org/x/sync/singleflight"
)

// Group collapses concurrent identical reads into one round trip.
type Group struct {
	g singleflight.Group
}

// DoChan starts fn once per key and hands every caller the shared result on a
// channel, so a caller can stop waiting on its own context while the call
// runs on for the others.
func (g *Group) DoChan(key string, fn func() (interface{}, error)) <-chan singleflight.Result {
	return g.g.DoChan(key, fn)
}
