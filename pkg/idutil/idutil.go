package idutil

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// NewID returns a time-ordered unique id. Content records use these ids so
// that default listing order follows creation order.
func NewID() int64 {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})

	return node.Generate().Int64()
}
