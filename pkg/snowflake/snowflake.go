package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.RWMutex
	node *snowflake.Node
)

func init() {
	node, _ = snowflake.NewNode(1)
}

// SetNode 按实例编号重建节点，编号范围 0-1023
func SetNode(id int64) error {
	n, err := snowflake.NewNode(id)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// GenID 用户、资料共用的全局 ID
func GenID() int64 {
	mu.RLock()
	defer mu.RUnlock()
	return node.Generate().Int64()
}
