package idutil

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Generator interface {
	Generate() int64
}

type snowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator returns time-ordered ids. Every running process must
// use a different node id.
func NewSnowflakeGenerator(nodeID int64) (*snowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &snowflakeGenerator{node: node}, nil
}

func (g *snowflakeGenerator) Generate() int64 {
	return g.node.Generate().Int64()
}

func Time(id int64) time.Time {
	return time.UnixMilli(snowflake.ParseInt64(id).Time())
}
