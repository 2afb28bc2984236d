package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a new globally unique KSUID string.
func NewKSUID() string {
	return ksuid.New().String()
}

// NewRequestID generates a request identifier. Snowflake IDs are used when a
// node can be initialized (node ID from SNOWFLAKE_NODE, defaulting to 1);
// otherwise a KSUID string keeps IDs unique.
func NewRequestID() string {
	nodeEnv := os.Getenv("SNOWFLAKE_NODE")
	if nodeEnv == "" {
		return newSnowflakeIDWithNode(1)
	}
	nodeID, err := strconv.ParseInt(nodeEnv, 10, 64)
	if err != nil {
		return newSnowflakeIDWithNode(1)
	}
	return newSnowflakeIDWithNode(nodeID)
}

func newSnowflakeIDWithNode(nodeID int64) string {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return NewKSUID()
	}
	return node.Generate().String()
}
