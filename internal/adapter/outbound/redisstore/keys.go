package redisstore

import (
	"fmt"
	"strings"

	"github.com/anthanhphan/go-sheet-charts/internal/port"
)

const (
	fileKeyPrefix  = "file:"
	chartKeyPrefix = "chart:"
)

// fileKey builds the primary key for a file record.
func fileKey(id string) string {
	return fileKeyPrefix + id
}

// chartKey builds the primary key for a chart record.
func chartKey(id string) string {
	return chartKeyPrefix + id
}

// fileOwnerIndex is a sorted set of a user's file ids scored by creation
// time, standing in for the (ownerId, createdAt) composite index.
func fileOwnerIndex(ownerID string) string {
	return "files:owner:" + ownerID
}

// chartOwnerIndex is the chart counterpart of fileOwnerIndex.
func chartOwnerIndex(ownerID string) string {
	return "charts:owner:" + ownerID
}

// chartFileIndex is the set of chart ids referencing a file, backing the
// cascade delete and the reconciler.
func chartFileIndex(fileID string) string {
	return "charts:file:" + fileID
}

// eventChannels returns the keyspace-notification channels carrying expiry
// and explicit deletions for the given logical database.
func eventChannels(db int) []string {
	return []string{
		fmt.Sprintf("__keyevent@%d__:expired", db),
		fmt.Sprintf("__keyevent@%d__:del", db),
	}
}

// parseEventKey maps a notified key back to a record kind and id. Keys
// outside the two record namespaces (index keys, foreign data) return ok
// false and are ignored.
func parseEventKey(key string) (port.DeletionEvent, bool) {
	switch {
	case strings.HasPrefix(key, fileKeyPrefix):
		return port.DeletionEvent{Kind: port.KindFile, ID: key[len(fileKeyPrefix):]}, true
	case strings.HasPrefix(key, chartKeyPrefix):
		return port.DeletionEvent{Kind: port.KindChart, ID: key[len(chartKeyPrefix):]}, true
	}
	return port.DeletionEvent{}, false
}
