// Package layout derives the on-disk directory structure of a shard's
// remote translog data inside a repository. Path derivation is a pure
// function of the repository root, index UUID and shard id; nothing here
// touches the filesystem, so a resolved path may legitimately not exist.
package layout

import (
	"path/filepath"

	"github.com/INLOpen/translogctl/core"
)

// ShardPaths holds the resolved path chain for one shard, from the
// repository base down to the translog data directory.
type ShardPaths struct {
	// Base is <root>/rem, the remote-store area of the repository.
	Base string
	// Index is the per-index directory, keyed by the index UUID.
	Index string
	// Shard is the per-shard directory below the index.
	Shard string
	// Translog is the translog data directory holding primary-term
	// subdirectories.
	Translog string
}

// Resolve composes the shard path chain. The layout is a fixed convention
// of the remote storage subsystem:
//
//	<root>/rem/<indexUUID>/<shardID>/translog/data
func Resolve(root, indexUUID, shardID string) ShardPaths {
	base := filepath.Join(root, core.RemoteStoreDirName)
	index := filepath.Join(base, indexUUID)
	shard := filepath.Join(index, shardID)
	return ShardPaths{
		Base:     base,
		Index:    index,
		Shard:    shard,
		Translog: filepath.Join(shard, core.TranslogDirName, core.TranslogDataDirName),
	}
}
