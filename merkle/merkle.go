// Package merkle computes a single root commitment over an ordered list of
// transaction identifiers.
package merkle

import "github.com/weiihann/pqblock/hashing"

// Root returns the Merkle root of leaves using digest for internal nodes.
//
// An empty list yields the zero hash and a single leaf is its own root.
// Otherwise each level is reduced pairwise, left to right, as
// digest(left || right); an odd level duplicates its last element first.
// The caller's slice is not modified.
func Root(leaves []hashing.Hash, digest hashing.Func) hashing.Hash {
	if len(leaves) == 0 {
		return hashing.Hash{}
	}

	level := make([]hashing.Hash, len(leaves), len(leaves)+1)
	copy(level, leaves)

	var buf [2 * hashing.Size]byte

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		// Reduce in place: the write index never overtakes the read index.
		for i := 0; i < len(level); i += 2 {
			copy(buf[:hashing.Size], level[i][:])
			copy(buf[hashing.Size:], level[i+1][:])
			level[i/2] = digest(buf[:])
		}

		level = level[:len(level)/2]
	}

	return level[0]
}
