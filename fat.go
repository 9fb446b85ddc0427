package wiivff

import (
	"encoding/binary"
)

// fatEntry is a single FAT16 link value.
type fatEntry uint16

func (e fatEntry) IsFree() bool {
	return e == fat16Free
}

func (e fatEntry) IsBad() bool {
	return e == fat16Bad
}

func (e fatEntry) IsEOC() bool {
	return e >= fat16EOC
}

// ChainEnd reports how a cluster chain terminated.
type ChainEnd int

const (
	// ChainEndEOC is the regular end-of-chain marker.
	ChainEndEOC ChainEnd = iota
	// ChainEndFree means the chain ran into a free cluster. For a live
	// entry this is a dangling chain; deletion does not reliably clear
	// the chain, so for deleted entries it is tolerated.
	ChainEndFree
	// ChainEndBad means the chain ran into the bad-cluster marker.
	ChainEndBad
	// ChainEndOutOfRange means the chain pointed outside the data
	// cluster window.
	ChainEndOutOfRange
)

func (e ChainEnd) String() string {
	switch e {
	case ChainEndEOC:
		return "end-of-chain"
	case ChainEndFree:
		return "free cluster"
	case ChainEndBad:
		return "bad cluster"
	case ChainEndOutOfRange:
		return "out of range"
	}
	return "unknown"
}

// Table is the File Allocation Table of a volume, loaded once from the
// first copy and immutable afterwards.
type Table struct {
	entries      []fatEntry
	clusterCount uint32

	// First cluster index where the second FAT copy disagreed with the
	// first, -1 if the copies match. Warning-only: copy 0 always wins.
	mismatch int64
}

// newTable loads FAT copy 0 and compares it against copy 1.
func newTable(img *Image, geo Geometry) (*Table, error) {
	canonical, err := img.ReadRegion(geo.FATOffset(0), int64(geo.FATSize))
	if err != nil {
		return nil, err
	}
	mirror, err := img.ReadRegion(geo.FATOffset(1), int64(geo.FATSize))
	if err != nil {
		return nil, err
	}

	t := &Table{
		entries:      make([]fatEntry, geo.ClusterCount),
		clusterCount: geo.ClusterCount,
		mismatch:     -1,
	}
	for i := range t.entries {
		t.entries[i] = fatEntry(binary.LittleEndian.Uint16(canonical[i*2:]))
		if t.mismatch < 0 && fatEntry(binary.LittleEndian.Uint16(mirror[i*2:])) != t.entries[i] {
			t.mismatch = int64(i)
		}
	}
	return t, nil
}

// MirrorMismatch reports the first cluster index at which the second FAT
// copy disagrees with the first, if any.
func (t *Table) MirrorMismatch() (uint32, bool) {
	if t.mismatch < 0 {
		return 0, false
	}
	return uint32(t.mismatch), true
}

// isDataCluster reports whether v indexes a usable data cluster.
func (t *Table) isDataCluster(v uint16) bool {
	return v >= firstDataCluster && uint32(v) < t.clusterCount
}

// Chain resolves the ordered cluster sequence starting at first. The chain
// ends at an end-of-chain marker, a free cluster, the bad-cluster marker or
// a link outside the data window; the terminating condition is returned
// alongside the chain. Chain length is capped at the total cluster count,
// so a cyclic table fails with ErrChainCycle instead of looping.
func (t *Table) Chain(first uint16) ([]uint16, ChainEnd, error) {
	var chain []uint16
	current := first
	for t.isDataCluster(current) {
		if uint32(len(chain)) >= t.clusterCount {
			return nil, 0, formatErrf(ErrChainCycle, "chain from cluster %d exceeds %d clusters", first, t.clusterCount)
		}
		chain = append(chain, current)
		current = uint16(t.entries[current])
	}

	end := ChainEndOutOfRange
	switch e := fatEntry(current); {
	case e.IsEOC():
		end = ChainEndEOC
	case e.IsFree():
		end = ChainEndFree
	case e.IsBad():
		end = ChainEndBad
	}
	return chain, end, nil
}
