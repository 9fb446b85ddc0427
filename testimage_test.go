package wiivff

import (
	"encoding/binary"
)

// testEntry describes one directory slot for the image builder.
type testEntry struct {
	name      string
	ext       string
	attr      byte
	first     uint16
	size      uint32
	deleted   bool
	writeDate uint16
	writeTime uint16
}

// imageBuilder assembles a synthetic VFF image in memory. The buffer is
// exactly the declared volume size, like a real capture, so clusters near
// the end of the declared window are intentionally unbacked.
type imageBuilder struct {
	clusterSize  uint32
	clusterCount uint32
	buf          []byte
}

func newImageBuilder(clusterSize, clusterCount uint32) *imageBuilder {
	volumeSize := clusterSize * clusterCount
	b := &imageBuilder{
		clusterSize:  clusterSize,
		clusterCount: clusterCount,
		buf:          make([]byte, volumeSize),
	}
	copy(b.buf[0:4], vffMagic[:])
	binary.BigEndian.PutUint32(b.buf[8:], volumeSize)
	binary.BigEndian.PutUint16(b.buf[12:], uint16(clusterSize/16))
	return b
}

func (b *imageBuilder) fatSize() uint32 {
	size := b.clusterCount * 2
	if rem := size % b.clusterSize; rem != 0 {
		size += b.clusterSize - rem
	}
	return size
}

func (b *imageBuilder) fatOffset(copy int) uint32 {
	return headerSize + uint32(copy)*b.fatSize()
}

func (b *imageBuilder) rootOffset() uint32 {
	return headerSize + fatCopies*b.fatSize()
}

func (b *imageBuilder) dataOffset() uint32 {
	return b.rootOffset() + rootRegionSize
}

// setFAT writes a link value into both FAT copies.
func (b *imageBuilder) setFAT(cluster, value uint16) {
	for copy := 0; copy < fatCopies; copy++ {
		b.setFATCopy(copy, cluster, value)
	}
}

// setFATCopy writes a link value into a single FAT copy, for mirror
// mismatch tests.
func (b *imageBuilder) setFATCopy(copy int, cluster, value uint16) {
	binary.LittleEndian.PutUint16(b.buf[b.fatOffset(copy)+uint32(cluster)*2:], value)
}

// setChain links the given clusters in order and terminates the chain.
func (b *imageBuilder) setChain(clusters ...uint16) {
	for i := 0; i < len(clusters)-1; i++ {
		b.setFAT(clusters[i], clusters[i+1])
	}
	b.setFAT(clusters[len(clusters)-1], 0xFFFF)
}

// fillCluster fills a data cluster's payload with one byte value.
func (b *imageBuilder) fillCluster(cluster uint16, value byte) {
	off := b.dataOffset() + uint32(cluster-firstDataCluster)*b.clusterSize
	for i := uint32(0); i < b.clusterSize; i++ {
		b.buf[off+i] = value
	}
}

// setClusterBytes writes data at the start of a cluster's payload.
func (b *imageBuilder) setClusterBytes(cluster uint16, data []byte) {
	off := b.dataOffset() + uint32(cluster-firstDataCluster)*b.clusterSize
	copy(b.buf[off:], data)
}

// encodeEntry serializes a 32-byte directory slot.
func encodeEntry(e testEntry) []byte {
	slot := make([]byte, dirEntrySize)
	for i := 0; i < 11; i++ {
		slot[i] = ' '
	}
	copy(slot[0:8], e.name)
	copy(slot[8:11], e.ext)
	if e.deleted {
		slot[0] = deletedMarker
	}
	slot[11] = e.attr
	binary.LittleEndian.PutUint16(slot[22:], e.writeTime)
	binary.LittleEndian.PutUint16(slot[24:], e.writeDate)
	binary.LittleEndian.PutUint16(slot[26:], e.first)
	binary.LittleEndian.PutUint32(slot[28:], e.size)
	return slot
}

// putEntry serializes a 32-byte directory slot at the given offset.
func (b *imageBuilder) putEntry(off uint32, e testEntry) {
	copy(b.buf[off:off+dirEntrySize], encodeEntry(e))
}

// putRootEntry fills a slot of the fixed root directory region.
func (b *imageBuilder) putRootEntry(slot int, e testEntry) {
	b.putEntry(b.rootOffset()+uint32(slot)*dirEntrySize, e)
}

// putClusterEntry fills a slot of a directory region held in a data
// cluster.
func (b *imageBuilder) putClusterEntry(cluster uint16, slot int, e testEntry) {
	b.putEntry(b.dataOffset()+uint32(cluster-firstDataCluster)*b.clusterSize+uint32(slot)*dirEntrySize, e)
}

func (b *imageBuilder) bytes() []byte {
	return b.buf
}

// defaultBuilder is the geometry most tests use: 512-byte clusters, 0x1000
// clusters total (the smallest count inside the FAT16 window).
func defaultBuilder() *imageBuilder {
	return newImageBuilder(512, 0x1000)
}

// rawHeader builds only a header prefix with the given fields, padded to
// the full header size, for geometry error tests.
func rawHeader(magic [4]byte, volumeSize uint32, clusterSize16 uint16) []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], magic[:])
	binary.BigEndian.PutUint32(buf[8:], volumeSize)
	binary.BigEndian.PutUint16(buf[12:], clusterSize16)
	return buf
}
