package wiivff

import (
	"bytes"
	"encoding/binary"
)

// Geometry describes the fixed layout of a VFF image. It is derived once
// from the header and immutable afterwards; all region offsets are pure
// functions of it.
type Geometry struct {
	BytesPerSector    uint32
	SectorsPerCluster uint32
	ClusterSize       uint32
	ClusterCount      uint32
	VolumeSize        uint32
	FATCopies         int
	FATSize           uint32 // bytes per copy, rounded up to a cluster boundary
	RootEntryCount    int
}

// FATOffset returns the byte offset of the given FAT copy.
func (g Geometry) FATOffset(copy int) int64 {
	return headerSize + int64(copy)*int64(g.FATSize)
}

// RootDirOffset returns the byte offset of the fixed root directory region.
func (g Geometry) RootDirOffset() int64 {
	return headerSize + int64(g.FATCopies)*int64(g.FATSize)
}

// DataOffset returns the byte offset of the data region. Cluster 2 starts
// here.
func (g Geometry) DataOffset() int64 {
	return g.RootDirOffset() + rootRegionSize
}

// ClusterOffset returns the byte offset of a data cluster.
func (g Geometry) ClusterOffset(cluster uint16) int64 {
	return g.DataOffset() + (int64(cluster)-firstDataCluster)*int64(g.ClusterSize)
}

// DataClusterCount returns the number of usable data clusters.
func (g Geometry) DataClusterCount() uint32 {
	return g.ClusterCount - firstDataCluster
}

func isPowerOfTwo(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// parseHeader interprets the VFF header into a Geometry and validates it
// against the image length. A WC24 signature is rejected before any
// parsing; any other foreign magic is invalid geometry.
func parseHeader(img *Image) (Geometry, error) {
	raw, err := img.ReadRegion(0, headerParsedSize)
	if err != nil {
		return Geometry{}, err
	}

	var hdr headerRecord
	// The VFF header is big-endian, unlike everything inside the embedded
	// filesystem.
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, &hdr); err != nil {
		return Geometry{}, err
	}

	if hdr.Magic == wc24Magic {
		return Geometry{}, unsupportedErrf(ErrWc24Container, "found WC24 signature %q", hdr.Magic)
	}
	if hdr.Magic != vffMagic {
		return Geometry{}, formatErrf(ErrInvalidGeometry, "bad magic %q, expected %q", hdr.Magic, vffMagic)
	}

	clusterSize := uint32(hdr.ClusterSize16) * 16
	if !isPowerOfTwo(clusterSize) {
		return Geometry{}, formatErrf(ErrInvalidGeometry, "cluster size %d is not a non-zero power of two", clusterSize)
	}
	if clusterSize < sectorSize {
		return Geometry{}, formatErrf(ErrInvalidGeometry, "cluster size %d is smaller than a sector", clusterSize)
	}

	clusterCount := hdr.VolumeSize / clusterSize
	if clusterCount > fat16MaxClusters {
		return Geometry{}, formatErrf(ErrInvalidGeometry, "%d clusters implies FAT32, which is not supported", clusterCount)
	}
	if clusterCount <= fat12MaxClusters {
		return Geometry{}, formatErrf(ErrInvalidGeometry, "%d clusters implies FAT12, which is not supported", clusterCount)
	}

	fatSize := clusterCount * 2
	if rem := fatSize % clusterSize; rem != 0 {
		fatSize += clusterSize - rem
	}

	geo := Geometry{
		BytesPerSector:    sectorSize,
		SectorsPerCluster: clusterSize / sectorSize,
		ClusterSize:       clusterSize,
		ClusterCount:      clusterCount,
		VolumeSize:        hdr.VolumeSize,
		FATCopies:         fatCopies,
		FATSize:           fatSize,
		RootEntryCount:    rootRegionSize / dirEntrySize,
	}

	// Fail before any directory entry is parsed if the declared geometry
	// reaches past the actual buffer.
	if int64(geo.VolumeSize) > img.Len() {
		return Geometry{}, formatErrf(ErrTruncatedImage, "declared volume size %#x exceeds image length %#x", geo.VolumeSize, img.Len())
	}
	if geo.DataOffset() > img.Len() {
		return Geometry{}, formatErrf(ErrTruncatedImage, "data region offset %#x exceeds image length %#x", geo.DataOffset(), img.Len())
	}

	return geo, nil
}
