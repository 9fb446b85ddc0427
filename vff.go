// Package wiivff decodes VFF container files, the FAT16-formatted virtual
// disk images embedded in Wii system save data, and exposes their contents
// for listing and extraction. Entries marked deleted but not yet
// overwritten can be recovered on a best-effort basis.
package wiivff

import (
	"io"
	"strings"
)

// Volume is an opened VFF image. Geometry, FAT table and the root region
// are loaded once by Open and immutable afterwards; every operation on a
// Volume is a read-only computation over them.
type Volume struct {
	img        *Image
	geo        Geometry
	fat        *Table
	rootRegion []byte
}

// Open decodes the VFF header, loads the FAT and the root directory region.
// The image length must be known in advance; it bounds all offset
// validation.
func Open(r io.ReaderAt, size int64) (*Volume, error) {
	img := NewImage(r, size)
	geo, err := parseHeader(img)
	if err != nil {
		return nil, err
	}
	fat, err := newTable(img, geo)
	if err != nil {
		return nil, err
	}
	rootRegion, err := img.ReadRegion(geo.RootDirOffset(), rootRegionSize)
	if err != nil {
		return nil, err
	}
	return &Volume{img: img, geo: geo, fat: fat, rootRegion: rootRegion}, nil
}

// OpenBytes opens a VFF image held in memory.
func OpenBytes(b []byte) (*Volume, error) {
	img := NewImageFromBytes(b)
	return Open(img.r, img.size)
}

// Geometry returns the decoded volume geometry.
func (v *Volume) Geometry() Geometry {
	return v.geo
}

// MirrorMismatch reports a disagreement between the two FAT copies, if one
// was observed while loading. The first copy is canonical either way.
func (v *Volume) MirrorMismatch() (uint32, bool) {
	return v.fat.MirrorMismatch()
}

// ClusterSize returns the cluster byte size.
func (v *Volume) ClusterSize() uint32 {
	return v.geo.ClusterSize
}

// Chain resolves a cluster chain through the FAT table.
func (v *Volume) Chain(first uint16) ([]uint16, ChainEnd, error) {
	return v.fat.Chain(first)
}

// ReadCluster returns the full payload of one data cluster.
func (v *Volume) ReadCluster(cluster uint16) ([]byte, error) {
	return v.img.ReadRegion(v.geo.ClusterOffset(cluster), int64(v.geo.ClusterSize))
}

// RootDir parses the fixed root directory region. With showDeleted the
// end-of-directory terminator is not authoritative and every slot is
// classified individually.
func (v *Volume) RootDir(showDeleted bool) (*Directory, error) {
	return parseDirectory(v.rootRegion, "", showDeleted)
}

// ReadDir expands a subdirectory entry of parent into its own Directory by
// resolving its cluster chain and parsing the concatenated payload.
func (v *Volume) ReadDir(parent *Directory, ent DirEntry, showDeleted bool) (*Directory, error) {
	if !ent.IsDir() {
		return nil, formatErrf(ErrInvalidGeometry, "entry %q is not a directory", ent.Name)
	}

	chain, end, err := v.Chain(ent.FirstCluster)
	if err != nil {
		return nil, err
	}
	if ent.Status != Deleted && end != ChainEndEOC {
		return nil, formatErrf(ErrDanglingChain, "directory %q chain ends at %s", ent.Name, end)
	}

	region := make([]byte, 0, uint64(len(chain))*uint64(v.geo.ClusterSize))
	for _, cluster := range chain {
		payload, err := v.ReadCluster(cluster)
		if err != nil {
			return nil, err
		}
		region = append(region, payload...)
	}
	return parseDirectory(region, joinPath(parent.Path, ent.Name), showDeleted)
}

// ReadFile reconstructs the byte content of a file entry. Live entries
// yield exactly the declared size; deleted entries may come back Partial.
func (v *Volume) ReadFile(ent DirEntry) (Content, error) {
	return reconstructContent(v, ent)
}

// Lookup resolves a "/"-separated path inside the volume, matching each
// component case-insensitively the way FAT names are matched.
func (v *Volume) Lookup(path string, showDeleted bool) (DirEntry, error) {
	dir, err := v.RootDir(showDeleted)
	if err != nil {
		return DirEntry{}, err
	}

	components := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(components) == 0 {
		return DirEntry{}, formatErrf(ErrInvalidGeometry, "empty lookup path")
	}

	for i, name := range components {
		ent, ok := findEntry(dir, name, showDeleted)
		if !ok {
			return DirEntry{}, &PathError{Path: path, Missing: name}
		}
		if i == len(components)-1 {
			return ent, nil
		}
		if !ent.IsDir() {
			return DirEntry{}, &PathError{Path: path, Missing: name}
		}
		dir, err = v.ReadDir(dir, ent, showDeleted)
		if err != nil {
			return DirEntry{}, err
		}
	}
	return DirEntry{}, &PathError{Path: path, Missing: path}
}

func findEntry(dir *Directory, name string, showDeleted bool) (DirEntry, bool) {
	for _, ent := range dir.Entries {
		if ent.Status == VolumeLabel || ent.isDotDir() {
			continue
		}
		if ent.Status == Deleted && !showDeleted {
			continue
		}
		if strings.EqualFold(ent.Name, name) {
			return ent, true
		}
	}
	return DirEntry{}, false
}

func joinPath(parent, name string) string {
	return parent + "/" + name
}

// PathError reports a Lookup that did not resolve.
type PathError struct {
	Path    string
	Missing string
}

func (e *PathError) Error() string {
	return "vff: no entry " + e.Missing + " in path " + e.Path
}
