package wiivff

import (
	"bytes"
	"encoding/binary"
	"strings"
	"time"
)

// Status classifies a directory slot.
type Status int

const (
	Live Status = iota
	Deleted
	Unused
	VolumeLabel
	SubdirectoryReference
)

func (s Status) String() string {
	switch s {
	case Live:
		return "live"
	case Deleted:
		return "deleted"
	case Unused:
		return "unused"
	case VolumeLabel:
		return "volume-label"
	case SubdirectoryReference:
		return "directory"
	}
	return "unknown"
}

// DirEntry is one decoded directory slot.
type DirEntry struct {
	// Name is the reconstructed 8.3 name. For deleted entries the first
	// character on disk holds the deletion marker, not the original
	// character; it is rendered as '_'.
	Name         string
	Status       Status
	Attribute    byte
	FirstCluster uint16
	Size         uint32
	Modified     time.Time
}

// IsDir reports whether the entry's directory attribute bit is set. Deleted
// subdirectory slots keep the bit, so this is not equivalent to
// Status == SubdirectoryReference.
func (e DirEntry) IsDir() bool {
	return e.Attribute&AttrDirectory != 0
}

// isDotDir reports the "." and ".." self references present in every
// subdirectory region.
func (e DirEntry) isDotDir() bool {
	return e.IsDir() && (e.Name == "." || e.Name == "..")
}

// Directory is one decoded directory region: its reconstructed path from
// the root plus the entries in on-disk slot order.
type Directory struct {
	Path    string
	Entries []DirEntry

	// SkippedLongNames counts slots with the long-filename attribute
	// combination, which are unsupported and omitted rather than failing
	// the walk.
	SkippedLongNames int
}

func classify(name0 byte, attr byte) Status {
	switch {
	case name0 == deletedMarker:
		return Deleted
	case attr&AttrVolumeLabel != 0:
		return VolumeLabel
	case attr&AttrDirectory != 0:
		return SubdirectoryReference
	default:
		return Live
	}
}

// entryName reconstructs the 8.3 name: trailing 0x20 padding stripped from
// base and extension, joined with "." only when the extension is non-empty.
func entryName(name [8]byte, ext [3]byte, deleted bool) string {
	base := strings.TrimRight(string(name[:]), " ")
	if deleted && len(base) > 0 {
		base = "_" + base[1:]
	}
	suffix := strings.TrimRight(string(ext[:]), " ")
	if suffix == "" {
		return base
	}
	return base + "." + suffix
}

// parseDirectory decodes a directory region into its entries. Parsing stops
// at the first end-of-directory terminator slot; with scanAll every slot is
// classified individually instead, which recovers deleted entries listed
// after a terminator in sparse regions.
func parseDirectory(region []byte, path string, scanAll bool) (*Directory, error) {
	if len(region)%dirEntrySize != 0 {
		return nil, formatErrf(ErrInvalidGeometry, "directory region at %q is %d bytes, not a multiple of %d", path, len(region), dirEntrySize)
	}

	dir := &Directory{Path: path}
	r := bytes.NewReader(region)
	for slot := 0; slot < len(region)/dirEntrySize; slot++ {
		var rec entryRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, err
		}

		if rec.Name[0] == endOfDirectory {
			if scanAll {
				continue
			}
			break
		}
		if rec.Attribute&attrLongName == attrLongName {
			dir.SkippedLongNames++
			continue
		}

		status := classify(rec.Name[0], rec.Attribute)
		dir.Entries = append(dir.Entries, DirEntry{
			Name:         entryName(rec.Name, rec.Ext, status == Deleted),
			Status:       status,
			Attribute:    rec.Attribute,
			FirstCluster: rec.FirstCluster,
			Size:         rec.FileSize,
			Modified:     modTime(rec.WriteDate, rec.WriteTime),
		})
	}
	return dir, nil
}
