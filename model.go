// File model contains the structs and constants which match the on-disk
// structures of the VFF container and its embedded FAT16 filesystem.

package wiivff

const (
	// The VFF header occupies the first 0x20 bytes; only the first 0x10
	// carry known fields.
	headerSize       = 0x20
	headerParsedSize = 0x10

	// The root directory region has a fixed size, independent of geometry.
	rootRegionSize = 0x1000

	sectorSize = 512

	// Number of FAT copies in a VFF. The first copy is canonical.
	fatCopies = 2

	dirEntrySize = 32

	// name[0] markers of a directory slot.
	deletedMarker  = 0xE5
	endOfDirectory = 0x00

	// FAT16 link values.
	fat16Free = 0x0000
	fat16Bad  = 0xFFF7
	fat16EOC  = 0xFFF8 // this value and above terminate a chain

	// Cluster count windows. At most fat12MaxClusters means FAT12, above
	// fat16MaxClusters means FAT32; both are out of scope.
	fat12MaxClusters = 0xFF5
	fat16MaxClusters = 0xFFF5

	// Clusters 0 and 1 are reserved, data starts at cluster 2.
	firstDataCluster = 2
)

var (
	vffMagic  = [4]byte{'V', 'F', 'F', ' '}
	wc24Magic = [4]byte{'W', 'c', 'D', 'f'}
)

// Directory entry attribute bits.
const (
	AttrReadOnly    = 0x01
	AttrHidden      = 0x02
	AttrSystem      = 0x04
	AttrVolumeLabel = 0x08
	AttrDirectory   = 0x10
	AttrArchive     = 0x20

	// All four low bits set marks a VFAT long filename slot.
	attrLongName = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeLabel
)

// headerRecord is the known prefix of the VFF header, big-endian on disk.
type headerRecord struct {
	Magic         [4]byte
	Unknown       uint32
	VolumeSize    uint32
	ClusterSize16 uint16 // cluster size in 16-byte units
}

// entryRecord is one 32-byte directory slot, little-endian on disk.
type entryRecord struct {
	Name            [8]byte
	Ext             [3]byte
	Attribute       byte
	NTReserved      byte
	CreateTimeTenth byte
	CreateTime      uint16
	CreateDate      uint16
	LastAccessDate  uint16
	EAIndex         uint16
	WriteTime       uint16
	WriteDate       uint16
	FirstCluster    uint16
	FileSize        uint32
}
