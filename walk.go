package wiivff

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Row is one listing entry.
type Row struct {
	Path       string    `json:"path" yaml:"path"`
	Size       uint32    `json:"size" yaml:"size"`
	Status     string    `json:"status" yaml:"status"`
	Attributes string    `json:"attributes" yaml:"attributes"`
	Modified   time.Time `json:"modified" yaml:"modified"`
	// Partial is set when extracting this entry would recover fewer bytes
	// than its declared size.
	Partial bool `json:"partial,omitempty" yaml:"partial,omitempty"`
	// Issue carries per-row conditions that do not abort the listing.
	Issue string `json:"issue,omitempty" yaml:"issue,omitempty"`
}

// Listing is the result of walking the directory tree. Per-entry
// recoverable conditions are recorded inline instead of aborting.
type Listing struct {
	Rows             []Row
	SkippedLongNames int
}

// ListOptions configures a listing walk.
type ListOptions struct {
	// ShowDeleted includes deleted entries and disables the
	// end-of-directory terminator while parsing.
	ShowDeleted bool
}

// DumpOptions configures an extraction walk.
type DumpOptions struct {
	ShowDeleted bool
	// Progress, when set, is called with the volume path of every file
	// after it has been written.
	Progress func(path string)
}

// DumpResult reports what an extraction walk wrote. It is returned even
// when the walk aborted, since previously written files stay in place.
type DumpResult struct {
	Files   int
	Skipped []string
}

// attrString renders the attribute byte as fixed-order flags "drhsva".
func attrString(attr byte) string {
	flags := []struct {
		bit byte
		c   byte
	}{
		{AttrDirectory, 'd'},
		{AttrReadOnly, 'r'},
		{AttrHidden, 'h'},
		{AttrSystem, 's'},
		{AttrVolumeLabel, 'v'},
		{AttrArchive, 'a'},
	}
	out := make([]byte, len(flags))
	for i, f := range flags {
		out[i] = '-'
		if attr&f.bit != 0 {
			out[i] = f.c
		}
	}
	return string(out)
}

// List walks the decoded tree depth-first in on-disk slot order and emits
// one row per qualifying entry. Listing always completes; chain problems
// are reported per row.
func (v *Volume) List(opts ListOptions) (*Listing, error) {
	root, err := v.RootDir(opts.ShowDeleted)
	if err != nil {
		return nil, err
	}
	listing := &Listing{}
	v.listDir(root, opts.ShowDeleted, listing)
	return listing, nil
}

func (v *Volume) listDir(dir *Directory, showDeleted bool, listing *Listing) {
	listing.SkippedLongNames += dir.SkippedLongNames

	for _, ent := range dir.Entries {
		if ent.isDotDir() {
			continue
		}
		if ent.Status == Deleted && !showDeleted {
			continue
		}

		row := Row{
			Path:       joinPath(dir.Path, ent.Name),
			Size:       ent.Size,
			Status:     ent.Status.String(),
			Attributes: attrString(ent.Attribute),
			Modified:   ent.Modified,
		}

		switch {
		case ent.Status == VolumeLabel:
			listing.Rows = append(listing.Rows, row)

		case ent.IsDir():
			child, err := v.ReadDir(dir, ent, showDeleted)
			if err != nil {
				row.Issue = err.Error()
				listing.Rows = append(listing.Rows, row)
				continue
			}
			listing.Rows = append(listing.Rows, row)
			v.listDir(child, showDeleted, listing)

		default:
			row.Partial, row.Issue = v.peekChain(ent)
			listing.Rows = append(listing.Rows, row)
		}
	}
}

// peekChain checks how much of an entry's content the FAT still holds,
// without reading any payload.
func (v *Volume) peekChain(ent DirEntry) (partial bool, issue string) {
	if ent.Size == 0 {
		return false, ""
	}
	chain, end, err := v.Chain(ent.FirstCluster)
	if err != nil {
		return ent.Status == Deleted, err.Error()
	}
	available := uint64(len(chain)) * uint64(v.geo.ClusterSize)
	if ent.Status == Deleted {
		return available < uint64(ent.Size), ""
	}
	if end != ChainEndEOC {
		return false, fmt.Sprintf("chain ends at %s", end)
	}
	if available < uint64(ent.Size) {
		return false, "chain shorter than declared size"
	}
	return false, ""
}

// Dump walks the tree like List but writes every qualifying file under the
// destination filesystem, mirroring the volume's directory structure.
// Structural errors on live entries abort the walk; deleted entries whose
// reconstruction fails are skipped and reported. Already written files are
// never rolled back.
func (v *Volume) Dump(dest afero.Fs, opts DumpOptions) (*DumpResult, error) {
	result := &DumpResult{}
	root, err := v.RootDir(opts.ShowDeleted)
	if err != nil {
		return result, err
	}
	err = v.dumpDir(dest, root, opts, result)
	return result, err
}

func (v *Volume) dumpDir(dest afero.Fs, dir *Directory, opts DumpOptions, result *DumpResult) error {
	for _, ent := range dir.Entries {
		if ent.isDotDir() || ent.Status == VolumeLabel {
			continue
		}
		if ent.Status == Deleted && !opts.ShowDeleted {
			continue
		}

		volPath := joinPath(dir.Path, ent.Name)
		if ent.IsDir() {
			child, err := v.ReadDir(dir, ent, opts.ShowDeleted)
			if err != nil {
				if ent.Status == Deleted {
					result.Skipped = append(result.Skipped, volPath)
					continue
				}
				return err
			}
			if err := dest.MkdirAll(hostPath(volPath), 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", volPath, err)
			}
			if err := v.dumpDir(dest, child, opts, result); err != nil {
				return err
			}
			continue
		}

		content, err := v.ReadFile(ent)
		if err != nil {
			if ent.Status == Deleted {
				result.Skipped = append(result.Skipped, volPath)
				continue
			}
			return err
		}
		if err := writeFile(dest, volPath, content.Data, ent); err != nil {
			return err
		}
		result.Files++
		if opts.Progress != nil {
			opts.Progress(volPath)
		}
	}
	return nil
}

func writeFile(dest afero.Fs, volPath string, data []byte, ent DirEntry) error {
	p := hostPath(volPath)
	if i := strings.LastIndexByte(p, '/'); i > 0 {
		if err := dest.MkdirAll(p[:i], 0o755); err != nil {
			return fmt.Errorf("creating parent of %s: %w", volPath, err)
		}
	}
	if err := afero.WriteFile(dest, p, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", volPath, err)
	}
	if mt := ent.FileInfo().ModTime(); !mt.IsZero() {
		// Best effort, not all destination filesystems track times.
		_ = dest.Chtimes(p, mt, mt)
	}
	return nil
}

// hostPath turns a volume path ("/DIR/FILE.EXT") into a path relative to
// the destination root.
func hostPath(volPath string) string {
	return strings.TrimPrefix(volPath, "/")
}
