package wiivff

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
)

func repeatByte(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func TestReconstructContentLive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Geometry of the message-board save: 512-byte sectors, 32
	// sectors/cluster. SAVE.DAT spans clusters 2 and 3 but declares one
	// cluster's worth of bytes.
	src := NewMockclusterSource(ctrl)
	src.EXPECT().Chain(uint16(2)).Return([]uint16{2, 3}, ChainEndEOC, nil)
	src.EXPECT().ClusterSize().Return(uint32(16384)).AnyTimes()
	src.EXPECT().ReadCluster(uint16(2)).Return(repeatByte('A', 16384), nil)
	src.EXPECT().ReadCluster(uint16(3)).Return(repeatByte('B', 16384), nil)

	ent := DirEntry{Name: "SAVE.DAT", Status: Live, FirstCluster: 2, Size: 16384}
	got, err := reconstructContent(src, ent)
	if err != nil {
		t.Fatalf("reconstructContent() error = %v", err)
	}
	if got.Partial {
		t.Error("reconstructContent() flagged a live entry partial")
	}
	if len(got.Data) != 16384 {
		t.Fatalf("reconstructContent() returned %d bytes, want 16384", len(got.Data))
	}
	if !bytes.Equal(got.Data, repeatByte('A', 16384)) {
		t.Error("reconstructContent() should return cluster 2's payload, truncated before cluster 3's")
	}
}

func TestReconstructContentLiveTruncatesTail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockclusterSource(ctrl)
	src.EXPECT().Chain(uint16(5)).Return([]uint16{5, 6}, ChainEndEOC, nil)
	src.EXPECT().ClusterSize().Return(uint32(512)).AnyTimes()
	src.EXPECT().ReadCluster(uint16(5)).Return(repeatByte('A', 512), nil)
	src.EXPECT().ReadCluster(uint16(6)).Return(repeatByte('B', 512), nil)

	ent := DirEntry{Name: "NOTES.TXT", Status: Live, FirstCluster: 5, Size: 700}
	got, err := reconstructContent(src, ent)
	if err != nil {
		t.Fatalf("reconstructContent() error = %v", err)
	}
	want := append(repeatByte('A', 512), repeatByte('B', 188)...)
	if !bytes.Equal(got.Data, want) {
		t.Errorf("reconstructContent() returned %d bytes, want the first 700 of both clusters", len(got.Data))
	}
}

func TestReconstructContentLiveDangling(t *testing.T) {
	tests := []struct {
		name  string
		chain []uint16
		end   ChainEnd
	}{
		{name: "chain ends at a free cluster", chain: []uint16{2}, end: ChainEndFree},
		{name: "chain ends at a bad cluster", chain: []uint16{2}, end: ChainEndBad},
		{name: "chain shorter than declared size", chain: []uint16{2}, end: ChainEndEOC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			src := NewMockclusterSource(ctrl)
			src.EXPECT().Chain(uint16(2)).Return(tt.chain, tt.end, nil)
			src.EXPECT().ClusterSize().Return(uint32(512)).AnyTimes()

			ent := DirEntry{Name: "SAVE.DAT", Status: Live, FirstCluster: 2, Size: 900}
			_, err := reconstructContent(src, ent)
			if !errors.Is(err, ErrDanglingChain) {
				t.Errorf("reconstructContent() error = %v, want ErrDanglingChain", err)
			}
		})
	}
}

func TestReconstructContentDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Deletion reclaimed the second cluster, so the chain stops at a free
	// marker after one cluster. No error: the result is tagged partial.
	src := NewMockclusterSource(ctrl)
	src.EXPECT().Chain(uint16(6)).Return([]uint16{6}, ChainEndFree, nil)
	src.EXPECT().ClusterSize().Return(uint32(512)).AnyTimes()
	src.EXPECT().ReadCluster(uint16(6)).Return(repeatByte('C', 512), nil)

	ent := DirEntry{Name: "_OLD.BIN", Status: Deleted, FirstCluster: 6, Size: 900}
	got, err := reconstructContent(src, ent)
	if err != nil {
		t.Fatalf("reconstructContent() error = %v", err)
	}
	if !got.Partial {
		t.Error("reconstructContent() should flag a short deleted chain partial")
	}
	if !bytes.Equal(got.Data, repeatByte('C', 512)) {
		t.Errorf("reconstructContent() returned %d bytes, want cluster 6's 512", len(got.Data))
	}
}

func TestReconstructContentDeletedComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockclusterSource(ctrl)
	src.EXPECT().Chain(uint16(6)).Return([]uint16{6, 7}, ChainEndEOC, nil)
	src.EXPECT().ClusterSize().Return(uint32(512)).AnyTimes()
	src.EXPECT().ReadCluster(uint16(6)).Return(repeatByte('C', 512), nil)
	src.EXPECT().ReadCluster(uint16(7)).Return(repeatByte('D', 512), nil)

	ent := DirEntry{Name: "_OLD.BIN", Status: Deleted, FirstCluster: 6, Size: 900}
	got, err := reconstructContent(src, ent)
	if err != nil {
		t.Fatalf("reconstructContent() error = %v", err)
	}
	if got.Partial {
		t.Error("reconstructContent() flagged a fully recoverable deleted entry partial")
	}
	if len(got.Data) != 900 {
		t.Errorf("reconstructContent() returned %d bytes, want 900", len(got.Data))
	}
}

func TestReconstructContentEmptyFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Size 0 never touches the FAT.
	src := NewMockclusterSource(ctrl)

	got, err := reconstructContent(src, DirEntry{Name: "EMPTY.TXT", Status: Live})
	if err != nil {
		t.Fatalf("reconstructContent() error = %v", err)
	}
	if got.Partial || len(got.Data) != 0 || got.Data == nil {
		t.Errorf("reconstructContent() = %+v, want empty non-nil data", got)
	}
}

func TestReconstructContentChainError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockclusterSource(ctrl)
	src.EXPECT().Chain(uint16(2)).Return(nil, ChainEnd(0), formatErrf(ErrChainCycle, "chain from cluster 2 exceeds 4096 clusters"))

	_, err := reconstructContent(src, DirEntry{Name: "LOOP.BIN", Status: Deleted, FirstCluster: 2, Size: 10})
	if !errors.Is(err, ErrChainCycle) {
		t.Errorf("reconstructContent() error = %v, want ErrChainCycle", err)
	}
}
