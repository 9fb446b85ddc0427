package wiivff

// clusterSource provides all methods needed from a volume to reconstruct
// file content. It mainly exists to be able to mock the volume in tests.
// Generated mock using mockgen:
//  mockgen -source=content.go -destination=content_mock.go -package wiivff
type clusterSource interface {
	Chain(first uint16) ([]uint16, ChainEnd, error)
	ReadCluster(cluster uint16) ([]byte, error)
	ClusterSize() uint32
}

// Content is a reconstructed file body. Partial is set only for deleted
// entries whose chain yielded fewer bytes than the declared size, an
// explicit approximation rather than an error.
type Content struct {
	Data    []byte
	Partial bool
}

// reconstructContent follows the entry's cluster chain and concatenates the
// cluster payloads, truncated to the declared size. Live entries must be
// recoverable exactly; deleted entries are best effort since later clusters
// may have been reclaimed by another live file.
func reconstructContent(src clusterSource, ent DirEntry) (Content, error) {
	if ent.Size == 0 {
		return Content{Data: []byte{}}, nil
	}

	chain, end, err := src.Chain(ent.FirstCluster)
	if err != nil {
		return Content{}, err
	}

	clusterSize := src.ClusterSize()
	if ent.Status != Deleted {
		if end != ChainEndEOC {
			return Content{}, formatErrf(ErrDanglingChain, "live entry %q chain ends at %s", ent.Name, end)
		}
		if uint64(len(chain))*uint64(clusterSize) < uint64(ent.Size) {
			return Content{}, formatErrf(ErrDanglingChain, "live entry %q chain holds %d clusters, fewer than declared size %d", ent.Name, len(chain), ent.Size)
		}
	}

	data := make([]byte, 0, uint64(len(chain))*uint64(clusterSize))
	for _, cluster := range chain {
		payload, err := src.ReadCluster(cluster)
		if err != nil {
			return Content{}, err
		}
		data = append(data, payload...)
	}

	if uint64(len(data)) > uint64(ent.Size) {
		data = data[:ent.Size]
	}
	return Content{
		Data:    data,
		Partial: ent.Status == Deleted && uint32(len(data)) < ent.Size,
	}, nil
}
