package tiler

// Per-run observability counters. A single ConversionStats instance is
// created per run and threaded through the pipeline stages, so concurrent
// runs never share counter state.
type ConversionStats struct {
	ResolvedStyles      int // styles successfully mapped to a color
	UnresolvedMaterials int // elements bound to the default color
	DetectedTextures    int // texture references found (logged, never applied)
	SkippedElements     int // elements with no geometry
	DroppedFaces        int // degenerate faces removed during assembly
	AssembledElements   int // elements that contributed geometry
	TileCount           int // tiles produced by the partitioner
}
