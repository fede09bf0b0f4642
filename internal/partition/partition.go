// Package partition splits an ordered URL sequence into contiguous chunks,
// one per download worker.
package partition

// Split divides items into at most chunks contiguous slices. The per-chunk
// size is len(items)/chunks rounded up by one; without the bump, integer
// division truncates and drops the tail (e.g. 10/3 -> 3 3 3). The result
// never exceeds chunks slices but may contain fewer, and the final chunk
// may be short. Concatenating the result reproduces items exactly.
func Split(items []string, chunks int) [][]string {
	if chunks < 1 {
		chunks = 1
	}
	size := len(items)/chunks + 1
	var out [][]string
	for len(items) > 0 {
		if len(items) < size {
			size = len(items)
		}
		out = append(out, items[0:size])
		items = items[size:]
	}
	return out
}
