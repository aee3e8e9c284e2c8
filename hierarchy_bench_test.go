package kaisou

import "testing"

type benchTree struct{}

// buildBenchTree attaches size entities under a root, fanout children per
// node, and returns the root.
func buildBenchTree(h *Hierarchy[benchTree], size, fanout int) Entity {
	w := h.World()
	ents := w.CreateEntities(size + 1)
	for i := 1; i <= size; i++ {
		_ = h.Attach(ents[i], ents[(i-1)/fanout])
	}
	return ents[0]
}

func BenchmarkAttach(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			for b.Loop() {
				b.StopTimer()
				w := NewWorld(size + 1)
				h := NewHierarchy[benchTree](w)
				ents := w.CreateEntities(size + 1)
				b.StartTimer()
				for i := 1; i <= size; i++ {
					_ = h.Attach(ents[i], ents[(i-1)/4])
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkReattach(b *testing.B) {
	w := NewWorld(1024)
	h := NewHierarchy[benchTree](w)
	parents := w.CreateEntities(2)
	kids := w.CreateEntities(1000)
	for _, k := range kids {
		_ = h.Attach(k, parents[0])
	}
	i := 0
	b.ReportAllocs()
	for b.Loop() {
		_ = h.Attach(kids[i%len(kids)], parents[(i/len(kids)+1)%2])
		i++
	}
}

func BenchmarkChildren(b *testing.B) {
	w := NewWorld(1024)
	h := NewHierarchy[benchTree](w)
	root := buildBenchTree(h, 1000, 1000)
	it := h.Children(root)
	b.ReportAllocs()
	for b.Loop() {
		it.Reset()
		for it.Next() {
		}
	}
}

func BenchmarkDescendantsDepthFirst(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			w := NewWorld(size + 1)
			h := NewHierarchy[benchTree](w)
			it := h.DescendantsDepthFirst(buildBenchTree(h, size, 8))
			b.ResetTimer()
			for b.Loop() {
				it.Reset()
				for it.Next() {
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkDescendantsBreadthFirst(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(sizeName(size), func(b *testing.B) {
			w := NewWorld(size + 1)
			h := NewHierarchy[benchTree](w)
			it := h.DescendantsBreadthFirst(buildBenchTree(h, size, 8))
			b.ResetTimer()
			for b.Loop() {
				it.Reset()
				for it.Next() {
				}
			}
			b.ReportAllocs()
		})
	}
}

func BenchmarkAncestors(b *testing.B) {
	w := NewWorld(1024)
	h := NewHierarchy[benchTree](w)
	ents := w.CreateEntities(1000)
	for i := 1; i < len(ents); i++ {
		_ = h.Attach(ents[i], ents[i-1])
	}
	it := h.Ancestors(ents[len(ents)-1])
	b.ReportAllocs()
	for b.Loop() {
		it.Reset()
		for it.Next() {
		}
	}
}
