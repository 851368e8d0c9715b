package pitch

import "testing"

func BenchmarkTracker_Process(b *testing.B) {
	tr := New(defaultConfig())
	block := generateSineBlock(440.0, 0.7, 48000, 1024, 0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Process(block)
	}
}

func BenchmarkFrameAnalyzer_Analyze(b *testing.B) {
	var a frameAnalyzer
	block := generateSineBlock(440.0, 0.7, 48000, 1024, 0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.analyze(block, 48000)
	}
}
