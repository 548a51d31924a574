package efx

import (
	"testing"
)

func benchmarkFile() *EffectFile {
	return newTestFile(pspTarget, sampleCommands(pspTarget)...)
}

func BenchmarkBuild(b *testing.B) {
	f := benchmarkFile()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Build(f)
	}
}

func BenchmarkEncodePooled(b *testing.B) {
	f := benchmarkFile()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := AcquirePooledBuffer()
		_ = f.Encode(buf)
		ReleasePooledBuffer(buf)
	}
}

func BenchmarkParse(b *testing.B) {
	data, err := Build(benchmarkFile())
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(data)
	}
}

func BenchmarkReadFixed(b *testing.B) {
	data := make([]byte, FixedSize[Unknown51Entry]())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := NewReader(data, le)
		_ = ReadFixed[Unknown51Entry](r)
	}
}

// Same record size through typed reads, as done for float records.
func BenchmarkReadVector4(b *testing.B) {
	data := make([]byte, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := NewReader(data, le)
		_ = readVector4(r)
	}
}

var block4K = make([]byte, 4096)

func BenchmarkPooledBufferWrite(b *testing.B) {
	b.SetBytes(int64(len(block4K)) * 64)
	for i := 0; i < b.N; i++ {
		buf := AcquirePooledBuffer()
		for j := 0; j < 64; j++ {
			_, _ = buf.Write(block4K)
		}
		ReleasePooledBuffer(buf)
	}
}

func BenchmarkChainedBufferWrite(b *testing.B) {
	b.SetBytes(int64(len(block4K)) * 64)
	for i := 0; i < b.N; i++ {
		buf := AcquireChainedBuffer()
		for j := 0; j < 64; j++ {
			_, _ = buf.Write(block4K)
		}
		ReleaseChainedBuffer(buf)
	}
}
