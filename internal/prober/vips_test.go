package prober

import (
	"testing"
)

// ftypHeader builds a minimal ISOBMFF header with the given brand.
func ftypHeader(brand string) []byte {
	header := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}
	header = append(header, brand...)
	return append(header, make([]byte, 16)...)
}

func TestIsHeifLike(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"heic brand", ftypHeader("heic"), true},
		{"heix brand", ftypHeader("heix"), true},
		{"mif1 brand", ftypHeader("mif1"), true},
		{"avif brand", ftypHeader("avif"), true},
		{"avis brand", ftypHeader("avis"), true},
		{"mp4 container", ftypHeader("isom"), false},
		{"png", testPNG(t, 4, 4), false},
		{"garbage", []byte("not an image at all"), false},
		{"short", []byte{0x00, 0x00}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHeifLike(tt.data); got != tt.want {
				t.Errorf("isHeifLike() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Without libvips initialized, HEIF content degrades to the usual decode
// sentinels instead of erroring out of the import.
func TestHeifProbesDegradeWithoutVips(t *testing.T) {
	p := New(t.TempDir())
	data := ftypHeader("heic")

	if w, h := p.ImageInfo(data); w != 0 || h != 0 {
		t.Errorf("ImageInfo() = %dx%d, want sentinel 0x0", w, h)
	}
	if path := p.ImagePreview(data, "heic-test"); path != "" {
		t.Errorf("ImagePreview() = %q, want empty sentinel", path)
	}
}
