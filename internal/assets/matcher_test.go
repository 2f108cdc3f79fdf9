package assets

import (
	"reflect"
	"testing"
)

func TestMatchAudioByPartNumber(t *testing.T) {
	candidates := []string{
		"/assets/audio/Part09.mp3",
		"/assets/audio/Part9-1.mp3",
		"/assets/audio/Part10.mp3",
	}
	got := Match(candidates, 9, KindAudio)
	want := []string{"/assets/audio/Part09.mp3", "/assets/audio/Part9-1.mp3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Match = %v, want %v", got, want)
	}
}

func TestMatchAudioRequiresMP3(t *testing.T) {
	if got := Match([]string{"/a/Part9.wav", "/a/part9.MP3"}, 9, KindAudio); len(got) != 1 {
		t.Fatalf("only .mp3 qualifies (case-insensitive), got %v", got)
	}
	if got := Match([]string{"/a/Chapter9.mp3"}, 9, KindAudio); len(got) != 0 {
		t.Fatalf("filename must carry the part token, got %v", got)
	}
}

func TestMatchImageByTrailingDigits(t *testing.T) {
	candidates := []string{
		"/assets/photos/BHC001_AF_01.JPG",
		"/assets/photos/BHC001_AF_010.JPG",
	}
	got := Match(candidates, 1, KindImage)
	if len(got) != 1 || got[0] != candidates[0] {
		t.Fatalf("digit run must compare by parsed value: got %v", got)
	}
	got = Match(candidates, 10, KindImage)
	if len(got) != 1 || got[0] != candidates[1] {
		t.Fatalf("index 10 should match the 010 file: got %v", got)
	}
}

func TestMatchImageShape(t *testing.T) {
	cases := []struct {
		name  string
		index int
		want  bool
	}{
		{"scan_3.jpeg", 3, true},
		{"scan_3.JPG", 3, true},
		{"scan3.jpg", 3, false},  // no underscore before digits
		{"scan_3.png", 3, false}, // wrong extension
		{"scan_03.jpg", 3, true},
	}
	for _, tc := range cases {
		got := matchesCanvas(tc.name, tc.index, KindImage)
		if got != tc.want {
			t.Errorf("matchesCanvas(%q, %d) = %v, want %v", tc.name, tc.index, got, tc.want)
		}
	}
}

func TestKindForParent(t *testing.T) {
	if KindForParent("audio") != KindAudio {
		t.Fatal("audio parent should select audio matching")
	}
	if KindForParent("AUDIO") != KindAudio {
		t.Fatal("parent comparison is case-insensitive")
	}
	if KindForParent("photos") != KindImage {
		t.Fatal("non-audio parents are image canvases")
	}
}
