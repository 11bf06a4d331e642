package ffprobe

import (
	"encoding/json"
	"testing"
	"time"
)

const sampleDocument = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080, "bit_rate": "9500000"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2, "bit_rate": "128000"}
  ],
  "format": {
    "filename": "clip.mov",
    "nb_streams": 2,
    "duration": "120.500000",
    "size": "150000000",
    "bit_rate": "10000000",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "tags": {"creation_time": "2024-06-01T10:30:00.000000Z"}
  }
}`

func TestResultHelpers(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(sampleDocument), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if result.VideoCodec() != "h264" {
		t.Fatalf("unexpected video codec: %q", result.VideoCodec())
	}
	stream := result.VideoStream()
	if stream == nil || stream.Width != 1920 || stream.Height != 1080 {
		t.Fatalf("unexpected video stream: %#v", stream)
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 120.5 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.BitRate() != 10000000 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}
	if result.AudioBitRate() != 128000 {
		t.Fatalf("unexpected audio bitrate: %d", result.AudioBitRate())
	}
	if result.SizeBytes() != 150000000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestCreationTimeParsing(t *testing.T) {
	var result Result
	if err := json.Unmarshal([]byte(sampleDocument), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	created, ok := result.CreationTime()
	if !ok {
		t.Fatal("expected creation time")
	}
	want := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	if !created.Equal(want) {
		t.Fatalf("creation time %v, want %v", created, want)
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
	if _, ok := result.CreationTime(); ok {
		t.Fatal("expected no creation time")
	}
}
