package fingerprint

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIdentifyURLHasFixedQueryParameters(t *testing.T) {
	u := identifyURL()
	if !strings.HasPrefix(u, identifyBaseURL+"/") {
		t.Fatalf("identifyURL() = %q, want prefix %q", u, identifyBaseURL+"/")
	}
	for _, want := range []string{"sync=true", "webv3=true", "sampling=true", "shazamapiversion=v3"} {
		if !strings.Contains(u, want) {
			t.Errorf("identifyURL() = %q, missing query parameter %q", u, want)
		}
	}
}

func TestIdentifyURLUsesDistinctUUIDsPerCall(t *testing.T) {
	a := identifyURL()
	b := identifyURL()
	if a == b {
		t.Error("identifyURL() returned the same URL twice; want fresh UUIDs per call")
	}
}

func TestIdentifyResponseDecodesMatchesAndTrack(t *testing.T) {
	raw := `{
		"matches": [{"offset": 1.5, "timeskew": 0.02}],
		"track": {
			"title": "Example Song",
			"subtitle": "Example Artist",
			"sections": [{"type": "SONG", "metadata": [{"title": "Album", "text": "Example Album"}]}],
			"hub": {"actions": [{"name": "play", "id": null}]}
		}
	}`
	var parsed identifyResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(parsed.Matches) != 1 || parsed.Matches[0].Offset != 1.5 {
		t.Errorf("Matches = %+v, want one match with offset 1.5", parsed.Matches)
	}
	if parsed.Track.Title != "Example Song" {
		t.Errorf("Track.Title = %q, want %q", parsed.Track.Title, "Example Song")
	}
	if len(parsed.Track.Sections) != 1 || parsed.Track.Sections[0].Metadata[0].Text != "Example Album" {
		t.Errorf("Track.Sections = %+v, want album metadata preserved", parsed.Track.Sections)
	}
}
