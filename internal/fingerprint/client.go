package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrRateLimited is returned after the service still answers 429 on the
// final retry attempt.
var ErrRateLimited = errors.New("fingerprint: rate limited after retries")

// ErrIdentifyFailed wraps any non-200, non-429 response from the service.
var ErrIdentifyFailed = errors.New("fingerprint: identify request failed")

const (
	identifyBaseURL = "http://amp.shazam.com/discovery/v5/en/US/android/-/tag"
	maxRetries      = 3
	retryBackoff    = 3 * time.Second
)

// Geolocation is the fixed, non-identifying location the service request
// requires. It is a placeholder, not a real reading: the upstream service
// only checks the field is present and plausible.
type Geolocation struct {
	Altitude  int `json:"altitude"`
	Latitude  int `json:"latitude"`
	Longitude int `json:"longitude"`
}

var defaultGeolocation = Geolocation{Altitude: 300, Latitude: 45, Longitude: 2}

type signatureRequest struct {
	SampleMS  float64 `json:"samplems"`
	Timestamp int64   `json:"timestamp"`
	URI       string  `json:"uri"`
}

type identifyRequest struct {
	Geolocation Geolocation      `json:"geolocation"`
	Signature   signatureRequest `json:"signature"`
	Timestamp   int64            `json:"timestamp"`
	Timezone    string           `json:"timezone"`
}

// Match is one candidate alignment the service found for the submitted
// signature within its catalogue entry.
type Match struct {
	Offset   float64  `json:"offset"`
	TimeSkew *float64 `json:"timeskew,omitempty"`
}

// Track is the catalogue entry the service matched the signature against.
type Track struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Sections []Section `json:"sections"`
	Hub      Hub       `json:"hub"`
}

// Section is one block of supplementary metadata on a matched Track.
type Section struct {
	Type     string     `json:"type"`
	Metadata []Metadata `json:"metadata,omitempty"`
}

// Metadata is a single labelled field within a Section.
type Metadata struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Hub groups the actions (play, buy, etc.) the service offers for a match.
type Hub struct {
	Actions []Action `json:"actions"`
}

// Action is one offered action, e.g. "play" with an associated provider ID.
type Action struct {
	Name string  `json:"name"`
	ID   *string `json:"id,omitempty"`
}

type identifyResponse struct {
	Matches []Match `json:"matches"`
	Track   Track   `json:"track"`
}

// Client submits signatures to the fingerprint matching service.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a Client using the given HTTP client, or
// http.DefaultClient if nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// Identify submits sig for matching. The process-wide rate limiter is
// acquired before every attempt, including retries. On a 429 response the
// client retries up to maxRetries times with a fixed backoff; any other
// non-200 status fails immediately.
func (c *Client) Identify(ctx context.Context, sig Signature) ([]Match, Track, error) {
	body := identifyRequest{
		Geolocation: defaultGeolocation,
		Signature: signatureRequest{
			SampleMS:  sig.sampleMillis(),
			Timestamp: nowMillis(),
			URI:       sig.dataURI(),
		},
		Timestamp: nowMillis(),
		Timezone:  "Europe/Berlin",
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, Track{}, fmt.Errorf("fingerprint: encoding request: %w", err)
	}

	url := identifyURL()

	var attempt int
	for {
		if err := acquire(ctx); err != nil {
			return nil, Track{}, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, Track{}, fmt.Errorf("fingerprint: building request: %w", err)
		}
		req.Header.Set("Content-Language", "en_US")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", randomUserAgent())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, Track{}, fmt.Errorf("fingerprint: request failed: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			defer resp.Body.Close()
			var parsed identifyResponse
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				return nil, Track{}, fmt.Errorf("fingerprint: decoding response: %w", err)
			}
			return parsed.Matches, parsed.Track, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxRetries {
			attempt++
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return nil, Track{}, ctx.Err()
			}
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, Track{}, ErrRateLimited
		}
		return nil, Track{}, fmt.Errorf("%w: status %d", ErrIdentifyFailed, resp.StatusCode)
	}
}

// identifyURL builds the fixed query-string URL the service expects, with
// a fresh pair of random UUIDs per request.
func identifyURL() string {
	a := strings.ToUpper(uuid.NewString())
	b := uuid.NewString()
	return fmt.Sprintf("%s/%s/%s?sync=true&webv3=true&sampling=true&connected=&shazamapiversion=v3&sharehub=true&video=v3",
		identifyBaseURL, a, b)
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
