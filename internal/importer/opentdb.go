package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultOpenTDBURL = "https://opentdb.com"

// difficultyRatings maps OpenTDB difficulty names onto catalog ratings.
var difficultyRatings = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// Record is one OpenTDB question decoded into catalog terms.
type Record struct {
	// Category is the top-level OpenTDB category ("Entertainment" for
	// "Entertainment: Film"); Topic holds the rest, if any.
	Category   string
	Topic      string
	Question   string
	Answer     string
	Difficulty int
}

// OpenTDBClient fetches questions from the Open Trivia DB. Results are
// requested RFC 3986 encoded and decoded here, so callers never see
// HTML entities.
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenTDBClient builds a client; empty baseURL targets opentdb.com.
func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = defaultOpenTDBURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &OpenTDBClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type encodedResult struct {
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
}

type encodedResponse struct {
	ResponseCode int             `json:"response_code"`
	Results      []encodedResult `json:"results"`
}

// Fetch requests amount questions at the given difficulty name (empty means
// any). Records that fail to decode are dropped and counted in skipped.
func (c *OpenTDBClient) Fetch(ctx context.Context, amount int, difficulty string) (records []Record, skipped int, err error) {
	values := url.Values{}
	values.Set("amount", strconv.Itoa(amount))
	values.Set("encode", "url3986")
	if difficulty != "" {
		values.Set("difficulty", difficulty)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api.php?"+values.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("opentdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, 0, fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}

	var payload encodedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, 0, fmt.Errorf("decode opentdb response: %w", err)
	}
	if payload.ResponseCode != 0 {
		return nil, 0, fmt.Errorf("opentdb response code %d", payload.ResponseCode)
	}

	records = make([]Record, 0, len(payload.Results))
	for _, raw := range payload.Results {
		rec, err := decodeResult(raw)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func decodeResult(raw encodedResult) (Record, error) {
	var fields [4]string
	for i, v := range []string{raw.Category, raw.Difficulty, raw.Question, raw.CorrectAnswer} {
		decoded, err := url.PathUnescape(v)
		if err != nil {
			return Record{}, fmt.Errorf("decode %q: %w", v, err)
		}
		fields[i] = strings.TrimSpace(decoded)
	}

	category, topic, _ := strings.Cut(fields[0], ":")
	rating, ok := difficultyRatings[strings.ToLower(fields[1])]
	if !ok {
		rating = difficultyRatings["medium"]
	}
	return Record{
		Category:   strings.TrimSpace(category),
		Topic:      strings.TrimSpace(topic),
		Question:   fields[2],
		Answer:     fields[3],
		Difficulty: rating,
	}, nil
}
