package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTDBClientFetchDecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("amount"))
		assert.Equal(t, "hard", r.URL.Query().Get("difficulty"))
		assert.Equal(t, "url3986", r.URL.Query().Get("encode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":0,"results":[
			{"category":"Entertainment%3A%20Cartoon%20%26%20Animations","type":"multiple","difficulty":"hard",
			 "question":"Who%20voices%20%22Bart%22%3F","correct_answer":"Nancy%20Cartwright","incorrect_answers":["x"]},
			{"category":"Science%20%26%20Nature","type":"boolean","difficulty":"easy",
			 "question":"Water%20boils%20at%20100%C2%B0C%20at%20sea%20level.","correct_answer":"True","incorrect_answers":["False"]},
			{"category":"History","type":"multiple","difficulty":"hard",
			 "question":"Broken%ZZ","correct_answer":"x","incorrect_answers":[]}
		]}`))
	}))
	defer srv.Close()

	got, skipped, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 3, "hard")
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []Record{
		{Category: "Entertainment", Topic: "Cartoon & Animations", Question: `Who voices "Bart"?`, Answer: "Nancy Cartwright", Difficulty: 5},
		{Category: "Science & Nature", Question: "Water boils at 100°C at sea level.", Answer: "True", Difficulty: 1},
	}, got)
}

func TestOpenTDBClientUnknownDifficultyIsMedium(t *testing.T) {
	rec, err := decodeResult(encodedResult{Category: "Art", Difficulty: "brutal", Question: "Q", CorrectAnswer: "A"})
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Difficulty)
	assert.Empty(t, rec.Topic)
}

func TestOpenTDBClientErrors(t *testing.T) {
	t.Run("non-zero response code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response_code":1,"results":[]}`))
		}))
		defer srv.Close()

		_, _, err := NewOpenTDBClient(srv.URL, nil).Fetch(context.Background(), 50, "")
		assert.ErrorContains(t, err, "response code 1")
	})

	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, _, err := NewOpenTDBClient(srv.URL, nil).Fetch(context.Background(), 1, "")
		assert.ErrorContains(t, err, "429")
	})
}
