package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		apiKey:     "test-key",
		baseURL:    baseURL,
		pageDelay:  time.Millisecond,
	}
}

func writeNearbyPage(w http.ResponseWriter, nextToken string, ids ...string) {
	fmt.Fprint(w, `{"status":"OK","next_page_token":"`+nextToken+`","results":[`)
	for i, id := range ids {
		if i > 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprintf(w, `{"place_id":%q,"name":"Place %s","geometry":{"location":{"lat":48.1,"lng":11.5}}}`, id, id)
	}
	fmt.Fprint(w, `]}`)
}

func TestNearbySearchPaginatesAndDeduplicates(t *testing.T) {
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		switch r.URL.Query().Get("pagetoken") {
		case "":
			if r.URL.Query().Get("location") == "" {
				t.Error("first page must carry the location parameter")
			}
			writeNearbyPage(w, "page2", "a", "b")
		case "page2":
			// "b" repeats across the page boundary.
			writeNearbyPage(w, "", "b", "c")
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("pagetoken"))
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	results, err := c.NearbySearch(context.Background(), 48.1, 11.5, 1000)
	if err != nil {
		t.Fatalf("NearbySearch failed: %v", err)
	}

	if pages != 2 {
		t.Errorf("fetched %d pages, want 2", pages)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 after dedupe", len(results))
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if results[i].PlaceID != id {
			t.Errorf("results[%d].PlaceID = %q, want %q", i, results[i].PlaceID, id)
		}
	}
}

func TestNearbySearchStopsAtMaxPages(t *testing.T) {
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		// Every page promises another one.
		writeNearbyPage(w, "more", fmt.Sprintf("p%d", pages))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	results, err := c.NearbySearch(context.Background(), 48.1, 11.5, 1000)
	if err != nil {
		t.Fatalf("NearbySearch failed: %v", err)
	}
	if pages != maxPages {
		t.Errorf("fetched %d pages, want %d", pages, maxPages)
	}
	if len(results) != maxPages {
		t.Errorf("got %d results, want %d", len(results), maxPages)
	}
}

func TestNearbySearchKeepsPartialResultsOnPageError(t *testing.T) {
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		if pages == 1 {
			writeNearbyPage(w, "page2", "a", "b")
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	results, err := c.NearbySearch(context.Background(), 48.1, 11.5, 1000)
	if err != nil {
		t.Fatalf("a failed continuation page must not discard earlier pages: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want the 2 from page one", len(results))
	}
}

func TestNearbySearchFirstPageErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","error_message":"bad key","results":[]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.NearbySearch(context.Background(), 48.1, 11.5, 1000); err == nil {
		t.Fatal("expected an error when the first page is denied")
	}
}

func TestNearbySearchZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	results, err := c.NearbySearch(context.Background(), 48.1, 11.5, 1000)
	if err != nil {
		t.Fatalf("ZERO_RESULTS is not an error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestDetailsMapsResponseFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("place_id"); got != "abc" {
			t.Errorf("place_id = %q, want abc", got)
		}
		fmt.Fprint(w, `{"status":"OK","result":{
			"formatted_phone_number":"+49 89 123456",
			"website":"https://example.com",
			"opening_hours":{"weekday_text":["Mon: 10-22"]},
			"reviews":[{"author_name":"Anna","rating":4.5,"text":"fine"}],
			"editorial_summary":{"overview":"A cozy spot."},
			"business_status":"OPERATIONAL",
			"photos":[{"photo_reference":"ref1","width":800,"height":600}]
		}}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	d, err := c.Details(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Details failed: %v", err)
	}

	if d.Phone != "+49 89 123456" || d.Website != "https://example.com" {
		t.Errorf("contact fields wrong: %+v", d)
	}
	if len(d.OpeningHours) != 1 || d.OpeningHours[0] != "Mon: 10-22" {
		t.Errorf("opening hours wrong: %v", d.OpeningHours)
	}
	if len(d.Reviews) != 1 || d.Reviews[0].Author != "Anna" {
		t.Errorf("reviews wrong: %+v", d.Reviews)
	}
	if d.EditorialSummary != "A cozy spot." {
		t.Errorf("summary wrong: %q", d.EditorialSummary)
	}
	if len(d.Photos) != 1 || d.Photos[0].Reference != "ref1" {
		t.Errorf("photos wrong: %+v", d.Photos)
	}
}

func TestPhotoReturnsBytesAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	data, err := c.Photo(context.Background(), "ref1", 800, 600)
	if err != nil {
		t.Fatalf("Photo failed: %v", err)
	}
	if string(data.Bytes) != "png-bytes" || data.ContentType != "image/png" {
		t.Errorf("unexpected photo payload: %+v", data)
	}
}

func TestAvailable(t *testing.T) {
	if !testClient("x").Available() {
		t.Error("client with a key must report available")
	}
	if NewClient("").Available() {
		t.Error("client without a key must report unavailable")
	}
}
