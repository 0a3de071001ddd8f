package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// ============================================================================
// Test Configuration
// ============================================================================
//
// Black-box tests against a running server. Set TEST_BASE_URL to enable, e.g.
//
//	TEST_BASE_URL=http://localhost:8080 go test ./tests/
//
// The server must point at a scratch database; accounts and posts created
// here are not cleaned up.

var baseURL = os.Getenv("TEST_BASE_URL")

func requireServer(t *testing.T) {
	t.Helper()
	if baseURL == "" {
		t.Skip("TEST_BASE_URL not set; skipping integration tests")
	}
}

// ============================================================================
// HTTP Client Helpers
// ============================================================================

type apiClient struct {
	client  *http.Client
	baseURL string
	token   string
}

func newClient() *apiClient {
	return &apiClient{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

func (c *apiClient) withToken(token string) *apiClient {
	c.token = token
	return c
}

func (c *apiClient) do(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.client.Do(req)
}

func (c *apiClient) get(path string) (*http.Response, error) {
	return c.do("GET", path, nil)
}

func (c *apiClient) post(path string, body interface{}) (*http.Response, error) {
	return c.do("POST", path, body)
}

func (c *apiClient) deleteWithBody(path string, body interface{}) (*http.Response, error) {
	return c.do("DELETE", path, body)
}

func parseJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

// ============================================================================
// Account Helpers
// ============================================================================

// registerAndLogin creates a throwaway account and returns a client holding
// its token. The timestamp suffix keeps reruns from colliding.
func registerAndLogin(t *testing.T, prefix string) *apiClient {
	t.Helper()
	username := fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	password := "password123"

	client := newClient()
	resp, err := client.post("/api/auth/register", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Register failed with status %d", resp.StatusCode)
	}

	resp, err = client.post("/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Login failed with status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := parseJSON(resp, &result); err != nil {
		t.Fatalf("Parse login response: %v", err)
	}
	return newClient().withToken(result.Token)
}

func createPost(t *testing.T, client *apiClient, title string) int64 {
	t.Helper()
	resp, err := client.post("/api/posts", map[string]string{
		"title":   title,
		"content": "integration test content",
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Create post failed: %d - %s", resp.StatusCode, body)
	}

	var post struct {
		ID int64 `json:"id"`
	}
	if err := parseJSON(resp, &post); err != nil {
		t.Fatalf("Parse post: %v", err)
	}
	return post.ID
}

// ============================================================================
// TEST CASES
// ============================================================================

// A like may exist at most once per (user, post); the second attempt is a
// conflict, not a second row.
func TestLikeUniqueness(t *testing.T) {
	requireServer(t)

	author := registerAndLogin(t, "author")
	liker := registerAndLogin(t, "liker")
	postID := createPost(t, author, "like uniqueness")

	resp, err := liker.post("/api/likes", map[string]int64{"post_id": postID})
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("First like: status %d, want 201", resp.StatusCode)
	}

	resp, err = liker.post("/api/likes", map[string]int64{"post_id": postID})
	if err != nil {
		t.Fatalf("Like again: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Second like: status %d, want 409", resp.StatusCode)
	}

	var count struct {
		Count int `json:"count"`
	}
	resp, err = newClient().get(fmt.Sprintf("/api/likes/%d/count", postID))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if err := parseJSON(resp, &count); err != nil {
		t.Fatalf("Parse count: %v", err)
	}
	if count.Count != 1 {
		t.Errorf("like count = %d, want 1", count.Count)
	}
}

// Deleting a post removes its likes and comments with it; nothing keeps
// referencing the missing post.
func TestPostDeleteCascades(t *testing.T) {
	requireServer(t)

	author := registerAndLogin(t, "author")
	fan := registerAndLogin(t, "fan")
	postID := createPost(t, author, "cascade")

	resp, err := fan.post("/api/likes", map[string]int64{"post_id": postID})
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	resp.Body.Close()

	resp, err = fan.post("/api/comments", map[string]interface{}{
		"content": "will be cascaded",
		"post_id": postID,
	})
	if err != nil {
		t.Fatalf("Comment: %v", err)
	}
	resp.Body.Close()

	resp, err = author.deleteWithBody(fmt.Sprintf("/api/posts/%d", postID), nil)
	if err != nil {
		t.Fatalf("Delete post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Delete post: status %d, want 200", resp.StatusCode)
	}

	resp, err = newClient().get(fmt.Sprintf("/api/posts/%d", postID))
	if err != nil {
		t.Fatalf("Get deleted post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Deleted post fetch: status %d, want 404", resp.StatusCode)
	}

	var count struct {
		Count int `json:"count"`
	}
	resp, err = newClient().get(fmt.Sprintf("/api/likes/%d/count", postID))
	if err != nil {
		t.Fatalf("Count after delete: %v", err)
	}
	if err := parseJSON(resp, &count); err != nil {
		t.Fatalf("Parse count: %v", err)
	}
	if count.Count != 0 {
		t.Errorf("like count after cascade = %d, want 0", count.Count)
	}

	var thread []interface{}
	resp, err = newClient().get(fmt.Sprintf("/api/comments/post/%d", postID))
	if err != nil {
		t.Fatalf("Thread after delete: %v", err)
	}
	if err := parseJSON(resp, &thread); err != nil {
		t.Fatalf("Parse thread: %v", err)
	}
	if len(thread) != 0 {
		t.Errorf("comments after cascade = %d, want 0", len(thread))
	}
}

// Deleting a parent comment leaves its replies in place; they surface as
// roots of the thread.
func TestDeletedParentPromotesReplies(t *testing.T) {
	requireServer(t)

	author := registerAndLogin(t, "author")
	postID := createPost(t, author, "thread")

	var parent struct {
		ID int64 `json:"id"`
	}
	resp, err := author.post("/api/comments", map[string]interface{}{
		"content": "parent",
		"post_id": postID,
	})
	if err != nil {
		t.Fatalf("Parent comment: %v", err)
	}
	if err := parseJSON(resp, &parent); err != nil {
		t.Fatalf("Parse parent: %v", err)
	}

	resp, err = author.post("/api/comments", map[string]interface{}{
		"content": "reply",
		"post_id": postID,
		"parent":  parent.ID,
	})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	resp.Body.Close()

	resp, err = author.deleteWithBody(fmt.Sprintf("/api/comments/%d", parent.ID), nil)
	if err != nil {
		t.Fatalf("Delete parent: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Delete parent: status %d, want 200", resp.StatusCode)
	}

	var thread []struct {
		Content string `json:"content"`
		Replies []interface{}
	}
	resp, err = newClient().get(fmt.Sprintf("/api/comments/post/%d", postID))
	if err != nil {
		t.Fatalf("Thread: %v", err)
	}
	if err := parseJSON(resp, &thread); err != nil {
		t.Fatalf("Parse thread: %v", err)
	}
	if len(thread) != 1 {
		t.Fatalf("roots = %d, want 1 (the promoted reply)", len(thread))
	}
	if thread[0].Content != "reply" {
		t.Errorf("root content = %q, want the orphaned reply", thread[0].Content)
	}
}
