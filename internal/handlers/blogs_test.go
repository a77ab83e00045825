package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/blogstore"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/models"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

// ---------- helpers ----------

func newTestBlogs(t *testing.T) (*Blogs, blogstore.Store) {
	t.Helper()
	store, err := blogstore.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewBlogs(store, session.NewGate(false), nil), store
}

func createPost(t *testing.T, b *Blogs, body string) *models.BlogPost {
	t.Helper()
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(body)), "admin@gph.com")
	w := httptest.NewRecorder()
	b.Create(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("create: status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Blog models.BlogPost `json:"blog"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return &resp.Blog
}

func getOne(b *Blogs, id, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/blogs/"+id+query, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	b.GetOne(w, req)
	return w
}

// ---------- auth gate ----------

func TestMutationsRequireSession(t *testing.T) {
	b, store := newTestBlogs(t)

	tests := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
		req  *http.Request
	}{
		{"create", b.Create, httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(`{"title":"T","content":"C"}`))},
		{"update", b.Update, httptest.NewRequest(http.MethodPut, "/api/blogs", strings.NewReader(`{"id":"1","title":"T"}`))},
		{"delete", b.Delete, httptest.NewRequest(http.MethodDelete, "/api/blogs?id=1", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.call(w, tt.req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401", w.Code)
			}
			if msg := decodeBody(t, w)["error"]; msg != "Unauthorized" {
				t.Errorf("error: got %v", msg)
			}
		})
	}

	posts, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("store modified by unauthenticated requests: %d posts", len(posts))
	}
}

// ---------- create ----------

func TestCreateBlogPost(t *testing.T) {
	b, _ := newTestBlogs(t)

	created := createPost(t, b, `{"title":"First Post","content":"Hello","excerpt":"Hi","tags":["remedies","cases"]}`)

	if created.ID == "" {
		t.Error("created post has no ID")
	}
	if created.Author != "admin@gph.com" {
		t.Errorf("author: got %q, want session email", created.Author)
	}
	if !reflect.DeepEqual(created.Tags, []string{"remedies", "cases"}) {
		t.Errorf("tags: got %v", created.Tags)
	}
	if created.PublishedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not assigned")
	}
}

func TestCreateAcceptsCommaSeparatedTags(t *testing.T) {
	b, _ := newTestBlogs(t)

	created := createPost(t, b, `{"title":"T","content":"C","tags":" remedies , cases ,, dosage "}`)

	want := []string{"remedies", "cases", "dosage"}
	if !reflect.DeepEqual(created.Tags, want) {
		t.Errorf("tags: got %v, want %v", created.Tags, want)
	}
}

func TestCreateValidation(t *testing.T) {
	b, _ := newTestBlogs(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"content":"C"}`, "Title is required"},
		{"missing content", `{"title":"T"}`, "Content is required"},
		{"malformed body", `{oops`, "Invalid request body"},
		{"oversized tag", `{"title":"T","content":"C","tags":["` + strings.Repeat("x", 101) + `"]}`, "Tag is too long (max 100 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withSession(httptest.NewRequest(http.MethodPost, "/api/blogs", strings.NewReader(tt.body)), "admin@gph.com")
			w := httptest.NewRecorder()
			b.Create(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", w.Code)
			}
			if msg := decodeBody(t, w)["error"]; msg != tt.want {
				t.Errorf("error: got %v, want %q", msg, tt.want)
			}
		})
	}
}

// ---------- list and get ----------

func TestListReturnsNewestFirst(t *testing.T) {
	b, _ := newTestBlogs(t)

	createPost(t, b, `{"title":"Older","content":"C"}`)
	createPost(t, b, `{"title":"Newer","content":"C"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	w := httptest.NewRecorder()
	b.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var posts []models.BlogPost
	if err := json.NewDecoder(w.Body).Decode(&posts); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts: got %d, want 2", len(posts))
	}
	if posts[0].Title != "Newer" {
		t.Errorf("order: got %q first, want Newer", posts[0].Title)
	}
}

func TestGetOne(t *testing.T) {
	b, _ := newTestBlogs(t)
	created := createPost(t, b, `{"title":"Lone Post","content":"Body"}`)

	t.Run("found", func(t *testing.T) {
		w := getOne(b, created.ID, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", w.Code)
		}
		var post models.BlogPost
		if err := json.NewDecoder(w.Body).Decode(&post); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if post.Title != "Lone Post" {
			t.Errorf("title: got %q", post.Title)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := getOne(b, "no-such-id", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status: got %d, want 404", w.Code)
		}
		if msg := decodeBody(t, w)["error"]; msg != "Blog post not found" {
			t.Errorf("error: got %v", msg)
		}
	})
}

func TestGetOneRendersHTML(t *testing.T) {
	b, _ := newTestBlogs(t)
	created := createPost(t, b, `{"title":"Rendered","content":"# Heading\n\nSome *emphasis*."}`)

	w := getOne(b, created.ID, "?render=html")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var resp struct {
		Content     string `json:"content"`
		ContentHTML string `json:"contentHTML"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.ContentHTML, "<h1") {
		t.Errorf("contentHTML missing heading: %q", resp.ContentHTML)
	}
	if !strings.Contains(resp.ContentHTML, "<em>emphasis</em>") {
		t.Errorf("contentHTML missing emphasis: %q", resp.ContentHTML)
	}
	if resp.Content == "" {
		t.Error("raw content dropped from rendered response")
	}
}

// ---------- update ----------

func TestUpdateBlogPost(t *testing.T) {
	b, _ := newTestBlogs(t)
	created := createPost(t, b, `{"title":"Original","content":"Body","excerpt":"E","tags":["one"]}`)

	req := withSession(httptest.NewRequest(http.MethodPut, "/api/blogs",
		strings.NewReader(`{"id":"`+created.ID+`","title":"Renamed"}`)), "editor@gph.com")
	w := httptest.NewRecorder()
	b.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Blog models.BlogPost `json:"blog"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Blog.Title != "Renamed" {
		t.Errorf("title: got %q", resp.Blog.Title)
	}
	if resp.Blog.Content != "Body" || resp.Blog.Excerpt != "E" {
		t.Error("absent fields were not preserved")
	}
	if !reflect.DeepEqual(resp.Blog.Tags, []string{"one"}) {
		t.Errorf("tags changed: %v", resp.Blog.Tags)
	}
	if !resp.Blog.PublishedAt.Equal(created.PublishedAt) {
		t.Error("publishedAt changed on update")
	}
}

func TestUpdateTagsFromCommaString(t *testing.T) {
	b, _ := newTestBlogs(t)
	created := createPost(t, b, `{"title":"T","content":"C","tags":["old"]}`)

	req := withSession(httptest.NewRequest(http.MethodPut, "/api/blogs",
		strings.NewReader(`{"id":"`+created.ID+`","tags":"new , tags"}`)), "admin@gph.com")
	w := httptest.NewRecorder()
	b.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Blog models.BlogPost `json:"blog"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(resp.Blog.Tags, []string{"new", "tags"}) {
		t.Errorf("tags: got %v", resp.Blog.Tags)
	}
}

func TestUpdateErrors(t *testing.T) {
	b, _ := newTestBlogs(t)

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"missing id", `{"title":"T"}`, http.StatusBadRequest, "Blog ID is required"},
		{"unknown id", `{"id":"no-such-id","title":"T"}`, http.StatusNotFound, "Blog post not found"},
		{"empty title", `{"id":"x","title":""}`, http.StatusBadRequest, "Title cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withSession(httptest.NewRequest(http.MethodPut, "/api/blogs", strings.NewReader(tt.body)), "admin@gph.com")
			w := httptest.NewRecorder()
			b.Update(w, req)

			if w.Code != tt.status {
				t.Fatalf("status: got %d, want %d", w.Code, tt.status)
			}
			if msg := decodeBody(t, w)["error"]; msg != tt.want {
				t.Errorf("error: got %v, want %q", msg, tt.want)
			}
		})
	}
}

// ---------- delete ----------

func TestDeleteBlogPost(t *testing.T) {
	b, store := newTestBlogs(t)
	created := createPost(t, b, `{"title":"Doomed","content":"C"}`)

	del := func() *httptest.ResponseRecorder {
		req := withSession(httptest.NewRequest(http.MethodDelete, "/api/blogs?id="+created.ID, nil), "admin@gph.com")
		w := httptest.NewRecorder()
		b.Delete(w, req)
		return w
	}

	if w := del(); w.Code != http.StatusOK {
		t.Fatalf("first delete: status %d", w.Code)
	}
	posts, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("post still present after delete")
	}

	if w := del(); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", w.Code)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	b, _ := newTestBlogs(t)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/blogs", nil), "admin@gph.com")
	w := httptest.NewRecorder()
	b.Delete(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
	if msg := decodeBody(t, w)["error"]; msg != "Blog ID is required" {
		t.Errorf("error: got %v", msg)
	}
}
