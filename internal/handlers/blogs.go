package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/genuinepracticalhomoeopathy/gph-website/internal/blogstore"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/cache"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/markdown"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/models"
	"github.com/genuinepracticalhomoeopathy/gph-website/internal/session"
)

// Blogs groups the blog CRUD handlers. Reading is public; every mutating
// handler re-checks the auth gate itself before touching the store, in
// addition to whatever the route guard does for admin pages.
type Blogs struct {
	store     blogstore.Store
	gate      *session.Gate
	listCache *cache.BlogList // nil when caching is disabled
}

// NewBlogs creates the blog handler group. listCache may be nil.
func NewBlogs(store blogstore.Store, gate *session.Gate, listCache *cache.BlogList) *Blogs {
	return &Blogs{store: store, gate: gate, listCache: listCache}
}

type createBlogRequest struct {
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Excerpt string         `json:"excerpt"`
	Tags    models.TagList `json:"tags"`
}

// updateBlogRequest uses pointers so absent fields stay untouched.
type updateBlogRequest struct {
	ID      string          `json:"id"`
	Title   *string         `json:"title"`
	Content *string         `json:"content"`
	Excerpt *string         `json:"excerpt"`
	Tags    *models.TagList `json:"tags"`
}

// renderedBlogPost is a post with its content interpreted to HTML.
type renderedBlogPost struct {
	models.BlogPost
	ContentHTML string `json:"contentHTML"`
}

// List serves the public blog listing, newest first. When the cache is
// configured the serialized response is reused until a write invalidates it.
func (b *Blogs) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if b.listCache != nil {
		if payload, ok := b.listCache.Get(ctx); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	posts, err := b.store.List(ctx)
	if err != nil {
		slog.Error("list blogs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		slog.Error("marshal blogs failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}

	if b.listCache != nil {
		b.listCache.Set(ctx, payload)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// GetOne serves a single post. With ?render=html the response carries an
// additional contentHTML field holding the interpreted markup.
func (b *Blogs) GetOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := b.store.Get(r.Context(), id)
	if errors.Is(err, blogstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if err != nil {
		slog.Error("get blog failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch blog post")
		return
	}

	if r.URL.Query().Get("render") != "html" {
		writeJSON(w, http.StatusOK, post)
		return
	}

	html, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("render blog content failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render blog post")
		return
	}
	writeJSON(w, http.StatusOK, renderedBlogPost{BlogPost: *post, ContentHTML: html})
}

// Create stores a new post authored by the session email.
func (b *Blogs) Create(w http.ResponseWriter, r *http.Request) {
	sess := b.gate.FromRequest(r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validateNewPost(req.Title, req.Content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateTags(req.Tags); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := b.store.Create(r.Context(), blogstore.NewPost{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Author:  sess.Email,
		Tags:    req.Tags,
	})
	if err != nil {
		slog.Error("create blog failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create blog post")
		return
	}

	b.invalidateList(r)
	slog.Info("blog post created", "id", created.ID, "author", created.Author)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Blog post created successfully",
		"blog":    created,
	})
}

// Update applies a partial update to an existing post.
func (b *Blogs) Update(w http.ResponseWriter, r *http.Request) {
	sess := b.gate.FromRequest(r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Blog ID is required")
		return
	}
	if msg := validateUpdate(req.Title, req.Content, req.Excerpt); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	upd := blogstore.Update{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Author:  sess.Email,
	}
	if req.Tags != nil {
		tags := []string(*req.Tags)
		if msg := validateTags(tags); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		upd.Tags = tags
	}

	updated, err := b.store.Update(r.Context(), req.ID, upd)
	if errors.Is(err, blogstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if err != nil {
		slog.Error("update blog failed", "id", req.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update blog post")
		return
	}

	b.invalidateList(r)
	slog.Info("blog post updated", "id", updated.ID, "author", sess.Email)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Blog post updated successfully",
		"blog":    updated,
	})
}

// Delete removes a post identified by the id query parameter.
func (b *Blogs) Delete(w http.ResponseWriter, r *http.Request) {
	sess := b.gate.FromRequest(r)
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Blog ID is required")
		return
	}

	err := b.store.Delete(r.Context(), id)
	if errors.Is(err, blogstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if err != nil {
		slog.Error("delete blog failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete blog post")
		return
	}

	b.invalidateList(r)
	slog.Info("blog post deleted", "id", id, "author", sess.Email)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Blog post deleted successfully"})
}

func (b *Blogs) invalidateList(r *http.Request) {
	if b.listCache != nil {
		b.listCache.Invalidate(r.Context())
	}
}
