// Package catalogtest provides a fake collection endpoint for tests.
package catalogtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// Server is a configurable fake of the dummyjson collection API. It serves
// generated posts and products and records every request.
type Server struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	PostsTotal    int
	ProductsTotal int

	// Tracking
	requests []Request
}

// Request is one recorded call
type Request struct {
	Path  string
	Skip  int
	Limit int
}

// NewServer starts a fake server with the given collection totals
func NewServer(postsTotal, productsTotal int) *Server {
	s := &Server{
		handlers:      make(map[string]http.HandlerFunc),
		PostsTotal:    postsTotal,
		ProductsTotal: productsTotal,
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		s.mu.Lock()
		s.requests = append(s.requests, Request{Path: r.URL.Path, Skip: skip, Limit: limit})
		handler, exists := s.handlers[r.URL.Path]
		s.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}
		s.defaultHandler(w, r, skip, limit)
	}))

	return s
}

// URL returns the server base URL
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts down the server
func (s *Server) Close() {
	s.server.Close()
}

// SetHandler overrides the response for a path such as "/posts"
func (s *Server) SetHandler(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = h
}

// SetError makes path answer with the given status code
func (s *Server) SetError(path string, status int) {
	s.SetHandler(path, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"message":"%s"}`, http.StatusText(status))
	})
}

// ClearHandlers restores the default responses
func (s *Server) ClearHandlers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = make(map[string]http.HandlerFunc)
}

// Requests returns a copy of the recorded requests
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Request(nil), s.requests...)
}

// RequestCount returns the number of requests served
func (s *Server) RequestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requests)
}

func (s *Server) defaultHandler(w http.ResponseWriter, r *http.Request, skip, limit int) {
	var body map[string]any
	switch r.URL.Path {
	case "/posts":
		body = envelope("posts", Posts(skip, limit, s.PostsTotal), s.PostsTotal, skip, limit)
	case "/products":
		body = envelope("products", Products(skip, limit, s.ProductsTotal), s.ProductsTotal, skip, limit)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"not found"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func envelope(key string, items []map[string]any, total, skip, limit int) map[string]any {
	return map[string]any{
		key:     items,
		"total": total,
		"skip":  skip,
		"limit": limit,
	}
}

// Posts generates the posts batch [skip, skip+limit) of a collection of total
func Posts(skip, limit, total int) []map[string]any {
	items := []map[string]any{}
	for i := skip; i < skip+limit && i < total; i++ {
		id := i + 1
		items = append(items, map[string]any{
			"id":    id,
			"title": fmt.Sprintf("Post %d", id),
			"body":  fmt.Sprintf("Body of post %d", id),
			"tags":  []string{"history", "fiction"},
			"reactions": map[string]int{
				"likes":    id * 10,
				"dislikes": id,
			},
			"views":  id * 100,
			"userId": id % 7,
		})
	}
	return items
}

// Products generates the products batch [skip, skip+limit) of a collection of total
func Products(skip, limit, total int) []map[string]any {
	items := []map[string]any{}
	for i := skip; i < skip+limit && i < total; i++ {
		id := i + 1
		items = append(items, map[string]any{
			"id":          id,
			"title":       fmt.Sprintf("Product %d", id),
			"description": fmt.Sprintf("Description of product %d", id),
			"category":    "beauty",
			"price":       json.Number(fmt.Sprintf("%d.99", id)),
			"rating":      4.5,
			"stock":       id * 3,
			"thumbnail":   fmt.Sprintf("https://cdn.example.com/products/%d/thumbnail.png", id),
		})
	}
	return items
}
