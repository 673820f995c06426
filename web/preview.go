package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed static/*
var staticFS embed.FS

// DocumentSource provides the preview server read access to the document it
// renders. It is injected at construction; the server never reaches into the
// editor beyond this surface.
type DocumentSource interface {
	Title() string
	Text() string
}

// frame is one render pushed to connected preview clients.
type frame struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// PreviewServer serves a live HTML preview of a document: the embedded page
// at /, rendered frames over the websocket at /ws. Call Broadcast after the
// document changes to push a fresh render to every connected client.
type PreviewServer struct {
	source   DocumentSource
	md       goldmark.Markdown
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients []*previewClient
}

type previewClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewPreviewServer creates a preview server over the given document source.
func NewPreviewServer(source DocumentSource) *PreviewServer {
	return &PreviewServer{
		source: source,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RenderHTML renders the current document to an HTML fragment.
func (s *PreviewServer) RenderHTML() (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(s.source.Text()), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *PreviewServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/ws" {
		s.handleWebSocket(w, r)
		return
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		http.Error(w, "static files unavailable", http.StatusInternalServerError)
		return
	}
	http.FileServer(http.FS(sub)).ServeHTTP(w, r)
}

func (s *PreviewServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("preview: websocket upgrade: %v", err)
		return
	}
	client := &previewClient{conn: conn}
	s.mu.Lock()
	s.clients = append(s.clients, client)
	s.mu.Unlock()

	// Send the current render immediately so the page isn't blank until the
	// first edit.
	s.send(client)

	defer func() {
		conn.Close()
		s.mu.Lock()
		for i, c := range s.clients {
			if c == client {
				s.clients = append(s.clients[:i], s.clients[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}()

	// Drain incoming messages; the protocol is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast re-renders the document and pushes the result to every connected
// client.
func (s *PreviewServer) Broadcast() {
	s.mu.Lock()
	clients := make([]*previewClient, len(s.clients))
	copy(clients, s.clients)
	s.mu.Unlock()

	for _, client := range clients {
		s.send(client)
	}
}

func (s *PreviewServer) send(client *previewClient) {
	html, err := s.RenderHTML()
	if err != nil {
		log.Printf("preview: render: %v", err)
		return
	}
	data, err := json.Marshal(frame{Title: s.source.Title(), HTML: html})
	if err != nil {
		return
	}
	client.mu.Lock()
	_ = client.conn.WriteMessage(websocket.TextMessage, data)
	client.mu.Unlock()
}
