package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"nmark.dev/nmark/ast"
	"nmark.dev/nmark/codec"
	"nmark.dev/nmark/gen/html"
	"nmark.dev/nmark/resolve"
)

// site serves rendered documents from a directory of <name>.json
// trees. Outlines of every document are built up front so paragraph
// links across documents resolve; restart the server after editing.
type site struct {
	dir      string
	log      *slog.Logger
	outlines map[string]*resolve.Outline
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Preview server over a directory of document trees",
		Long: `This command serves every <name>.json document tree in a
directory as rendered HTML at /<name>. Cross-document paragraph links
resolve against the outlines of the sibling documents.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) != 0 {
				dir = args[0]
			}
			log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
			s := &site{dir: dir, log: log}
			if err := s.scan(); err != nil {
				return prefix("(serve) ", err)
			}
			r := chi.NewRouter()
			r.Use(middleware.Recoverer)
			r.Use(middleware.RequestID)
			r.Use(requestLogger(log))
			r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"status":"ok"}`))
			})
			r.Get("/{doc}", s.handleDoc)
			log.Info("starting nmark preview", "addr", addr, "dir", dir,
				"documents", len(s.outlines))
			srv := &http.Server{
				Addr:         addr,
				Handler:      r,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8090", "``listen address")
	return cmd
}

func (s *site) scan() error {
	names, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return err
	}
	s.outlines = make(map[string]*resolve.Outline, len(names))
	for _, p := range names {
		doc := strings.TrimSuffix(filepath.Base(p), ".json")
		tree, err := s.load(doc)
		if err != nil {
			return fmt.Errorf("%s: %v", p, err)
		}
		_, outline := resolve.Number(tree)
		s.outlines[doc] = outline
	}
	return nil
}

func (s *site) load(doc string) (ast.Node, error) {
	f, err := os.Open(filepath.Join(s.dir, doc+".json"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return codec.Read(f)
}

func (s *site) handleDoc(w http.ResponseWriter, r *http.Request) {
	doc := filepath.Base(chi.URLParam(r, "doc"))
	if _, ok := s.outlines[doc]; !ok {
		http.NotFound(w, r)
		return
	}
	tree, err := s.load(doc)
	if err != nil {
		s.log.Error("load failed", "doc", doc, "error", err)
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}
	tree, _ = resolve.Number(tree)
	tree = resolve.Hrefs(tree, resolve.Context{Doc: doc, Outlines: s.outlines})
	g := html.GenContext(r.Context(), tree)
	body, err := g.Output()
	if err != nil {
		s.log.Error("render failed", "doc", doc, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html><html><head><meta charset=%q><title>%s</title></head><body><main>", "utf-8", doc)
	w.Write(body)
	fmt.Fprint(w, "</main></body></html>")
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
