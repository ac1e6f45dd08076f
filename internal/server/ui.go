package server

import (
	"PostGenius/internal/service/post"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"
)

//go:embed web
var webFS embed.FS

type toneOption struct {
	Value string
	Label string
}

type indexData struct {
	Tones       []toneOption
	DefaultTone string
}

type ui struct {
	tmpl     *template.Template
	staticFS fs.FS
	data     indexData
	logger   *zap.SugaredLogger
}

func newUI(logger *zap.SugaredLogger) (*ui, error) {
	tmpl, err := template.ParseFS(webFS, "web/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	staticFS, err := fs.Sub(webFS, "web/static")
	if err != nil {
		return nil, err
	}

	// значения option берутся из того же набора, что проверяет обработчик
	options := make([]toneOption, 0, len(post.Tones()))
	for _, t := range post.Tones() {
		options = append(options, toneOption{Value: t.String(), Label: t.Label()})
	}
	return &ui{
		tmpl:     tmpl,
		staticFS: staticFS,
		data:     indexData{Tones: options, DefaultTone: post.ToneProfessional.String()},
		logger:   logger,
	}, nil
}

func (u *ui) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var buf bytes.Buffer
	if err := u.tmpl.ExecuteTemplate(&buf, "index.html", u.data); err != nil {
		loggerFrom(r.Context(), u.logger).Errorw("Error executing template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (u *ui) static() http.Handler {
	return http.FileServerFS(u.staticFS)
}
