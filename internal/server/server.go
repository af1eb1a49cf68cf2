// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server serves the single-page web UI over the kratos HTTP transport.
package server

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/briefing-engine/internal/briefing"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

//go:embed assets/index.html
var assets embed.FS

var pageTmpl = template.Must(template.ParseFS(assets, "assets/index.html"))

// sessionCookie holds the caller's session ID.
const sessionCookie = "briefing_session"

// Handler serves the page and runs briefings in the caller's session.
type Handler struct {
	runner   briefing.Runner
	sessions *briefing.SessionStore
	log      logrus.FieldLogger
	md       goldmark.Markdown

	// Timeout bounds one pipeline run. Zero means the request context only.
	Timeout time.Duration
}

// NewHandler returns a Handler that runs r for each form submission.
func NewHandler(r briefing.Runner, sessions *briefing.SessionStore, log logrus.FieldLogger) *Handler {
	return &Handler{
		runner:   r,
		sessions: sessions,
		log:      log,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// NewHTTPServer builds the kratos HTTP server with the UI routes registered.
func NewHTTPServer(c types.ServerConfig, h *Handler) *http.Server {
	opts := []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Filter(h.logRequests),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	// A non-positive timeout disables the transport deadline; without this
	// option kratos would apply its own one second default.
	opts = append(opts, http.Timeout(c.Timeout))

	srv := http.NewServer(opts...)
	srv.HandleFunc("/", h.Index)
	srv.HandleFunc("/briefing", h.Generate)
	srv.HandleFunc("/healthz", h.Healthz)
	return srv
}

type sourceCard struct {
	Title   string
	URL     string
	Summary string
}

type pageData struct {
	Topics       string
	ReadingTime  types.ReadingTime
	Region       types.Region
	ReadingTimes []types.ReadingTime
	Regions      []types.Region

	Notice     string
	NoticeKind string

	// HasBriefing is set for any stored briefing, including one whose
	// digest text is empty.
	HasBriefing bool
	Briefing    template.HTML
	Sources     []sourceCard
}

// Index renders the page with the session's current briefing.
func (h *Handler) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet && r.Method != nethttp.MethodHead {
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}
	// Visitors without a session get an empty page; a session is only
	// created when they submit the form.
	sess := h.sessions.Lookup(cookieSessionID(r))
	if sess == nil {
		h.render(w, nethttp.StatusOK, h.newPage(nil))
		return
	}
	data := h.newPage(sess.Current())
	if sess.Busy() {
		data.Notice = briefing.Message(briefing.ErrRunInProgress)
		data.NoticeKind = "warning"
	}
	h.render(w, nethttp.StatusOK, data)
}

// Generate runs one briefing for the submitted form.
func (h *Handler) Generate(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}
	sess := h.sessions.Get(h.sessionID(w, r))

	if err := r.ParseForm(); err != nil {
		h.renderError(w, sess, nethttp.StatusBadRequest, "Could not read the form.")
		return
	}
	topics := r.PostForm.Get("topics")
	readingTime, err := types.ParseReadingTime(r.PostForm.Get("reading_time"))
	if err != nil {
		h.renderError(w, sess, nethttp.StatusBadRequest, err.Error())
		return
	}
	region, err := types.ParseRegion(r.PostForm.Get("region"))
	if err != nil {
		h.renderError(w, sess, nethttp.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	req := types.NewBriefingRequest(topics, readingTime, region)
	_, err = sess.Generate(ctx, h.runner, req, r.PostForm.Get("api_key"))

	data := h.newPage(sess.Current())
	data.Topics = req.Topics
	data.ReadingTime = readingTime
	data.Region = region
	if err != nil {
		h.log.WithFields(logrus.Fields{"session": sess.ID, "kind": briefing.Kind(err)}).Info("briefing run failed")
		data.Notice = briefing.Message(err)
		data.NoticeKind = "error"
		if briefing.Kind(err) == briefing.KindBusy || briefing.Kind(err) == briefing.KindNoResults {
			data.NoticeKind = "warning"
		}
		h.render(w, statusFor(briefing.Kind(err)), data)
		return
	}

	data.Notice = "Your briefing is ready!"
	data.NoticeKind = "success"
	h.render(w, nethttp.StatusOK, data)
}

// Healthz reports liveness.
func (h *Handler) Healthz(w nethttp.ResponseWriter, _ *nethttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func statusFor(kind briefing.FailureKind) int {
	switch kind {
	case briefing.KindValidation:
		return nethttp.StatusBadRequest
	case briefing.KindNoResults:
		return nethttp.StatusOK
	case briefing.KindBusy:
		return nethttp.StatusConflict
	case briefing.KindSearch, briefing.KindComposition:
		return nethttp.StatusBadGateway
	default:
		return nethttp.StatusInternalServerError
	}
}

func (h *Handler) newPage(b *types.Briefing) pageData {
	data := pageData{
		ReadingTime:  types.DefaultReadingTime,
		Region:       types.RegionGlobal,
		ReadingTimes: types.ReadingTimes,
		Regions:      types.Regions,
	}
	if b == nil {
		return data
	}

	data.HasBriefing = true
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(b.Text), &buf); err != nil {
		h.log.WithError(err).Warn("rendering briefing markdown")
		buf.Reset()
		buf.WriteString(template.HTMLEscapeString(b.Text))
	}
	data.Briefing = template.HTML(buf.String())
	for _, src := range b.Sources {
		data.Sources = append(data.Sources, sourceCard{
			Title:   src.Title,
			URL:     src.URL,
			Summary: briefing.SourceSummary(src.Content),
		})
	}
	return data
}

func (h *Handler) renderError(w nethttp.ResponseWriter, sess *briefing.Session, status int, msg string) {
	data := h.newPage(sess.Current())
	data.Notice = msg
	data.NoticeKind = "error"
	h.render(w, status, data)
}

func (h *Handler) render(w nethttp.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		h.log.WithError(err).Error("rendering page")
		nethttp.Error(w, "internal error", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// sessionID returns the caller's session ID, issuing a new one when the
// cookie is missing or malformed.
func (h *Handler) sessionID(w nethttp.ResponseWriter, r *nethttp.Request) string {
	if id := cookieSessionID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	nethttp.SetCookie(w, &nethttp.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) logRequests(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).Round(time.Millisecond),
		}).Debug("request served")
	})
}

// cookieSessionID returns the well-formed session ID carried by r, or "".
func cookieSessionID(r *nethttp.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}
