package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"newsreader/internal/app"
)

type pageData struct {
	app.Page
	Filters []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, s.appFor(w, r))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	a := s.appFor(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	if err := a.Register(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
		r.PostFormValue("interests"),
	); err != nil {
		s.logger.Printf("web: register: %v", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	a := s.appFor(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	if err := a.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password")); err != nil {
		s.logger.Printf("web: login: %v", err)
	}
	redirectHome(w, r)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r)
	redirectHome(w, r)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	if err := s.appFor(w, r).SelectFilter(r.Context(), category); err != nil {
		s.logger.Printf("web: filter %s: %v", category, err)
	}
	redirectHome(w, r)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	a := s.appFor(w, r)
	a.Search(r.URL.Query().Get("q"))
	s.renderPage(w, a)
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	s.appFor(w, r).ToggleLike(r.Context(), mux.Vars(r)["id"])
	redirectHome(w, r)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	s.appFor(w, r).Share(r.Context(), mux.Vars(r)["id"])
	redirectHome(w, r)
}

// renderPage draws the page. A toast is shown once.
func (s *Server) renderPage(w http.ResponseWriter, a *app.App) {
	data := pageData{Page: a.Page(), Filters: app.Filters}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Printf("web: render: %v", err)
		return
	}
	a.DismissToast()
}

// redirectHome sends the browser back to the page after a form post.
// Search results survive the redirect because they live in the app.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
