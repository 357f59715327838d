package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/marcus/ticklist/internal/store"
)

const sessionCookie = "ticklist_session"

// wantsJSON reports whether the caller expects a JSON response rather
// than a redirect (fetch-style submission).
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// requireUser resolves the session cookie to a user and injects it into
// the request context. Unauthenticated page requests are redirected to
// the login form; fetch-style callers get a 401.
func (s *Server) requireUser(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.userForRequest(r)
		if err != nil {
			logFor(r.Context()).Error("resolve session", "err", err)
			writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to resolve session")
			return
		}
		if user == nil {
			if wantsJSON(r) {
				writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "not logged in")
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, user)
		ctx = context.WithValue(ctx, ctxKeyLogger, logFor(ctx).With("uid", user.ID))
		handler(w, r.WithContext(ctx))
	}
}

// userForRequest resolves the session cookie to a user, or nil when the
// request carries no live session.
func (s *Server) userForRequest(r *http.Request) (*store.User, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil, nil
	}
	sess, err := s.store.GetSession(c.Value)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	return s.store.GetUserByID(sess.UserID)
}

// setSessionCookie issues the session cookie for a fresh login.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// handleLoginPage renders the login form.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", authPage{AllowSignup: s.config.AllowSignup})
}

// handleLogin authenticates the credentials and starts a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid form")
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := s.store.Authenticate(email, password)
	if errors.Is(err, store.ErrBadCredentials) {
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, r, "login.html", authPage{Email: email, Error: "invalid email or password", AllowSignup: s.config.AllowSignup})
		return
	}
	if err != nil {
		logFor(r.Context()).Error("authenticate", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "login failed")
		return
	}

	token, err := s.store.CreateSession(user.ID, s.config.SessionTTL)
	if err != nil {
		logFor(r.Context()).Error("create session", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "login failed")
		return
	}

	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/todos", http.StatusFound)
}

// handleSignupPage renders the signup form, or bounces to login when
// signup is disabled.
func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	if !s.config.AllowSignup {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	s.render(w, r, "signup.html", authPage{AllowSignup: true})
}

// handleSignup creates an account and logs the new user straight in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !s.config.AllowSignup {
		writeError(w, http.StatusForbidden, ErrCodeSignupDisabled, "signup is disabled")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid form")
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := s.store.CreateUser(email, password)
	if errors.Is(err, store.ErrEmailTaken) {
		w.WriteHeader(http.StatusConflict)
		s.render(w, r, "signup.html", authPage{Email: email, Error: "that email already has an account", AllowSignup: true})
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "signup.html", authPage{Email: email, Error: err.Error(), AllowSignup: true})
		return
	}

	token, err := s.store.CreateSession(user.ID, s.config.SessionTTL)
	if err != nil {
		logFor(r.Context()).Error("create session", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "signup failed")
		return
	}

	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/todos", http.StatusFound)
}

// handleLogout revokes the current session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if err := s.store.DeleteSession(c.Value); err != nil {
			logFor(r.Context()).Error("delete session", "err", err)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
