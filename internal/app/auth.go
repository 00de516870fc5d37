package app

import (
	"context"
	"errors"
	"strings"

	"newsreader/internal/userapi"
)

// ParseInterests splits a comma separated list, trims and lowercases each
// entry and drops the empty ones.
func ParseInterests(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (a *App) Register(ctx context.Context, username, email, password, interests string) error {
	if blank(username) || blank(email) || blank(password) {
		a.setAuthMessage(MissingFieldsMessage, KindError)
		return ErrMissingFields
	}

	epoch := a.sessionEpoch()
	creds, err := a.users.Register(ctx, userapi.RegisterRequest{
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		Password:  password,
		Interests: ParseInterests(interests),
	})
	if err != nil {
		a.logger.Printf("register %s: %v", email, err)
		a.setAuthMessage(authFailure(err, RegistrationFailedMessage), KindError)
		return err
	}

	return a.signIn(ctx, epoch, creds)
}

func (a *App) Login(ctx context.Context, email, password string) error {
	if blank(email) || blank(password) {
		a.setAuthMessage(MissingFieldsMessage, KindError)
		return ErrMissingFields
	}

	epoch := a.sessionEpoch()
	creds, err := a.users.Login(ctx, userapi.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		a.logger.Printf("login %s: %v", email, err)
		a.setAuthMessage(authFailure(err, LoginFailedMessage), KindError)
		return err
	}

	return a.signIn(ctx, epoch, creds)
}

// Logout forgets the session locally. The user service is not told.
func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.Clear()
	// Anything still in flight belongs to the old session.
	a.epoch++
	a.seq++
	a.page = Page{
		Section:      SectionAuth,
		ActiveFilter: FilterAll,
	}
	a.logger.Println("logged out")
}

// signIn stores creds unless the user logged out while the request was out.
func (a *App) signIn(ctx context.Context, epoch uint64, creds *userapi.Credentials) error {
	a.mu.Lock()
	if epoch != a.epoch {
		a.mu.Unlock()
		a.logger.Printf("dropping sign in for %s: logged out meanwhile", creds.Username)
		return nil
	}
	a.store.Save(creds.Token, creds.UserID, creds.Username)
	a.page.Section = SectionNews
	a.page.Welcome = welcome(a.store.Username())
	a.page.Username = a.store.Username()
	a.page.AuthMessage = ""
	a.page.AuthKind = ""
	a.page.ActiveFilter = FilterAll
	a.mu.Unlock()

	a.logger.Printf("signed in as %s (%s)", creds.Username, creds.UserID)
	return a.LoadArticles(ctx, "")
}

func (a *App) setAuthMessage(msg string, kind MessageKind) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.page.AuthMessage = msg
	a.page.AuthKind = kind
}

// authFailure prefers the message the user service sent back.
func authFailure(err error, fallback string) string {
	var apiErr *userapi.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
