package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/feas-project/feas-server/internal/client/api"
)

func (a *App) Register(ctx context.Context) {

	name, err := GetSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	role, err := GetSimpleText(a.reader, "Enter role (empty for Analyst)", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	bundle, err := a.client.Register(ctx, name, email, password, role)
	if err != nil {
		log.Printf("registration failed: %v", err)
		return
	}

	a.token = bundle.AccessToken
	a.userName = bundle.User.Email
	fmt.Fprintln(a.out, "Success!")
}

func (a *App) Login(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	bundle, err := a.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("login failed: invalid email or password")
		} else {
			log.Printf("login failed: %v", err)
		}
		return
	}

	a.token = bundle.AccessToken
	a.userName = bundle.User.Email
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", bundle.User.Name, bundle.User.Role)
}

func (a *App) Me(ctx context.Context) {

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	user, err := a.client.Me(ctx, a.token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			// Token expired since login; a fresh login fixes it.
			log.Printf("session expired, please login again")
			a.token = ""
			a.userName = ""
			return
		}
		log.Printf("error: %v", err)
		return
	}

	fmt.Fprintf(a.out, "id:    %d\nname:  %s\nemail: %s\nrole:  %s\nbio:   %s\n",
		user.ID, user.Name, user.Email, user.Role, user.Bio)
}

// Logout only discards the local token; the server keeps no session
// state to destroy.
func (a *App) Logout(ctx context.Context) {
	a.token = ""
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
}
