package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/openmat/internal/client/client"
	"github.com/dmitrijs2005/openmat/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for credentials. A rejected login prints the server's
// message; a token the server then refuses to resolve leaves the user
// signed out.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	snap, err := a.svc.Auth.Login(ctx, email, string(password))
	if err != nil {
		var authErr *client.AuthenticationError
		if errors.As(err, &authErr) {
			fmt.Fprintln(a.out, "Login failed:", authErr.Message)
			return nil
		}
		return err
	}
	if !snap.IsLoggedIn {
		fmt.Fprintln(a.out, "Login accepted but the profile could not be loaded. Please try again.")
		return nil
	}

	a.setOwnedAcademy(0)
	fmt.Fprintf(a.out, "Welcome, %s!\n", snap.User.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.setOwnedAcademy(0)
	if err := a.svc.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
