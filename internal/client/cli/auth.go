package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/client/models"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register creates an employee account and logs it in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if _, err := a.authService.Register(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Compte créé.")

	return a.login(ctx, email, password)
}

// Login prompts for credentials and opens the bill listing on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	return a.login(ctx, email, password)
}

func (a *App) login(ctx context.Context, email, password string) error {
	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.setUser(u)
	a.setMode(ctx, ModeOnline)
	a.router.Navigate(models.RouteBills)
	return nil
}

// Logout forgets the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setUser(nil)
	a.router.Navigate(models.RouteLogin)
	return nil
}
