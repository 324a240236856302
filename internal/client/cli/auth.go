package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email, and password and attempts to create
// an account. On success the session is established exactly as after a
// login. Failures are reported to the user; the method never returns an
// authentication error, only I/O errors from the prompts.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	res := a.session.Register(ctx, name, email, string(password))
	if !res.OK {
		printlnFn("Registration failed:", res.Message)
		return nil
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", res.User.Name))
	return nil
}

// Login prompts for credentials and authenticates. The outcome is a tagged
// result from the session store; a wrong password is reported, not an error.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	res := a.session.Login(ctx, email, string(password))
	if !res.OK {
		printlnFn("Login failed:", res.Message)
		return nil
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", res.User.Name))
	return nil
}

// Logout clears the session. The cart survives: it belongs to the browser
// session, not to the user.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	return nil
}
