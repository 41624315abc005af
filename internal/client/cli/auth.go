package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errCancelled = errors.New("cancelled")

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// confirm asks a yes/no question; anything but "yes" returns errCancelled.
func (a *App) confirm(question string) error {
	answer, err := getSimpleText(a.reader, question+" Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		return errCancelled
	}
	return nil
}

// Register prompts for an email and password and creates the account. It
// does not log in.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.client.Register(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %s)\n", u.Email, u.ID)
	return nil
}

// Login prompts for credentials and stores the access token on success. An
// unreachable server switches the prompt to offline mode.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.setUserName(email)
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.setUserName("")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

func (a *App) ChangeEmail(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter new email", a.out)
	if err != nil {
		return err
	}

	u, err := a.client.UpdateMe(ctx, models.UserPatch{Email: models.Some(email)})
	if err != nil {
		return err
	}

	a.setUserName(u.Email)
	printUser(a.out, u)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.client.UpdateMe(ctx, models.UserPatch{Password: models.Some(string(password))}); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// Deactivate marks the account inactive. The server refuses every further
// authenticated call, so the local session is dropped as well.
func (a *App) Deactivate(ctx context.Context) error {
	if err := a.confirm("Deactivate your account?"); err != nil {
		return err
	}

	if _, err := a.client.UpdateMe(ctx, models.UserPatch{IsActive: models.Some(false)}); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account deactivated")
	return a.Logout(ctx)
}

// DeleteAccount removes the account together with all of its items.
func (a *App) DeleteAccount(ctx context.Context) error {
	if err := a.confirm("Delete your account and all items?"); err != nil {
		return err
	}

	if err := a.client.DeleteMe(ctx); err != nil {
		return err
	}

	a.setUserName("")
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

func printUser(w io.Writer, u *api.User) {
	state := "active"
	if !u.IsActive {
		state = "inactive"
	}
	fmt.Fprintf(w, "ID:      %s\nEmail:   %s\nStatus:  %s\nCreated: %s\n", u.ID, u.Email, state, u.CreatedAt.Format("2006-01-02 15:04:05"))
}
