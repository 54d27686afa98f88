// Command provision creates a user with a generated password and prints
// the password once. It reads the same configuration as the server.
//
//	provision -email alice@example.com [-d dsn] [-c config.json]
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/authservice/internal/dbx"
	"github.com/dmitrijs2005/authservice/internal/flagx"
	"github.com/dmitrijs2005/authservice/internal/server"
	"github.com/dmitrijs2005/authservice/internal/server/config"
)

func main() {
	email := flagx.LookupString(os.Args[1:], "email", "u")
	if email == "" {
		log.Fatal("usage: provision -email <address>")
	}

	password, err := run(context.Background(), config.LoadConfig(), email)
	if err != nil {
		log.Fatalf("provision %s: %v", email, err)
	}

	fmt.Printf("created %s\npassword: %s\n", email, password)
}

func run(ctx context.Context, cfg *config.Config, email string) (string, error) {
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer app.Close()

	var password string
	err = dbx.WithTx(ctx, app.DB(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		var provErr error
		_, password, provErr = app.UserService().ProvisionUser(ctx, tx, email)
		return provErr
	})
	if err != nil {
		return "", err
	}

	return password, nil
}
