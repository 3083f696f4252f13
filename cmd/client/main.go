package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pennywise/client/internal/apiclient"
	"github.com/pennywise/client/internal/auth"
	"github.com/pennywise/client/internal/config"
	"github.com/pennywise/client/internal/database"
	"github.com/pennywise/client/internal/facade"
	"github.com/pennywise/client/internal/logger"
	"github.com/pennywise/client/internal/notify"
	"github.com/pennywise/client/internal/preferences"
	"github.com/pennywise/client/internal/services"
	"github.com/pennywise/client/internal/state"
)

func main() {
	config.Init()
	cfg := config.Load()
	log := logger.NewWithLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := bufio.NewScanner(os.Stdin)
	out := os.Stdout

	session := auth.NewSession(cfg.API.Token, func(context.Context) {
		fmt.Fprintln(out, "Session expired. Enter a new token with: login <token>")
	}, log)

	client, err := apiclient.New(cfg.API.BaseURL, session,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(log),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid API base URL")
	}

	rdb := database.InitRedis(ctx, cfg.Redis, log)
	if rdb != nil {
		defer rdb.Close()
	}
	prefs := preferences.Open(rdb, cfg.Redis.Prefix)

	toasts := notify.NotifierFunc(func(t notify.Toast) {
		fmt.Fprintf(out, "[%s] %s\n", t.Level, translate(t))
	})
	opts := []services.Option{
		services.WithNotifier(toasts),
		services.WithSession(session),
		services.WithLogger(log),
	}

	store := state.NewStore(state.Initial(cfg.API.DefaultPageSize, cfg.API.DefaultSort))
	svc := services.NewTransactionService(apiclient.NewTransactionClient(client), store, opts...)
	catalog := services.NewCatalogService(apiclient.NewWalletClient(client), apiclient.NewCategoryClient(client), opts...)

	f := facade.New(svc, catalog, prefs, facade.NavigatorFunc(func(route string) {
		log.Debug().Str("route", route).Msg("Navigate")
	}), log)

	repl := &repl{
		facade:  f,
		catalog: catalog,
		session: session,
		in:      in,
		out:     out,
	}
	if session.LoggedIn() {
		catalog.Load(ctx)
		if err := f.Load(ctx); err == nil {
			repl.render(ctx)
		}
	} else {
		fmt.Fprintln(out, "No API token configured. Use: login <token>")
	}
	repl.run(ctx)
}
