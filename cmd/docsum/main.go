package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"docsum/internal/cli"
	"docsum/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.Options{
		NewGateway: cli.HTTPGateway,
		RunTUI:     tui.Run,
	})
	stop()
	os.Exit(code)
}
