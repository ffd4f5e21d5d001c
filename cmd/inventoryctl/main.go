package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/inventory/internal/inventoryctl"
	"github.com/aussiebroadwan/inventory/pkg/authsdk"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &inventoryctl.CLI{}
	err := cli.Run(ctx, os.Args[1:])
	if err == nil {
		return
	}

	var apiErr *authsdk.APIError
	switch {
	case errors.Is(err, authsdk.ErrNoSession):
		fmt.Fprintln(os.Stderr, "inventoryctl: not logged in")
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "inventoryctl: %s\n", apiErr.Message)
	default:
		fmt.Fprintf(os.Stderr, "inventoryctl: %v\n", err)
	}

	if errors.Is(err, inventoryctl.ErrUsage) {
		os.Exit(2)
	}
	os.Exit(1)
}
