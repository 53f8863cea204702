package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Ssshtea/DBMS-cp/internal/app/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx); err != nil {
		log.Fatalf("console: %v", err)
	}
}
