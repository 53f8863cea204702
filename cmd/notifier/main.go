package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Ssshtea/DBMS-cp/internal/app/notifier"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := notifier.Run(ctx); err != nil {
		log.Fatalf("notifier: %v", err)
	}
}
