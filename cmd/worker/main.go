package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/btair/btair/internal/kafka"
	"github.com/btair/btair/internal/notifier"
	"github.com/btair/btair/pkg/config"
)

// The worker consumes reservation events and sends customer notifications.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required for the notification worker")
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic, cfg.Kafka.GroupID)
	defer consumer.Close()

	sender := notifier.NewLogSender()

	ctx, cancel := context.WithCancel(context.Background())
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		log.Println("Stopping notification worker")
		cancel()
	}()

	log.Printf("Notification worker consuming %s", cfg.Kafka.NotificationsTopic)
	if err := consumer.Consume(ctx, sender.Send); err != nil {
		log.Fatalf("Consumer error: %v", err)
	}
}
