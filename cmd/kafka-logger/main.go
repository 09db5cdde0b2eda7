package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"

	appkafka "github.com/wakidurrahman/todo-list/internal/kafka"
)

func initConfig() {
	viper.SetEnvPrefix("TODO")
	viper.AutomaticEnv()
}

func main() {
	initConfig()

	broker := viper.GetString("KAFKA_BROKER")
	topic := viper.GetString("KAFKA_TOPIC")
	logFile := viper.GetString("KAFKA_LOG_FILE")

	if broker == "" || topic == "" || logFile == "" {
		log.Fatal("TODO_KAFKA_BROKER, TODO_KAFKA_TOPIC or TODO_KAFKA_LOG_FILE is not configured")
	}

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer file.Close()

	logger := log.New(file, "", log.LstdFlags)
	logger.Println("todo event logger started")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: "todo-event-logger",
	})

	for {
		m, err := r.ReadMessage(context.Background())
		if err != nil {
			logger.Printf("error reading message: %v\n", err)
			continue
		}

		var event appkafka.Event
		if err := json.Unmarshal(m.Value, &event); err != nil {
			logger.Printf("unparseable event: %s\n", string(m.Value))
			continue
		}

		logger.Printf("[%s] task %s %s\n", event.At.Format(time.RFC3339), event.TaskID, event.Action)
	}
}
