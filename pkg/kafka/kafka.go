package kafka

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/Sharif-Hamza/eventlynk-backend/config"
)

// NewProducer builds a confluent producer from the application config.
func NewProducer() *kafka.Producer {
	c := config.Get()

	cm := &kafka.ConfigMap{
		"bootstrap.servers": c.Kafka.BootstrapServers,
		"acks":              "all",
	}

	if c.Kafka.SASLUsername != "" {
		cm.SetKey("security.protocol", "SASL_SSL")
		cm.SetKey("sasl.mechanisms", "PLAIN")
		cm.SetKey("sasl.username", c.Kafka.SASLUsername)
		cm.SetKey("sasl.password", c.Kafka.SASLPassword)
	}

	p, err := kafka.NewProducer(cm)
	if err != nil {
		panic(err)
	}

	return p
}
