package kafka

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"

	"github.com/Mayur79/ecommercebackend/model"
)

// Producer publishes catalog and order events. Events are best-effort:
// publish failures are logged and never fail the request. A nil *Producer
// is valid and publishes nothing.
type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(broker string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	var producer sarama.SyncProducer
	var err error

	for i := 1; i <= 5; i++ {
		producer, err = sarama.NewSyncProducer([]string{broker}, config)
		if err == nil {
			log.Println("Kafka producer initialized")
			return &Producer{producer: producer}, nil
		}
		log.Printf("Waiting for Kafka... (%d/5) Error: %v", i, err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("kafka producer: %w", err)
}

func (p *Producer) ProductCreated(prod *model.Product) {
	p.publish("product.created", productEvent(prod))
}

func (p *Producer) ProductUpdated(prod *model.Product) {
	p.publish("product.updated", productEvent(prod))
}

func (p *Producer) ProductDeleted(id uint) {
	p.publish("product.deleted", map[string]interface{}{"id": id})
}

func (p *Producer) OrderCreated(o *model.Order) {
	p.publish("order.created", map[string]interface{}{
		"id":       o.ID,
		"buyer_id": o.BuyerID,
		"items":    len(o.Products),
		"status":   o.Status,
	})
}

func productEvent(prod *model.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":          prod.ID,
		"name":        prod.Name,
		"slug":        prod.Slug,
		"price":       prod.Price,
		"category_id": prod.CategoryID,
		"quantity":    prod.Quantity,
	}
}

func (p *Producer) publish(topic string, event interface{}) {
	if p == nil || p.producer == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Printf("Failed to send Kafka message on %s: %v", topic, err)
	}
}
