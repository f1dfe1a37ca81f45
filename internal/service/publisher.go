package service

import (
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"

	"github.com/libtrack/borrowing-service/pkg/kafka"
)

type kafkaPublisher struct {
	producer sarama.SyncProducer
}

func NewPublisher(producer sarama.SyncProducer) Publisher {
	return &kafkaPublisher{
		producer: producer,
	}
}

func (p *kafkaPublisher) PublishLoanEvent(event kafka.LoanEvent) error {
	data, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: kafka.LoanEventsTopic, Value: sarama.StringEncoder(data)}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}
