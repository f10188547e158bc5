package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

// KafkaPublisher encapsula o writer Kafka e o logger.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher cria um publisher para o tópico de payloads compactos.
// Em ambientes local/dev garante a existência do tópico antes de criar o writer.
func NewKafkaPublisher(brokers []string, topic string, env string, log *zap.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not provided")
	}

	if env == "local" || env == "dev" {
		ctrlCtx, ctrlCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer ctrlCancel()
		if err := ensureTopic(ctrlCtx, brokers[0], topic, log); err != nil {
			log.Warn("failed to ensure kafka topic", zap.String("topic", topic), zap.Error(err))
		}
	}

	// writer com timeouts; chave = marketId, então Hash mantém a ordem por mercado
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}

	return &KafkaPublisher{writer: writer, log: log}, nil
}

// ensureTopic usa o controller do cluster para emitir o CreateTopics.
// Tópico já existente não é erro.
func ensureTopic(ctx context.Context, broker, topic string, log *zap.Logger) error {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("kafka controller: %w", err)
	}

	cconn, err := kafka.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer cconn.Close()

	// particionamento e replicação compatíveis com single-broker
	err = cconn.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}
	if err == nil {
		log.Info("kafka topic created", zap.String("topic", topic))
	}
	return nil
}

// Message monta a mensagem Kafka de um payload compacto.
// A chave usa o marketId (ou o kind, na listagem) para manter a ordem por partição.
func Message(p events.CompactPayload) (kafka.Message, error) {
	value, err := json.Marshal(p)
	if err != nil {
		return kafka.Message{}, err
	}

	key := string(p.Kind)
	if p.MarketID != 0 {
		key = fmt.Sprintf("%d", p.MarketID)
	}
	return kafka.Message{Key: []byte(key), Value: value, Time: p.ReceivedAt}, nil
}

// Publish serializa o payload em JSON e envia para o tópico configurado.
func (p *KafkaPublisher) Publish(ctx context.Context, payload events.CompactPayload) error {
	msg, err := Message(payload)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish compact payload", zap.Error(err))
		return err
	}

	p.log.Debug("published compact payload",
		zap.String("id", payload.ID),
		zap.String("kind", string(payload.Kind)),
		zap.Int64("market_id", payload.MarketID),
	)
	return nil
}

// Close finaliza o writer e libera recursos associados.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
