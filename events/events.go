package events

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"

	"go-agrilab/utils"
)

// Action 记录变更类型
type Action string

const (
	Created Action = "created"
	Updated Action = "updated"
	Deleted Action = "deleted"
)

// Event 一次成功的记录变更
type Event struct {
	Resource     string      `json:"resource"`
	Action       Action      `json:"action"`
	ID           interface{} `json:"id"`
	AffectedRows int64       `json:"affectedRows"`
	At           time.Time   `json:"at"`
	// Source 产生变更的服务实例
	Source string `json:"source,omitempty"`
}

// Publisher 发布记录变更事件
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop 未配置消息队列时使用
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Kafka 将事件写入 Kafka topic，消息 key 为资源名
type Kafka struct {
	writer *kafka.Writer
	source string
}

// NewKafka 创建 Kafka 发布者
func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  1,
	}, source: utils.InstanceID()}
}

// Publish 同步写入一条消息，失败不重试
func (k *Kafka) Publish(ctx context.Context, e Event) error {
	if e.Source == "" {
		e.Source = k.source
	}
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(e.Resource),
		Value:   value,
		Time:    e.At,
		Headers: []kafka.Header{{Key: "source", Value: []byte(e.Source)}},
	})
}

// Source 返回写入消息头的实例ID
func (k *Kafka) Source() string {
	return k.source
}

// Close 关闭底层 writer
func (k *Kafka) Close() error {
	return k.writer.Close()
}

// New 根据 broker 列表选择发布者
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafka(brokers, topic)
}
