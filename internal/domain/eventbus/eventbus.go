package eventbus

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
)

var (
	instance evbus.Bus
	asyncBus *AsyncEventBus
	once     sync.Once
)

// Get returns the process-wide synchronous event bus.
func Get() evbus.Bus {
	once.Do(func() {
		instance = New()
		asyncBus = NewAsyncEventBus(10)
		asyncBus.Start()
	})
	return instance
}

// GetAsync returns the process-wide asynchronous event bus.
func GetAsync() *AsyncEventBus {
	once.Do(func() {
		instance = New()
		asyncBus = NewAsyncEventBus(10)
		asyncBus.Start()
	})
	return asyncBus
}

// New creates a fresh synchronous bus, independent of the singleton.
func New() evbus.Bus {
	return evbus.New()
}

// Publish delivers an event synchronously to all subscribers.
func Publish(topic string, args ...interface{}) {
	Get().Publish(topic, args...)
}

// PublishAsync queues an event for delivery on the worker pool.
func PublishAsync(topic string, args ...interface{}) {
	GetAsync().PublishAsync(topic, args...)
}

// Subscribe registers a handler on the synchronous bus.
func Subscribe(topic string, fn interface{}) error {
	return Get().Subscribe(topic, fn)
}

// SubscribeAsync registers a handler on the asynchronous bus.
func SubscribeAsync(topic string, fn interface{}) error {
	return GetAsync().SubscribeAsync(topic, fn)
}

// Shutdown stops the async worker pool and drains queued events.
func Shutdown() {
	if asyncBus != nil {
		asyncBus.Stop()
	}
}
