package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

var bus EventBus.Bus

func Init() {
	bus = EventBus.New()
}

func PublishEventResult(publisherName string, topic EventName, event interface{}) {
	publish(publisherName, topic, event)
}

func PublishEventError(publisherName string, err error) {
	log.Error(err)
	publish(publisherName, Error, err)
}

func publish(publisherName string, topic EventName, event interface{}) {
	log.Debugf("[%v] Published to topic %s", publisherName, topic)

	bus.Publish(string(topic), event)
}

// Subscribe registers a synchronous callback. Delivery runs on the
// publisher's goroutine, so a subscriber sees events in the order they were
// published; a fill for a key is always handled after the position event
// that preceded it on the stream.
func Subscribe(subscriberName string, topic EventName, callbackFn interface{}) {
	if err := bus.Subscribe(string(topic), callbackFn); err != nil {
		log.Errorf("[%v] error: %v", subscriberName, err)
		return
	}

	log.Infof("[%v] Subscribed to topic %s", subscriberName, topic)
}
