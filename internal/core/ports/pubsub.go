package ports

const (
	// TopicSyncSource carries the blockchain type whose selected sync source
	// changed.
	TopicSyncSource = "SYNC_SOURCE"
	// TopicSyncSourcesUpdated carries the blockchain type whose list of sync
	// sources changed.
	TopicSyncSourcesUpdated = "SYNC_SOURCES_UPDATED"
	// TopicHardwareState carries the new state of a hardware address service.
	TopicHardwareState = "HARDWARE_STATE"
	// TopicAccounts carries the id of a saved or deleted account.
	TopicAccounts = "ACCOUNTS"
)

type Event struct {
	Topic   string
	Payload interface{}
}

type Subscription interface {
	Id() string
	Topic() string
	// Events is closed once the subscription is removed.
	Events() <-chan Event
}

// PubSub is an in-process fan-out broker. Publish never blocks: events are
// dropped for subscribers that are not keeping up.
type PubSub interface {
	Subscribe(topic string) Subscription
	Unsubscribe(id string)
	Publish(topic string, payload interface{})
	Close()
}
