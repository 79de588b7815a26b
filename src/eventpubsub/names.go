package eventpubsub

type EventName string

const (
	AccountItemEvent EventName = "AccountItemEvent"
	PositionEvent    EventName = "PositionEvent"
	TradeFillEvent   EventName = "TradeFillEvent"
	Error            EventName = "DefaultError"
)
