package form

// Notification is the dismissible message shown after a submission finishes.
type Notification struct {
	Kind  Kind
	Title string
	Body  string
}

// Notification titles and the fixed confirmation text.
const (
	TitleSent        = "Message sent"
	TitleSendFailed  = "Send failed"
	TitleNetworkFail = "Network error"
	BodySent         = "Thank you! I will respond as soon as I can."
)

func notificationFor(res Result) Notification {
	switch {
	case res.Kind == KindSuccess:
		return Notification{Kind: KindSuccess, Title: TitleSent, Body: BodySent}
	case res.Transport:
		return Notification{Kind: KindError, Title: TitleNetworkFail, Body: nonEmpty(res.Message, MsgNetwork)}
	default:
		return Notification{Kind: KindError, Title: TitleSendFailed, Body: nonEmpty(res.Message, MsgRejected)}
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
