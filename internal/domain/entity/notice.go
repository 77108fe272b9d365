package entity

// NoticeKind вид уведомления в баннере
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice короткое уведомление, которое баннер показывает и затем скрывает.
type Notice struct {
	Kind NoticeKind
	Text string
}

func SuccessNotice(text string) Notice {
	return Notice{Kind: NoticeSuccess, Text: text}
}

func ErrorNotice(text string) Notice {
	return Notice{Kind: NoticeError, Text: text}
}
