package controller

// Form identifies one of the two independent input forms.
type Form string

const (
	FormGenerate  Form = "generate"
	FormSummarize Form = "summarize"
)

type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindWarning
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	default:
		return "unknown"
	}
}

type GenerateResult struct {
	Content    string
	TokensUsed int
}

type SummaryResult struct {
	Summary        string
	OriginalLength int
	SummaryLength  int
	TokensUsed     int
}

// Presenter is implemented by the UI layer. The controller only ever talks
// to the user through it.
type Presenter interface {
	SetBusy(form Form, busy bool)
	Notify(message string, kind Kind)
	ShowContent(result GenerateResult)
	ShowSummary(result SummaryResult)
}
