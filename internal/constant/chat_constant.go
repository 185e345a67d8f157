package constant

// Window sizes for conversation reads. The LLM context uses a short tail of
// the conversation; the history endpoint pages the opening of a session.
const (
	RecentMessageWindow = 8
	HistoryMessageLimit = 50
)

// ConciergeSystemPromptV1 primes the model before every proxied completion.
// It is never persisted as a message.
const ConciergeSystemPromptV1 = `You are the LendBridge lending concierge. You help borrowers understand ` +
	`published loan case listings and connect them with the right mortgage broker. ` +
	`Answer questions about loan amounts, rates, terms and property types in plain language. ` +
	`You do not give regulated financial advice; when a question needs a licensed professional, ` +
	`suggest sending an inquiry so a broker can follow up. Keep answers short and concrete.`

const ChatGreetingV1 = "Hi! I'm your lending concierge. Ask me about any of our listed cases, or tell me what you're looking for."
