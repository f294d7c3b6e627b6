package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	SenderKindUser   = "user"
	SenderKindAI     = "ai"
	SenderKindSystem = "system"

	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	AIMemberID = "ai"

	// Fixed strings surfaced to users when generation cannot proceed.
	ResponderFallbackMessage = "I had trouble thinking of a response. Could you try again?"
	NoDocumentsMessage       = "I couldn't find relevant information in the uploaded documents."

	// RESPONSE DECISION - one-shot yes/no fallback when no rule fires
	ShouldRespondPromptV1 = `You are %s, an AI teammate in a collaborative chat room.
Decide whether the latest message calls for a reply from you.

Recent conversation:
%s

Latest message from %s: "%s"

Reply "yes" if the message is directed at you, asks a question you could help
with, or requests something actionable. Reply "no" if it is casual chatter
between teammates that does not involve you.

Answer with exactly one word: yes or no.`

	// SILENT DISPATCH - the tool loop must never produce prose
	ToolDispatchSystemPromptV1 = `You are %s, a silent action dispatcher for a collaborative chat room.
Examine the latest message and call the function that carries out what it asks.
Call no_action if nothing needs doing. Never write text. Only call functions.

Room: %s
Members: %s
Open tasks:
%s`

	// GROUNDED ANSWER - generation constrained to retrieved sources
	DocumentAnswerPromptV1 = `Answer the question using ONLY the sources below.
Cite sources by their number, e.g. (Source 2). If the sources do not contain
the answer, say so plainly instead of guessing.

%s

Question: %s`

	DocumentSummaryPromptV1 = `Summarize the following document in 2-3 sentences.
Focus on what it is about and any decisions or conclusions it contains.

%s`

	TranslatePromptV1 = `Translate the following text into %s.
Output only the translation, nothing else.

%s`

	ConversationSummaryPromptV1 = `Summarize the following chat conversation in a few sentences.
Mention who said what where it matters. Keep it factual.

%s`
)

// AIAliases are the names room members use to address the assistant.
// Matching is case-insensitive.
var AIAliases = []string{"ai", "assistant", "bot", "ai assistant", "veya"}

// AIMentions are direct-address markers checked by the response classifier.
// The classifier matches them on word boundaries, which also covers the
// "@veya" form, so the list holds bare names only.
var AIMentions = []string{"veya", "ai", "assistant"}

// QuestionTriggerWords mark messages that likely want an answer. The
// coordinator consults them when deciding whether a reply is owed; on their
// own they are too common to gate the pipeline.
var QuestionTriggerWords = []string{"help", "explain", "what", "how", "why", "when", "where", "can you", "please"}

// TaskIntentPhrases mark messages asking for task bookkeeping.
var TaskIntentPhrases = []string{"create a task", "add a task", "make a task", "remind me", "todo", "to-do", "assign"}
