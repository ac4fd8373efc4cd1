package llm

import (
	"strings"

	"github.com/formease/formease-server/constants"
)

// BuildSystemPrompt composes the fixed extraction contract. The two rules
// that must survive any edit: the address NEVER contains the postcode, and
// favoriteTimeOfDay is inferred from context but only ever one of the four
// enum words or "".
func BuildSystemPrompt() string {
	enum := "'" + strings.Join(constants.TimesOfDay, "', '") + "'"

	parts := []string{
		"You are a highly-trained data extraction model. Analyze the document provided and extract the person's details as JSON matching the provided JSON Schema.",
		"Identify the following distinct pieces of information:",
		"firstName: the person's first name.",
		"surname: the person's surname or last name.",
		"address: the full street address including street, city, and any other lines, but you MUST exclude the postcode even when it appears on the same line.",
		"postcode: the postcode or ZIP code, usually an alphanumeric code at the end of the address.",
		"email: the email address, which contains an '@' symbol.",
		"favoriteTimeOfDay: the person's favourite time of day. This value must be exactly one of: " + enum + ". The document may never state it literally; infer it from contextual cues ('I'm a night owl' means 'Night', 'I love sunrises' means 'Morning'). If there is no cue at all, use \"\" rather than guessing.",
		"If you cannot find a specific piece of information, return an empty string \"\" for that field.",
		"Never omit a key, never output null, and never invent a value outside the stated enum.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the document for a text-only round trip. The data
// URI of a plain-text upload is decoded by the caller and inlined here; PDFs
// are attached as a file part instead and docText stays empty.
func BuildUserPrompt(docText string, fileAttached bool) string {
	var b strings.Builder
	if fileAttached {
		b.WriteString("The document is attached. Extract the details from it.\n")
	} else {
		b.WriteString("DOCUMENT:\n---\n")
		b.WriteString(strings.TrimSpace(docText))
		b.WriteString("\n---\n")
	}
	b.WriteString("\nReturn ONLY JSON that matches the provided schema.")
	return b.String()
}
