package prompts

var (
	StepBreakdown = `
You are an intelligent AI that drives a desktop computer for the user. Split
the following command into the smallest ordered list of concrete interface
steps: "{{.Command}}"

Each step must describe exactly one interaction (one click, one text entry,
one key press, one scroll or one drag). Wrap the literal on-screen text a
step must locate in double quotes, for example: click on the "Accept" button.

Do not invent windows, buttons or applications the command does not mention.

Respond with only a json array of strings, e.g. ["first step", "second step"]:
`

	QuoteTarget = `
You are helping locate an interface element on screen. The user command is:
"{{.Command}}"

The current step is: "{{.Step}}"

Answer with only the literal text label that must be found on screen for this
step, wrapped in double quotes, and nothing else. If the step needs no
on-screen text, answer with "".
`
)
